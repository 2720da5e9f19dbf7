package common

import (
	"fmt"
	"strings"
	"time"
)

// FormatAmount formats a stake or payout amount with thousand separators
func FormatAmount(amount int64) string {
	// Convert to string
	str := fmt.Sprintf("%d", amount)

	negative := strings.HasPrefix(str, "-")
	if negative {
		str = str[1:]
	}

	// Add commas for thousands
	n := len(str)
	if n > 3 {
		var result strings.Builder
		for i, digit := range str {
			if i > 0 && (n-i)%3 == 0 {
				result.WriteRune(',')
			}
			result.WriteRune(digit)
		}
		str = result.String()
	}

	if negative {
		return "-" + str
	}
	return str
}

// FormatMoney rounds a computed amount to whole đồng and formats it.
func FormatMoney(amount float64) string {
	var rounded int64
	if amount < 0 {
		rounded = -int64(-amount + 0.5)
	} else {
		rounded = int64(amount + 0.5)
	}
	return FormatAmount(rounded)
}

// FormatProfit formats a signed result with an explicit plus for gains.
func FormatProfit(amount float64) string {
	if amount > 0 {
		return "+" + FormatMoney(amount)
	}
	return FormatMoney(amount)
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
