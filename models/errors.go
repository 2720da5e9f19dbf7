package models

import "fmt"

// ValidationError reports a malformed bet candidate. It names the offending
// field so presentation layers can surface it directly.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid bet: %s %s", e.Field, e.Message)
}

// NotFoundError reports a ledger operation referencing an unknown bet id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("bet %q not found", e.ID)
}

// ConfigurationError reports a rate table that cannot settle the bets it was
// given. Settlement is all-or-nothing, so this aborts the whole run.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return "rate configuration: " + e.Message
}
