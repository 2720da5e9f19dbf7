package ledger

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodebook/models"
)

func newTestLedger(opts ...Option) *Ledger {
	seq := 0
	base := []Option{
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("bet-%d", seq)
		}),
		WithClock(func() time.Time {
			return time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
		}),
	}
	return New(append(base, opts...)...)
}

func pairBet(number string, stake int64) models.Bet {
	return models.Bet{Kind: models.KindPair, Numbers: []string{number}, Stake: stake}
}

func TestLedgerAdd(t *testing.T) {
	t.Run("assigns id and timestamps", func(t *testing.T) {
		l := newTestLedger()

		bet, err := l.Add(pairBet("25", 10000))
		require.NoError(t, err)

		assert.Equal(t, "bet-1", bet.ID)
		assert.False(t, bet.CreatedAt.IsZero())
		assert.Equal(t, bet.CreatedAt, bet.UpdatedAt)
		assert.Equal(t, 1, l.Len())
	})

	t.Run("rejects invalid bet without mutating", func(t *testing.T) {
		l := newTestLedger()

		_, err := l.Add(pairBet("25", 0))
		require.Error(t, err)

		var validationErr *models.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, 0, l.Len())
		assert.False(t, l.Undo(), "failed add must not pollute the undo stack")
	})

	t.Run("returned bet is a copy", func(t *testing.T) {
		l := newTestLedger()

		bet, err := l.Add(pairBet("25", 10000))
		require.NoError(t, err)

		bet.Numbers[0] = "99"
		stored, ok := l.Get(bet.ID)
		require.True(t, ok)
		assert.Equal(t, []string{"25"}, stored.Numbers)
	})
}

func TestLedgerBulkAdd(t *testing.T) {
	t.Run("bad items are skipped with per-item errors", func(t *testing.T) {
		l := newTestLedger()

		result := l.BulkAdd([]models.Bet{
			pairBet("12", 5000),
			pairBet("34", 0),
			pairBet("56", 7000),
		})

		assert.Len(t, result.Added, 2)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, 1, result.Errors[0].Index)
		assert.Equal(t, 2, l.Len())
	})

	t.Run("one undo reverts the whole batch", func(t *testing.T) {
		l := newTestLedger()

		result := l.BulkAdd([]models.Bet{
			pairBet("12", 5000),
			pairBet("34", 6000),
		})
		require.Len(t, result.Added, 2)

		require.True(t, l.Undo())
		assert.Equal(t, 0, l.Len())
	})
}

func TestLedgerUpdate(t *testing.T) {
	t.Run("merges patch and bumps updatedAt", func(t *testing.T) {
		current := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
		l := newTestLedger(WithClock(func() time.Time { return current }))

		bet, err := l.Add(pairBet("25", 10000))
		require.NoError(t, err)

		current = current.Add(time.Minute)
		stake := int64(20000)
		updated, err := l.Update(bet.ID, Patch{Stake: &stake})
		require.NoError(t, err)

		assert.Equal(t, int64(20000), updated.Stake)
		assert.Equal(t, []string{"25"}, updated.Numbers, "unpatched fields stay")
		assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
	})

	t.Run("invalid merged record leaves the bet untouched", func(t *testing.T) {
		l := newTestLedger()

		bet, err := l.Add(pairBet("25", 10000))
		require.NoError(t, err)

		stake := int64(-1)
		_, err = l.Update(bet.ID, Patch{Stake: &stake})
		require.Error(t, err)

		stored, ok := l.Get(bet.ID)
		require.True(t, ok)
		assert.Equal(t, int64(10000), stored.Stake)
	})

	t.Run("unknown id", func(t *testing.T) {
		l := newTestLedger()

		_, err := l.Update("missing", Patch{})
		var notFound *models.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestLedgerRemove(t *testing.T) {
	l := newTestLedger()

	first, err := l.Add(pairBet("12", 5000))
	require.NoError(t, err)
	second, err := l.Add(pairBet("34", 6000))
	require.NoError(t, err)

	removed, err := l.Remove(first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, removed.ID)

	bets := l.Bets()
	require.Len(t, bets, 1)
	assert.Equal(t, second.ID, bets[0].ID)

	_, err = l.Remove(first.ID)
	var notFound *models.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestLedgerUndoRedo(t *testing.T) {
	t.Run("undo restores exact prior list and redo reapplies it", func(t *testing.T) {
		l := newTestLedger()

		_, err := l.Add(pairBet("12", 5000))
		require.NoError(t, err)
		before := l.Bets()

		added, err := l.Add(pairBet("34", 6000))
		require.NoError(t, err)
		after := l.Bets()

		require.True(t, l.Undo())
		assert.Equal(t, before, l.Bets())

		require.True(t, l.Redo())
		assert.Equal(t, after, l.Bets())
		_, ok := l.Get(added.ID)
		assert.True(t, ok)
	})

	t.Run("empty stacks report false", func(t *testing.T) {
		l := newTestLedger()

		assert.False(t, l.Undo())
		assert.False(t, l.Redo())
	})

	t.Run("new mutation clears redo", func(t *testing.T) {
		l := newTestLedger()

		_, err := l.Add(pairBet("12", 5000))
		require.NoError(t, err)
		require.True(t, l.Undo())

		_, err = l.Add(pairBet("34", 6000))
		require.NoError(t, err)

		assert.False(t, l.Redo())
	})

	t.Run("depth bound drops oldest snapshots", func(t *testing.T) {
		l := newTestLedger(WithMaxDepth(2))

		for i := 0; i < 5; i++ {
			_, err := l.Add(pairBet("12", int64(1000*(i+1))))
			require.NoError(t, err)
		}

		assert.True(t, l.Undo())
		assert.True(t, l.Undo())
		assert.False(t, l.Undo())
		assert.Equal(t, 3, l.Len())
	})

	t.Run("clear is undoable", func(t *testing.T) {
		l := newTestLedger()

		_, err := l.Add(pairBet("12", 5000))
		require.NoError(t, err)
		before := l.Bets()

		l.Clear()
		assert.Equal(t, 0, l.Len())

		require.True(t, l.Undo())
		assert.Equal(t, before, l.Bets())
	})
}

func TestLedgerLoad(t *testing.T) {
	l := newTestLedger()

	_, err := l.Add(pairBet("12", 5000))
	require.NoError(t, err)

	l.Load([]models.Bet{
		{ID: "restored-1", Kind: models.KindSpecial, Numbers: []string{"68"}, Stake: 5000},
	})

	assert.Equal(t, 1, l.Len())
	assert.False(t, l.Undo(), "load resets undo state")
}

func TestLedgerHistoryAndStatistics(t *testing.T) {
	l := newTestLedger()

	_, err := l.Add(pairBet("12", 5000))
	require.NoError(t, err)
	_, err = l.Add(models.Bet{Kind: models.KindSpecial, Numbers: []string{"68"}, Stake: 7000})
	require.NoError(t, err)
	_, err = l.Add(pairBet("34", 3000))
	require.NoError(t, err)

	history := l.History(2)
	require.Len(t, history, 2)
	assert.Equal(t, "add", history[0].Action)

	stats := l.Statistics()
	assert.Equal(t, KindStats{Count: 2, TotalStake: 8000}, stats[models.KindPair])
	assert.Equal(t, KindStats{Count: 1, TotalStake: 7000}, stats[models.KindSpecial])
}
