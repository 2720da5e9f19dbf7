// Package ledger owns the authoritative in-memory list of bets. It is a
// single-writer structure: mutations are synchronous and callers needing
// concurrent access must serialize around it.
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"lodebook/models"
)

// DefaultMaxDepth bounds the undo and redo stacks.
const DefaultMaxDepth = 50

// maxHistory bounds the audit trail of mutating actions.
const maxHistory = 100

// HistoryEntry records one mutating action for the audit trail. It is
// informational only; undo/redo runs off full snapshots.
type HistoryEntry struct {
	Action  string
	Summary string
	At      time.Time
}

// Patch carries the fields a ledger update may change. Nil fields are left
// untouched.
type Patch struct {
	Kind    *models.BetKind
	Numbers []string
	Stake   *int64
}

// ItemError reports one failed candidate inside a bulk add.
type ItemError struct {
	Index   int
	Message string
}

// BulkResult carries the bets added by BulkAdd plus the per-item failures.
type BulkResult struct {
	Added  []models.Bet
	Errors []ItemError
}

// Ledger is the ordered bet collection with bounded-depth undo/redo. Undo
// uses whole-list deep-copy snapshots: more memory than diffing, but correct
// by construction even for multi-step mutations like bulk adds, and the list
// and stack depth are both bounded.
type Ledger struct {
	bets      []models.Bet
	undoStack [][]models.Bet
	redoStack [][]models.Bet
	maxDepth  int
	history   []HistoryEntry

	newID func() string
	now   func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithMaxDepth overrides the undo/redo stack bound.
func WithMaxDepth(depth int) Option {
	return func(l *Ledger) {
		if depth > 0 {
			l.maxDepth = depth
		}
	}
}

// WithIDGenerator overrides bet id assignment, for tests.
func WithIDGenerator(gen func() string) Option {
	return func(l *Ledger) { l.newID = gen }
}

// WithClock overrides the timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New returns an empty ledger.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		maxDepth: DefaultMaxDepth,
		newID:    uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load replaces the ledger contents without recording undo state. It is
// meant for restoring persisted bets at startup.
func (l *Ledger) Load(bets []models.Bet) {
	l.bets = cloneBets(bets)
	l.undoStack = nil
	l.redoStack = nil
}

// Add validates the candidate, assigns an id and timestamps, and appends it.
// On validation failure nothing changes.
func (l *Ledger) Add(candidate models.Bet) (models.Bet, error) {
	if err := candidate.Validate(); err != nil {
		return models.Bet{}, err
	}

	l.snapshot()
	bet := l.insert(candidate)
	l.logAction("add", fmt.Sprintf("%s %s x%d", bet.Kind, bet.NumbersLabel(), bet.Stake))
	return bet.Clone(), nil
}

// BulkAdd applies Add semantics to each candidate independently: one bad
// candidate never aborts the batch. A single snapshot covers the whole call,
// so one undo reverts the entire bulk.
func (l *Ledger) BulkAdd(candidates []models.Bet) BulkResult {
	l.snapshot()

	var result BulkResult
	for i, candidate := range candidates {
		if err := candidate.Validate(); err != nil {
			result.Errors = append(result.Errors, ItemError{Index: i, Message: err.Error()})
			continue
		}
		bet := l.insert(candidate)
		result.Added = append(result.Added, bet.Clone())
	}

	l.logAction("bulk-add", fmt.Sprintf("%d added, %d rejected", len(result.Added), len(result.Errors)))
	return result
}

// Update merges the patch into the bet with the given id and bumps its
// updatedAt. The merged record is re-validated before anything changes.
func (l *Ledger) Update(id string, patch Patch) (models.Bet, error) {
	idx := l.indexOf(id)
	if idx < 0 {
		return models.Bet{}, &models.NotFoundError{ID: id}
	}

	merged := l.bets[idx].Clone()
	if patch.Kind != nil {
		merged.Kind = *patch.Kind
	}
	if patch.Numbers != nil {
		merged.Numbers = append([]string(nil), patch.Numbers...)
	}
	if patch.Stake != nil {
		merged.Stake = *patch.Stake
	}
	if err := merged.Validate(); err != nil {
		return models.Bet{}, err
	}
	merged.UpdatedAt = l.now()

	l.snapshot()
	l.bets[idx] = merged
	l.logAction("update", fmt.Sprintf("%s %s x%d", merged.Kind, merged.NumbersLabel(), merged.Stake))
	return merged.Clone(), nil
}

// Remove deletes the bet with the given id.
func (l *Ledger) Remove(id string) (models.Bet, error) {
	idx := l.indexOf(id)
	if idx < 0 {
		return models.Bet{}, &models.NotFoundError{ID: id}
	}

	l.snapshot()
	removed := l.bets[idx]
	l.bets = append(l.bets[:idx], l.bets[idx+1:]...)
	l.logAction("remove", fmt.Sprintf("%s %s x%d", removed.Kind, removed.NumbersLabel(), removed.Stake))
	return removed.Clone(), nil
}

// Clear removes every bet.
func (l *Ledger) Clear() {
	l.snapshot()
	count := len(l.bets)
	l.bets = nil
	l.logAction("clear", fmt.Sprintf("%d bets removed", count))
}

// Undo restores the list state before the most recent mutation. It returns
// false when there is nothing to undo.
func (l *Ledger) Undo() bool {
	if len(l.undoStack) == 0 {
		return false
	}
	l.redoStack = append(l.redoStack, l.bets)
	l.bets = l.undoStack[len(l.undoStack)-1]
	l.undoStack = l.undoStack[:len(l.undoStack)-1]
	return true
}

// Redo re-applies the most recently undone mutation. It returns false when
// there is nothing to redo.
func (l *Ledger) Redo() bool {
	if len(l.redoStack) == 0 {
		return false
	}
	l.undoStack = append(l.undoStack, l.bets)
	l.bets = l.redoStack[len(l.redoStack)-1]
	l.redoStack = l.redoStack[:len(l.redoStack)-1]
	return true
}

// Bets returns a deep-copy snapshot of the current list in insertion order.
func (l *Ledger) Bets() []models.Bet {
	return cloneBets(l.bets)
}

// Get returns the bet with the given id.
func (l *Ledger) Get(id string) (models.Bet, bool) {
	idx := l.indexOf(id)
	if idx < 0 {
		return models.Bet{}, false
	}
	return l.bets[idx].Clone(), true
}

// Len returns the number of recorded bets.
func (l *Ledger) Len() int {
	return len(l.bets)
}

// History returns the most recent mutating actions, newest first.
func (l *Ledger) History(limit int) []HistoryEntry {
	if limit <= 0 || limit > len(l.history) {
		limit = len(l.history)
	}
	return append([]HistoryEntry(nil), l.history[:limit]...)
}

// KindStats summarizes the recorded bets of one kind.
type KindStats struct {
	Count      int
	TotalStake int64
}

// Statistics returns per-kind counts and stake totals.
func (l *Ledger) Statistics() map[models.BetKind]KindStats {
	stats := make(map[models.BetKind]KindStats)
	for i := range l.bets {
		s := stats[l.bets[i].Kind]
		s.Count++
		s.TotalStake += l.bets[i].Stake
		stats[l.bets[i].Kind] = s
	}
	return stats
}

func (l *Ledger) insert(candidate models.Bet) models.Bet {
	bet := candidate.Clone()
	bet.ID = l.newID()
	now := l.now()
	bet.CreatedAt = now
	bet.UpdatedAt = now
	l.bets = append(l.bets, bet)
	return bet
}

func (l *Ledger) indexOf(id string) int {
	for i := range l.bets {
		if l.bets[i].ID == id {
			return i
		}
	}
	return -1
}

// snapshot pushes a deep copy of the current list onto the undo stack and
// clears the redo stack, since a new mutation invalidates redone futures.
func (l *Ledger) snapshot() {
	l.undoStack = append(l.undoStack, cloneBets(l.bets))
	if len(l.undoStack) > l.maxDepth {
		l.undoStack = l.undoStack[1:]
	}
	l.redoStack = nil
}

func (l *Ledger) logAction(action, summary string) {
	entry := HistoryEntry{Action: action, Summary: summary, At: l.now()}
	l.history = append([]HistoryEntry{entry}, l.history...)
	if len(l.history) > maxHistory {
		l.history = l.history[:maxHistory]
	}
}

func cloneBets(bets []models.Bet) []models.Bet {
	out := make([]models.Bet, len(bets))
	for i := range bets {
		out[i] = bets[i].Clone()
	}
	return out
}
