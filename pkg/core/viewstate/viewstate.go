// Package viewstate holds the client-side snapshots of refreshable lists.
// Every read is a full replace of the previous snapshot; there is no merge
// or diffing logic. The sequencing discipline here is what prevents a slow
// refresh from overwriting the data of a newer one.
package viewstate

import (
	"sync"
	"sync/atomic"
)

// List is the snapshot of one refreshable view. A refresh takes a ticket
// with Begin, fetches, and offers the result to Apply; only the response
// for the latest-issued ticket is applied, so out-of-order completions are
// discarded instead of causing a stale overwrite.
type List[T any] struct {
	mu      sync.Mutex
	seq     uint64
	applied uint64
	items   []T
}

// Begin issues a ticket for a refresh. Issuing a newer ticket invalidates
// all outstanding ones.
func (l *List[T]) Begin() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	return l.seq
}

// Apply replaces the snapshot with items if ticket is still the latest
// issued. It reports whether the snapshot was replaced.
func (l *List[T]) Apply(ticket uint64, items []T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if ticket != l.seq {
		return false
	}

	l.applied = ticket
	l.items = items
	return true
}

// Items returns the current snapshot. A refresh failure leaves the previous
// snapshot in place, so this is always the last-known-good list.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.items
}

// Gate guards a user action against duplicate submission while a previous
// attempt is still in flight.
type Gate struct {
	busy atomic.Bool
}

// TryBegin reports whether the action may start. It returns false while a
// prior TryBegin has not been matched by End.
func (g *Gate) TryBegin() bool {
	return g.busy.CompareAndSwap(false, true)
}

// End releases the gate. Safe to defer immediately after a successful
// TryBegin.
func (g *Gate) End() {
	g.busy.Store(false)
}
