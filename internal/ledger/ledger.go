// Package ledger owns the in-memory record collection. It is the sole owner
// of the records; remote sync and the read-side views only borrow snapshots
// or propose whole-collection replacement.
package ledger

import (
	"sync"

	"snackledger/internal/core"
)

// Ledger is an id-keyed record set backed by an ordered sequence reflecting
// insertion/fetch order. All operations are safe for concurrent use; the
// mutex is what keeps a user edit from interleaving with a fetch replace.
type Ledger struct {
	mu      sync.RWMutex
	records []core.Record
	index   map[int64]int
}

func New() *Ledger {
	return &Ledger{index: make(map[int64]int)}
}

// Upsert replaces the record with the same ID entirely, or appends it.
// No validation happens here; callers validate before entry.
func (l *Ledger) Upsert(r core.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i, ok := l.index[r.ID]; ok {
		l.records[i] = r
		return
	}
	l.index[r.ID] = len(l.records)
	l.records = append(l.records, r)
}

// Remove deletes the record with the given ID. Removing an absent ID is a
// no-op, not an error.
func (l *Ledger) Remove(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	i, ok := l.index[id]
	if !ok {
		return false
	}
	l.records = append(l.records[:i], l.records[i+1:]...)
	delete(l.index, id)
	for j := i; j < len(l.records); j++ {
		l.index[l.records[j].ID] = j
	}
	return true
}

// Get returns the record with the given ID, if present.
func (l *Ledger) Get(id int64) (core.Record, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i, ok := l.index[id]
	if !ok {
		return core.Record{}, false
	}
	return l.records[i], true
}

// Snapshot returns a point-in-time copy of the full sequence. Callers must
// treat it as read-only.
func (l *Ledger) Snapshot() []core.Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]core.Record, len(l.records))
	copy(out, l.records)
	return out
}

// ReplaceAll atomically swaps the entire collection, used after a remote
// fetch. Last writer wins at whole-collection granularity.
func (l *Ledger) ReplaceAll(records []core.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = make([]core.Record, len(records))
	copy(l.records, records)
	l.index = make(map[int64]int, len(records))
	for i, r := range l.records {
		l.index[r.ID] = i
	}
}

// Len returns the current record count.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}
