package checkin

import "sync"

// Store holds one session's verdict records in insertion order. It is
// append-only except for the administrative bulk override and the clear-all
// reset. The pending set shares pointers with the record list, so overriding
// a pending record flips the stored one.
type Store struct {
	mu      sync.Mutex
	records []*Record
	pending []*Record
}

func NewStore() *Store { return &Store{} }

// Append adds a freshly evaluated record. A record that did not pass also
// enters the pending-review set.
func (s *Store) Append(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := &rec
	s.records = append(s.records, r)
	if !r.Passed {
		s.pending = append(s.pending, r)
	}
}

// Records returns a snapshot of all records in insertion order.
func (s *Store) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	for i, r := range s.records {
		out[i] = *r
	}
	return out
}

// Pending returns a snapshot of the pending-review set.
func (s *Store) Pending() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.pending))
	for i, r := range s.pending {
		out[i] = *r
	}
	return out
}

// ApproveAllPending force-passes every pending record and empties the
// pending set. There is no per-record selection; calling it again without
// new records is a no-op. Returns how many records were approved.
func (s *Store) ApproveAllPending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.pending)
	for _, r := range s.pending {
		r.Passed = true
	}
	s.pending = nil
	return n
}

// Clear resets the session to its initial empty state.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.pending = nil
}

// Len reports the number of stored records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// PendingLen reports the size of the pending-review set.
func (s *Store) PendingLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Registry hands out one Store per session key, so concurrent sessions never
// share records.
type Registry struct {
	stores sync.Map // key -> *Store
}

func NewRegistry() *Registry { return &Registry{} }

func (r *Registry) Get(key string) *Store {
	if v, ok := r.stores.Load(key); ok {
		return v.(*Store)
	}
	v, _ := r.stores.LoadOrStore(key, NewStore())
	return v.(*Store)
}
