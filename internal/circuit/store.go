package circuit

// Handle is a stable identifier for a record in the circuit arena.
// Handles are never reused within one Circuit.
type Handle uint64

// NoHandle is the zero Handle and never identifies a record.
const NoHandle Handle = 0

// Store is a typed record table keyed by Handle.
// Records are kept in insertion order so iteration is deterministic.
type Store[T any] struct {
	records map[Handle]T
	order   []Handle
}

// NewStore creates an empty store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		records: make(map[Handle]T),
		order:   make([]Handle, 0, 16),
	}
}

// Set inserts or replaces the record for h.
func (s *Store[T]) Set(h Handle, val T) {
	if _, exists := s.records[h]; !exists {
		s.order = append(s.order, h)
	}
	s.records[h] = val
}

// Get returns the record for h.
func (s *Store[T]) Get(h Handle) (T, bool) {
	val, ok := s.records[h]
	return val, ok
}

// Has reports whether h has a record in this store.
func (s *Store[T]) Has(h Handle) bool {
	_, ok := s.records[h]
	return ok
}

// Remove deletes the record for h, keeping the order of the others.
func (s *Store[T]) Remove(h Handle) {
	if _, exists := s.records[h]; !exists {
		return
	}
	delete(s.records, h)
	for i, e := range s.order {
		if e == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Handles returns a copy of all handles in insertion order.
func (s *Store[T]) Handles() []Handle {
	result := make([]Handle, len(s.order))
	copy(result, s.order)
	return result
}

// Len returns the number of records.
func (s *Store[T]) Len() int {
	return len(s.order)
}
