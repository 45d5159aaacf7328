package formstate

import "sync"

// ticket identifies one started validation. Results are applied only while the
// ticket's epoch is current and, with sequencing, while seq is the field's latest.
type ticket struct {
	epoch uint64
	seq   uint64
}

// store is the Field State Store: one immutable FieldState record per declared
// field, plus the schema-level error kept beside (not inside) the record.
// Entries are created once and never added or removed.
type store struct {
	mu         sync.RWMutex
	order      []string
	states     map[string]FieldState
	schemaErrs map[string]FieldError
	seqs       map[string]uint64
	epoch      uint64
}

func newStore(fields []string) *store {
	s := &store{
		order:      append([]string(nil), fields...),
		states:     make(map[string]FieldState, len(fields)),
		schemaErrs: make(map[string]FieldError),
		seqs:       make(map[string]uint64, len(fields)),
	}
	for _, name := range fields {
		s.states[name] = FieldState{}
	}
	return s
}

func (s *store) has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.states[name]
	return ok
}

func (s *store) get(name string) (FieldState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.states[name]
	return st, ok
}

// patch replaces one field's record with fn(old).
func (s *store) patch(name string, fn func(FieldState) FieldState) (FieldState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.states[name]
	if !ok {
		return FieldState{}, false
	}
	next := fn(old)
	s.states[name] = next
	return next, true
}

// patchAll replaces every field's record under one lock.
func (s *store) patchAll(fn func(FieldState) FieldState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, st := range s.states {
		s.states[name] = fn(st)
	}
}

func (s *store) schemaError(name string) (FieldError, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fe, ok := s.schemaErrs[name]
	return fe, ok
}

func (s *store) clearSchemaError(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.schemaErrs, name)
}

// begin starts a validation for name and returns its ticket.
func (s *store) begin(name string) ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seqs[name]++
	return ticket{epoch: s.epoch, seq: s.seqs[name]}
}

// apply runs fn against name's record if t is still current. The schema error
// is replaced by schemaErr when setSchemaErr is true.
func (s *store) apply(name string, t ticket, sequenced bool, fn func(FieldState) FieldState, setSchemaErr bool, schemaErr *FieldError) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.epoch != s.epoch {
		return false
	}
	if sequenced && t.seq != s.seqs[name] {
		return false
	}
	st, ok := s.states[name]
	if !ok {
		return false
	}
	s.states[name] = fn(st)
	if setSchemaErr {
		if schemaErr != nil {
			s.schemaErrs[name] = *schemaErr
		} else {
			delete(s.schemaErrs, name)
		}
	}
	return true
}

// reset restores every record to its initial state and invalidates in-flight tickets.
func (s *store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	for name := range s.states {
		s.states[name] = FieldState{}
	}
	s.schemaErrs = make(map[string]FieldError)
}

// fields returns the declared names in declaration order.
func (s *store) fields() []string {
	return append([]string(nil), s.order...)
}
