package domain

// IdentifierSet is a de-duplicating set of ids that remembers insertion order,
// so a batch of requests can be zipped back to the ids that produced it.
// The zero value is ready to use.
type IdentifierSet struct {
	ids  []string
	seen map[string]struct{}
}

// NewIdentifierSet returns a set holding ids.
func NewIdentifierSet(ids ...string) *IdentifierSet {
	s := &IdentifierSet{}
	s.Add(ids...)
	return s
}

// Add inserts ids that are not already present. Empty ids are ignored.
func (s *IdentifierSet) Add(ids ...string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := s.seen[id]; ok {
			continue
		}
		s.seen[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
}

// Contains reports whether id is in the set.
func (s *IdentifierSet) Contains(id string) bool {
	_, ok := s.seen[id]
	return ok
}

// Len returns the number of distinct ids.
func (s *IdentifierSet) Len() int {
	return len(s.ids)
}

// Slice returns the ids in insertion order. The caller owns the returned slice.
func (s *IdentifierSet) Slice() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}
