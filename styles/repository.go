package styles

import "sync"

// Repository canonicalises styles: equal styles added to the same
// repository resolve to one shared instance.  A workbook owns one
// repository; worksheets created outside a workbook own their own.
//
// A Repository is safe for concurrent use.  Styles must not be mutated
// after they were added, since their hash would no longer match their
// bucket.
type Repository struct {
	mu     sync.Mutex
	byHash map[uint64][]*Style
	order  []*Style
}

// NewRepository returns an empty repository.
func NewRepository() *Repository {
	return &Repository{byHash: make(map[uint64][]*Style)}
}

// Add returns the canonical instance for s.  When an equal style was added
// before, that instance is returned and s is discarded; otherwise s itself
// is stored and returned.  Add(nil) returns nil without error.  An
// incomplete style yields an ErrStyle error.
func (r *Repository) Add(s *Style) (*Style, error) {
	if s == nil {
		return nil, nil
	}
	h, err := s.Hash()
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byHash == nil {
		r.byHash = make(map[uint64][]*Style)
	}
	for _, existing := range r.byHash[h] {
		if existing.Equal(s) {
			return existing, nil
		}
	}
	r.byHash[h] = append(r.byHash[h], s)
	r.order = append(r.order, s)
	return s, nil
}

// Contains reports whether a style equal to s has been added.
func (r *Repository) Contains(s *Style) bool {
	h, err := s.Hash()
	if err != nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byHash[h] {
		if existing.Equal(s) {
			return true
		}
	}
	return false
}

// Styles returns the canonical styles in the order they were first added.
func (r *Repository) Styles() []*Style {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Style, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of distinct styles.
func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// Flush removes all styles.
func (r *Repository) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byHash = make(map[uint64][]*Style)
	r.order = nil
}
