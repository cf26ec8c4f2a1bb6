package roster

import (
	"sync"

	"github.com/aanand-mishra/students-roster/internal/form"
	"github.com/aanand-mishra/students-roster/internal/types"
)

// State is a point-in-time copy of the store, safe to render.
type State struct {
	Students []types.Student
	Form     form.Fields
	// Editing is the record loaded into the form, nil when idle.
	Editing *types.Student
	Loading bool
	Err     string
}

// Empty reports whether there is nothing to list.
func (s State) Empty() bool { return len(s.Students) == 0 }

// IsEditing reports whether the form is in edit mode.
func (s State) IsEditing() bool { return s.Editing != nil }

// Store is the local copy of the roster plus the form and status it is
// displayed with. It is not authoritative: it holds the server's last known
// state and is only mutated after a call settles. All methods are safe for
// concurrent use.
type Store struct {
	mu       sync.Mutex
	students []types.Student
	form     form.Fields
	editing  *types.Student
	loading  bool
	err      string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{students: make([]types.Student, 0)}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Students: make([]types.Student, len(s.students)),
		Form:     s.form,
		Loading:  s.loading,
		Err:      s.err,
	}
	copy(st.Students, s.students)
	if s.editing != nil {
		e := *s.editing
		st.Editing = &e
	}
	return st
}

// Replace swaps the whole list, keeping the given order.
func (s *Store) Replace(students []types.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.students = make([]types.Student, len(students))
	copy(s.students, students)
}

// Append adds a record at the end.
func (s *Store) Append(st types.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.students = append(s.students, st)
}

// Remove drops every entry with id and reports how many went.
func (s *Store) Remove(id int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.students[:0:0]
	for _, st := range s.students {
		if st.ID != id {
			kept = append(kept, st)
		}
	}
	removed := len(s.students) - len(kept)
	s.students = kept
	return removed
}

// ReplaceOne overwrites the entries sharing st.ID and reports how many
// matched. A record no longer in the list is not re-added.
func (s *Store) ReplaceOne(st types.Student) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for i := range s.students {
		if s.students[i].ID == st.ID {
			s.students[i] = st
			n++
		}
	}
	return n
}

// Find returns the entry with id.
func (s *Store) Find(id int64) (types.Student, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range s.students {
		if st.ID == id {
			return st, true
		}
	}
	return types.Student{}, false
}

// SetForm replaces the raw form values.
func (s *Store) SetForm(f form.Fields) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.form = f
}

// Form returns the raw form values.
func (s *Store) Form() form.Fields {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.form
}

// StartEditing loads st into the form and enters edit mode.
func (s *Store) StartEditing(st types.Student, f form.Fields) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.editing = &st
	s.form = f
}

// Editing returns the edit target.
func (s *Store) Editing() (types.Student, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.editing == nil {
		return types.Student{}, false
	}
	return *s.editing, true
}

// ResetForm clears every field and leaves edit mode.
func (s *Store) ResetForm() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.form = form.Fields{}
	s.editing = nil
}

// TryBeginLoading sets the loading flag unless it is already set.
func (s *Store) TryBeginLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return false
	}
	s.loading = true
	return true
}

// EndLoading clears the loading flag.
func (s *Store) EndLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
}

// SetError stores the message shown to the user. "" clears it.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.err = msg
}
