// Package memory provides an in-memory implementation of storage.Storage.
//
// Records live in a slice guarded by a mutex. A new record gets the highest
// existing ID plus one, so IDs freed by deleting the last record are reused.
package memory

import (
	"fmt"
	"sync"

	"github.com/aanand-mishra/students-roster/internal/storage"
	"github.com/aanand-mishra/students-roster/internal/types"
)

// Memory is a process-local student store.
type Memory struct {
	mu       sync.RWMutex
	students []types.Student
}

// New returns an empty store.
func New() *Memory {
	return &Memory{students: make([]types.Student, 0)}
}

func (m *Memory) CreateStudent(in types.StudentInput) (types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var maxID int64
	for _, s := range m.students {
		if s.ID > maxID {
			maxID = s.ID
		}
	}

	student := in.WithID(maxID + 1)
	m.students = append(m.students, student)
	return student, nil
}

func (m *Memory) GetStudentByID(id int64) (types.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.index(id); i >= 0 {
		return m.students[i], nil
	}
	return types.Student{}, fmt.Errorf("GetStudentByID %d: %w", id, storage.ErrNotFound)
}

func (m *Memory) GetStudents() ([]types.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.Student, len(m.students))
	copy(out, m.students)
	return out, nil
}

func (m *Memory) UpdateStudentByID(id int64, in types.StudentInput) (types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return types.Student{}, fmt.Errorf("UpdateStudentByID %d: %w", id, storage.ErrNotFound)
	}
	m.students[i] = in.WithID(id)
	return m.students[i], nil
}

func (m *Memory) DeleteStudentByID(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return fmt.Errorf("DeleteStudentByID %d: %w", id, storage.ErrNotFound)
	}
	m.students = append(m.students[:i], m.students[i+1:]...)
	return nil
}

func (m *Memory) Close() error { return nil }

// index must be called with mu held.
func (m *Memory) index(id int64) int {
	for i, s := range m.students {
		if s.ID == id {
			return i
		}
	}
	return -1
}
