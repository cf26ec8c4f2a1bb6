// Package storage defines the Storage interface, the contract any record
// store must satisfy to back the students API.
//
// Handlers depend only on this interface, so the in-memory store used for
// development and the SQLite store are interchangeable, and tests can pass
// either without touching the handlers.
package storage

import (
	"errors"

	"github.com/aanand-mishra/students-roster/internal/types"
)

// ErrNotFound is returned when no student has the requested id.
var ErrNotFound = errors.New("student not found")

// Storage is the record store contract.
type Storage interface {
	// CreateStudent inserts a new student and returns it with its
	// server-assigned ID.
	CreateStudent(in types.StudentInput) (types.Student, error)

	// GetStudentByID fetches a single student. Returns ErrNotFound if absent.
	GetStudentByID(id int64) (types.Student, error)

	// GetStudents returns every student in insertion order.
	// Returns an empty slice (not nil) if there are no students.
	GetStudents() ([]types.Student, error)

	// UpdateStudentByID replaces every field of an existing student and
	// returns the stored record. Returns ErrNotFound if absent.
	UpdateStudentByID(id int64, in types.StudentInput) (types.Student, error)

	// DeleteStudentByID removes a student. Returns ErrNotFound if absent.
	DeleteStudentByID(id int64) error

	// Close releases the underlying resources.
	Close() error
}

// Seed is the demo roster a fresh store starts with.
func Seed() []types.StudentInput {
	return []types.StudentInput{
		{Name: "Alice", Age: 20, Major: "Informatique"},
		{Name: "Bob", Age: 22, Major: "Mathématiques"},
		{Name: "Charlie", Age: 21, Major: "Physique"},
	}
}

// SeedIfEmpty fills s with Seed when it holds no students.
func SeedIfEmpty(s Storage) error {
	existing, err := s.GetStudents()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, in := range Seed() {
		if _, err := s.CreateStudent(in); err != nil {
			return err
		}
	}
	return nil
}
