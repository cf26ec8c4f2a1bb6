// Package storagetest runs the same behavioural checks against every
// storage.Storage implementation.
package storagetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-roster/internal/storage"
	"github.com/aanand-mishra/students-roster/internal/types"
)

// Run exercises a fresh store returned by open for each subtest.
func Run(t *testing.T, open func(t *testing.T) storage.Storage) {
	t.Run("empty list is not nil", func(t *testing.T) {
		s := open(t)
		students, err := s.GetStudents()
		require.NoError(t, err)
		assert.NotNil(t, students)
		assert.Empty(t, students)
	})

	t.Run("create assigns increasing ids", func(t *testing.T) {
		s := open(t)
		a, err := s.CreateStudent(types.StudentInput{Name: "Alice", Age: 20, Major: "Informatique"})
		require.NoError(t, err)
		b, err := s.CreateStudent(types.StudentInput{Name: "Bob", Age: 22, Email: "bob@example.com"})
		require.NoError(t, err)

		assert.Positive(t, a.ID)
		assert.Greater(t, b.ID, a.ID)
		assert.Equal(t, "Informatique", a.Major)
		assert.Equal(t, "bob@example.com", b.Email)

		got, err := s.GetStudentByID(b.ID)
		require.NoError(t, err)
		assert.Equal(t, b, got)
	})

	t.Run("list keeps insertion order", func(t *testing.T) {
		s := open(t)
		for _, in := range storage.Seed() {
			_, err := s.CreateStudent(in)
			require.NoError(t, err)
		}
		students, err := s.GetStudents()
		require.NoError(t, err)
		require.Len(t, students, 3)
		assert.Equal(t, "Alice", students[0].Name)
		assert.Equal(t, "Bob", students[1].Name)
		assert.Equal(t, "Charlie", students[2].Name)
	})

	t.Run("update overwrites all fields", func(t *testing.T) {
		s := open(t)
		created, err := s.CreateStudent(types.StudentInput{Name: "Alice", Age: 20, Major: "Informatique"})
		require.NoError(t, err)

		updated, err := s.UpdateStudentByID(created.ID, types.StudentInput{Name: "Alicia", Age: 21, Major: "Chimie"})
		require.NoError(t, err)
		assert.Equal(t, types.Student{ID: created.ID, Name: "Alicia", Age: 21, Major: "Chimie"}, updated)

		got, err := s.GetStudentByID(created.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("missing ids report not found", func(t *testing.T) {
		s := open(t)
		_, err := s.GetStudentByID(42)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		_, err = s.UpdateStudentByID(42, types.StudentInput{Name: "X", Age: 1})
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, s.DeleteStudentByID(42), storage.ErrNotFound)
	})

	t.Run("delete removes exactly one", func(t *testing.T) {
		s := open(t)
		a, err := s.CreateStudent(types.StudentInput{Name: "Alice", Age: 20})
		require.NoError(t, err)
		b, err := s.CreateStudent(types.StudentInput{Name: "Bob", Age: 22})
		require.NoError(t, err)

		require.NoError(t, s.DeleteStudentByID(a.ID))
		assert.ErrorIs(t, s.DeleteStudentByID(a.ID), storage.ErrNotFound)

		students, err := s.GetStudents()
		require.NoError(t, err)
		assert.Equal(t, []types.Student{b}, students)
	})

	t.Run("seed only fills an empty store", func(t *testing.T) {
		s := open(t)
		require.NoError(t, storage.SeedIfEmpty(s))
		require.NoError(t, storage.SeedIfEmpty(s))
		students, err := s.GetStudents()
		require.NoError(t, err)
		assert.Len(t, students, len(storage.Seed()))
	})
}
