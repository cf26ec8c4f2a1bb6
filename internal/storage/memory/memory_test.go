package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-roster/internal/storage"
	"github.com/aanand-mishra/students-roster/internal/storage/storagetest"
	"github.com/aanand-mishra/students-roster/internal/types"
)

func TestMemory(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage { return New() })
}

func TestMemory_ReusesTopID(t *testing.T) {
	m := New()
	_, err := m.CreateStudent(types.StudentInput{Name: "Alice", Age: 20})
	require.NoError(t, err)
	b, err := m.CreateStudent(types.StudentInput{Name: "Bob", Age: 22})
	require.NoError(t, err)
	require.NoError(t, m.DeleteStudentByID(b.ID))

	c, err := m.CreateStudent(types.StudentInput{Name: "Charlie", Age: 21})
	require.NoError(t, err)
	assert.Equal(t, b.ID, c.ID)
}

func TestMemory_ListIsACopy(t *testing.T) {
	m := New()
	_, err := m.CreateStudent(types.StudentInput{Name: "Alice", Age: 20})
	require.NoError(t, err)

	list, err := m.GetStudents()
	require.NoError(t, err)
	list[0].Name = "mutated"

	got, err := m.GetStudentByID(list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
}
