package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultsStore_Refresh(t *testing.T) {
	paths := setupFixture(t)
	store := NewResultsStore(newTestService(t, paths))

	assert.Empty(t, store.Semesters())

	require.NoError(t, store.Refresh())
	require.Len(t, store.Semesters(), 1)

	p, ok := store.Semester("Semester 1")
	require.True(t, ok)
	assert.Equal(t, "Semester 1", p.Run.Semester.Name)

	_, ok = store.Semester("Semester 9")
	assert.False(t, ok)

	assert.InDelta(t, 4.0, store.CumulativeGPA(230001), 1e-9)
	assert.InDelta(t, 0.0, store.CumulativeGPA(999999), 1e-9)
}

func TestResultsStore_RefreshKeepsSnapshotOnError(t *testing.T) {
	paths := setupFixture(t)
	store := NewResultsStore(newTestService(t, paths))
	require.NoError(t, store.Refresh())

	// Break the semester config so the next refresh fails.
	writeTestFile(t, paths.SemestersDir+"/sem1.json", "{not json")

	require.Error(t, store.Refresh())
	assert.Len(t, store.Semesters(), 1)
}
