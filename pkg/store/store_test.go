package store

import (
	"errors"
	"testing"

	"github.com/limaJavier/courseplanning/pkg/model"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *PlanStore {
	t.Helper()
	store, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndLoad(t *testing.T) {
	//** Arrange
	store := newTestStore(t)
	plan := model.Plan{
		{Course: "CS101", Offering: "CS101-A", Term: 0},
		{Course: "CS102", Offering: "CS102-A", Term: 1},
	}

	//** Act
	saved, err := store.Save("first draft", plan)
	require.NoError(t, err)
	loaded, err := store.Load(saved.Id)

	//** Assert
	require.NoError(t, err)
	assert.NotEmpty(t, saved.Id)
	assert.Equal(t, saved.Id, loaded.Id)
	assert.Equal(t, "first draft", loaded.Label)
	assert.Equal(t, plan, loaded.Plan)
	assert.True(t, saved.CreatedAt.Equal(loaded.CreatedAt))
}

func TestLoadMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load("missing")

	assert.True(t, errors.Is(err, ErrPlanNotFound))
}

func TestListAndDelete(t *testing.T) {
	//** Arrange
	store := newTestStore(t)
	ids := make([]string, 0)
	for _, label := range []string{"a", "b", "c"} {
		saved, err := store.Save(label, model.Plan{{Course: label, Offering: "1", Term: 0}})
		require.NoError(t, err)
		ids = append(ids, saved.Id)
	}

	//** Act
	require.NoError(t, store.Delete(ids[1]))
	plans, err := store.List()

	//** Assert
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{ids[0], ids[2]}, lo.Map(plans, func(stored StoredPlan, _ int) string { return stored.Id }))
	assert.True(t, errors.Is(store.Delete(ids[1]), ErrPlanNotFound))
}

func TestOpenRequiresDirectory(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestOpenPersists(t *testing.T) {
	directory := t.TempDir()
	store, err := Open(directory)
	require.NoError(t, err)
	saved, err := store.Save("kept", model.Plan{{Course: "A", Offering: "1", Term: 2}})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(directory)
	require.NoError(t, err)
	defer reopened.Close()
	loaded, err := reopened.Load(saved.Id)

	require.NoError(t, err)
	assert.Equal(t, saved.Plan, loaded.Plan)
}
