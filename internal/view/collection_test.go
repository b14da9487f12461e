package view

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"cpms/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource is a scripted stand-in for the client proxy.
type fakeSource struct {
	mu        sync.Mutex
	items     []models.Task
	listErr   error
	updateErr map[string]error
	deleteErr error
	listCalls int
	updates   []appliedUpdate
}

type appliedUpdate struct {
	id     string
	fields map[string]any
}

func (f *fakeSource) List(ctx context.Context) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Task, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeSource) Update(ctx context.Context, id string, fields map[string]any) (models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.updateErr[id]; err != nil {
		return models.Task{}, err
	}
	f.updates = append(f.updates, appliedUpdate{id: id, fields: fields})
	for i, it := range f.items {
		if it.ID == id {
			f.items[i].DisplayOrder = fields["displayOrder"].(int)
			return f.items[i], nil
		}
	}
	return models.Task{}, errors.New("no such task")
}

func (f *fakeSource) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, it := range f.items {
		if it.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return errors.New("no such task")
}

func (f *fakeSource) appliedOrders() map[string]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]int{}
	for _, u := range f.updates {
		out[u.id] = u.fields["displayOrder"].(int)
	}
	return out
}

func task(id, name string, order int) models.Task {
	t := models.Task{TaskName: name, DisplayOrder: order}
	t.ID = id
	return t
}

func newReadyCollection(t *testing.T, src *fakeSource) *Collection[models.Task] {
	t.Helper()
	c := NewCollection[models.Task](src)
	require.NoError(t, c.Load(context.Background()))
	require.Equal(t, StateReady, c.State())
	return c
}

func TestLoadStates(t *testing.T) {
	src := &fakeSource{items: []models.Task{task("a", "Design Review", 0)}}
	c := NewCollection[models.Task](src)
	assert.Equal(t, StateLoading, c.State())

	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, StateReady, c.State())
	assert.Len(t, c.Items(), 1)

	src.listErr = errors.New("boom")
	err := c.Load(context.Background())
	assert.Error(t, err)
	assert.Equal(t, StateError, c.State())
	assert.Equal(t, err, c.Err())
}

func TestFilterCaseInsensitive(t *testing.T) {
	src := &fakeSource{items: []models.Task{
		task("a", "Design Review", 0),
		task("b", "Site Survey", 1),
	}}
	c := newReadyCollection(t, src)

	got := c.Filter("design")
	require.Len(t, got, 1)
	assert.Equal(t, "Design Review", got[0].TaskName)

	got = c.Filter("SURVEY")
	require.Len(t, got, 1)
	assert.Equal(t, "Site Survey", got[0].TaskName)

	assert.Len(t, c.Filter(""), 2)
	assert.Empty(t, c.Filter("bridge"))

	// Filtering never mutates the held order.
	items := c.Items()
	assert.Equal(t, "Design Review", items[0].TaskName)
	assert.Equal(t, "Site Survey", items[1].TaskName)
}

func TestReorderPersistsChangedIndexesOnly(t *testing.T) {
	src := &fakeSource{items: []models.Task{
		task("a", "A", 0),
		task("b", "B", 1),
		task("c", "C", 2),
	}}
	c := newReadyCollection(t, src)

	// Move A to the end: every item's index changes.
	require.NoError(t, c.Reorder(context.Background(), 0, 2))
	assert.Equal(t, StateReady, c.State())

	assert.Equal(t, map[string]int{"a": 2, "b": 0, "c": 1}, src.appliedOrders())

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, []string{"B", "C", "A"}, []string{items[0].TaskName, items[1].TaskName, items[2].TaskName})
	// Local records carry the persisted displayOrder.
	assert.Equal(t, 0, items[0].DisplayOrder)
	assert.Equal(t, 1, items[1].DisplayOrder)
	assert.Equal(t, 2, items[2].DisplayOrder)
}

func TestReorderSkipsUnchangedItems(t *testing.T) {
	src := &fakeSource{items: []models.Task{
		task("a", "A", 0),
		task("b", "B", 1),
		task("c", "C", 2),
	}}
	c := newReadyCollection(t, src)

	// Move C to index 1: A keeps index 0 and must not be updated.
	require.NoError(t, c.Reorder(context.Background(), 2, 1))

	orders := src.appliedOrders()
	assert.Equal(t, map[string]int{"c": 1, "b": 2}, orders)
	_, touched := orders["a"]
	assert.False(t, touched)
}

func TestReorderNoOps(t *testing.T) {
	src := &fakeSource{items: []models.Task{task("a", "A", 0), task("b", "B", 1)}}
	c := newReadyCollection(t, src)

	require.NoError(t, c.Reorder(context.Background(), 1, 1))
	require.NoError(t, c.Reorder(context.Background(), -1, 0))
	require.NoError(t, c.Reorder(context.Background(), 0, 5))
	assert.Empty(t, src.appliedOrders())
	assert.Equal(t, StateReady, c.State())
}

func TestReorderFailureRefetches(t *testing.T) {
	src := &fakeSource{
		items: []models.Task{
			task("a", "A", 0),
			task("b", "B", 1),
			task("c", "C", 2),
		},
		updateErr: map[string]error{"b": errors.New("persist failed")},
	}
	c := newReadyCollection(t, src)
	listCallsBefore := src.listCalls

	err := c.Reorder(context.Background(), 0, 2)
	require.Error(t, err)
	assert.Equal(t, StateError, c.State())
	assert.Equal(t, err, c.Err())
	assert.Equal(t, listCallsBefore+1, src.listCalls, "failure triggers a refetch")
}

func TestRemove(t *testing.T) {
	src := &fakeSource{items: []models.Task{task("a", "A", 0), task("b", "B", 1)}}
	c := newReadyCollection(t, src)

	require.NoError(t, c.Remove(context.Background(), "a"))
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "B", items[0].TaskName)

	src.deleteErr = errors.New("denied")
	err := c.Remove(context.Background(), "b")
	require.Error(t, err)
	assert.Len(t, c.Items(), 1, "failed delete leaves the view untouched")
}

func TestUpsert(t *testing.T) {
	src := &fakeSource{items: []models.Task{task("a", "A", 0)}}
	c := newReadyCollection(t, src)

	c.Upsert(task("b", "B", 1))
	assert.Len(t, c.Items(), 2)

	renamed := task("a", "A renamed", 0)
	c.Upsert(renamed)
	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "A renamed", items[0].TaskName)

	// Order of untouched items is preserved.
	names := []string{items[0].TaskName, items[1].TaskName}
	sort.Strings(names)
	assert.Equal(t, []string{"A renamed", "B"}, names)
}
