package view

import (
	"context"
	"strings"
)

type State int

const (
	StateLoading State = iota
	StateReady
	StateReordering
	StateError
)

// Entry is what the collection needs from an item: identity, its persisted
// displayOrder, and the fields text search runs over.
type Entry interface {
	EntryID() string
	OrderIndex() int
	SearchText() []string
}

// Source is the slice of the client proxy a collection drives:
// client.Resource[T] satisfies it.
type Source[T Entry] interface {
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, id string, fields map[string]any) (T, error)
	Delete(ctx context.Context, id string) error
}

// Collection is the view-model behind a searchable, drag-reorderable list of
// one entity type. It is owned by a single presentation flow and is not safe
// for concurrent use; the only internal concurrency is the reorder fan-out,
// which is fully collected before Reorder returns.
type Collection[T Entry] struct {
	src   Source[T]
	state State
	items []T
	err   error
}

func NewCollection[T Entry](src Source[T]) *Collection[T] {
	return &Collection[T]{src: src, state: StateLoading}
}

func (c *Collection[T]) State() State { return c.state }

func (c *Collection[T]) Err() error { return c.err }

// Items returns the current list in view order.
func (c *Collection[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Load fetches the authoritative list. Loading → Ready, or Loading → Error.
func (c *Collection[T]) Load(ctx context.Context) error {
	c.state = StateLoading
	c.err = nil
	items, err := c.src.List(ctx)
	if err != nil {
		c.state = StateError
		c.err = err
		return err
	}
	c.items = items
	c.state = StateReady
	return nil
}

// Filter returns the items whose search fields contain term,
// case-insensitively. It is a pure view over the held list: the underlying
// order is never touched and no network call is made.
func (c *Collection[T]) Filter(term string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return c.Items()
	}
	var out []T
	for _, it := range c.items {
		for _, field := range it.SearchText() {
			if strings.Contains(strings.ToLower(field), term) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

type orderUpdate struct {
	pos int
	id  string
}

type orderResult[T any] struct {
	pos int
	rec T
	err error
}

// Reorder moves the item at src to dst, shows the new order immediately, and
// persists displayOrder = index for every item whose index no longer matches
// its stored order. The updates run concurrently and Reorder returns once all
// have settled. Any failure flips the view to Error and refetches the
// authoritative list — partial application is corrected by refetch, not by
// rollback.
func (c *Collection[T]) Reorder(ctx context.Context, src, dst int) error {
	if c.state != StateReady {
		return nil
	}
	n := len(c.items)
	if src < 0 || src >= n || dst < 0 || dst >= n || src == dst {
		return nil
	}

	moved := make([]T, 0, n)
	moved = append(moved, c.items[:src]...)
	moved = append(moved, c.items[src+1:]...)
	moved = append(moved[:dst], append([]T{c.items[src]}, moved[dst:]...)...)

	c.items = moved
	c.state = StateReordering

	var updates []orderUpdate
	for i, it := range moved {
		if it.OrderIndex() != i {
			updates = append(updates, orderUpdate{pos: i, id: it.EntryID()})
		}
	}

	results := make(chan orderResult[T], len(updates))
	for _, u := range updates {
		go func(u orderUpdate) {
			rec, err := c.src.Update(ctx, u.id, map[string]any{"displayOrder": u.pos})
			results <- orderResult[T]{pos: u.pos, rec: rec, err: err}
		}(u)
	}

	var firstErr error
	for range updates {
		res := <-results
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		c.items[res.pos] = res.rec
	}

	if firstErr != nil {
		c.err = firstErr
		c.state = StateError
		if items, err := c.src.List(ctx); err == nil {
			c.items = items
		}
		return firstErr
	}

	c.state = StateReady
	return nil
}

// Remove deletes the record and drops it from the view. The caller is
// expected to have confirmed the deletion first.
func (c *Collection[T]) Remove(ctx context.Context, id string) error {
	if err := c.src.Delete(ctx, id); err != nil {
		c.err = err
		return err
	}
	for i, it := range c.items {
		if it.EntryID() == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	return nil
}

// Upsert reflects a modal save: replaces the item with the same id, or
// appends a newly created one.
func (c *Collection[T]) Upsert(item T) {
	for i, it := range c.items {
		if it.EntryID() == item.EntryID() {
			c.items[i] = item
			return
		}
	}
	c.items = append(c.items, item)
}
