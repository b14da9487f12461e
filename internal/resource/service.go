package resource

import (
	"context"
	"encoding/json"
	"errors"
)

// Service sits between the HTTP layer and the store: it gates required
// fields, normalizes payloads against the schema and runs the optional
// post-read resolver (used to embed referenced records). Not-found stays the
// ErrNotFound sentinel all the way up; only real faults carry causes.
type Service[T any, PT Record[T]] struct {
	store  *Store[T, PT]
	schema Schema

	// Resolve, when set, runs on every record handed back to a caller.
	Resolve func(ctx context.Context, rec PT) error
}

func NewService[T any, PT Record[T]](store *Store[T, PT], schema Schema) *Service[T, PT] {
	return &Service[T, PT]{store: store, schema: schema}
}

func (s *Service[T, PT]) Schema() Schema { return s.schema }

func (s *Service[T, PT]) Create(ctx context.Context, payload []byte) (PT, error) {
	m, err := decodeObject(payload)
	if err != nil {
		return nil, err
	}
	if missing := s.schema.Missing(m); len(missing) > 0 {
		return nil, &ValidationError{Message: s.schema.MissingMessage(missing)}
	}
	s.schema.Normalize(m, true)
	if verr := s.schema.Check(m); verr != nil {
		return nil, verr
	}

	normalized, err := json.Marshal(m)
	if err != nil {
		return nil, &Fault{Op: "create " + s.schema.Name, Err: err}
	}
	var rec T
	pr := PT(&rec)
	if err := json.Unmarshal(normalized, pr); err != nil {
		return nil, invalidPayload(err)
	}
	pr.SetRecordID("")

	if err := s.store.Insert(ctx, pr); err != nil {
		return nil, err
	}
	if err := s.resolveOne(ctx, pr); err != nil {
		return nil, err
	}
	return pr, nil
}

func (s *Service[T, PT]) List(ctx context.Context) ([]PT, error) {
	recs, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range recs {
		if err := s.resolveOne(ctx, rec); err != nil {
			return nil, err
		}
	}
	return recs, nil
}

func (s *Service[T, PT]) GetByID(ctx context.Context, id string) (PT, error) {
	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.resolveOne(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service[T, PT]) Update(ctx context.Context, id string, payload []byte) (PT, error) {
	m, err := decodeObject(payload)
	if err != nil {
		return nil, err
	}
	if blank := s.schema.Blank(m); len(blank) > 0 {
		return nil, &ValidationError{Message: s.schema.MissingMessage(blank)}
	}
	s.schema.Normalize(m, false)
	if verr := s.schema.Check(m); verr != nil {
		return nil, verr
	}
	normalized, err := json.Marshal(m)
	if err != nil {
		return nil, &Fault{Op: "update " + s.schema.Name, Err: err}
	}

	rec, err := s.store.UpdateByID(ctx, id, normalized)
	if err != nil {
		return nil, err
	}
	if err := s.resolveOne(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service[T, PT]) Delete(ctx context.Context, id string) error {
	_, err := s.store.DeleteByID(ctx, id)
	return err
}

func (s *Service[T, PT]) resolveOne(ctx context.Context, rec PT) error {
	if s.Resolve == nil {
		return nil
	}
	return s.Resolve(ctx, rec)
}

func decodeObject(payload []byte) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, &ValidationError{Message: "Invalid request body"}
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

// IsNotFound reports whether err is the absent-record sentinel.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
