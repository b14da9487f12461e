package resource

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
)

// Record is the constraint every stored entity satisfies through models.Base.
type Record[T any] interface {
	*T
	RecordID() string
	SetRecordID(string)
}

// Store persists one entity type in its gorm-backed collection. It owns the
// translation of storage errors into the resource taxonomy: missing ids are
// the ErrNotFound sentinel, duplicate unique fields are validation errors and
// everything else is a fault.
type Store[T any, PT Record[T]] struct {
	db     *gorm.DB
	schema Schema
}

func NewStore[T any, PT Record[T]](db *gorm.DB, schema Schema) *Store[T, PT] {
	return &Store[T, PT]{db: db, schema: schema}
}

func (s *Store[T, PT]) Insert(ctx context.Context, rec PT) error {
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return s.translate("create "+s.schema.Name, err)
	}
	return nil
}

func (s *Store[T, PT]) FindAll(ctx context.Context) ([]PT, error) {
	recs := []PT{}
	q := s.db.WithContext(ctx)
	if s.schema.ListOrder != "" {
		q = q.Order(s.schema.ListOrder)
	}
	if err := q.Find(&recs).Error; err != nil {
		return nil, s.translate("retrieve "+s.schema.Name+" list", err)
	}
	return recs, nil
}

func (s *Store[T, PT]) FindByID(ctx context.Context, id string) (PT, error) {
	var rec T
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, s.translate("retrieve "+s.schema.Name, err)
	}
	return PT(&rec), nil
}

// UpdateByID loads the record, merges the partial JSON payload onto it and
// saves it back, so schema validators and gorm hooks run the same way they do
// on create. Identity is restored after the merge; a payload cannot move a
// record to a new id.
func (s *Store[T, PT]) UpdateByID(ctx context.Context, id string, partial []byte) (PT, error) {
	rec, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	keep := rec.RecordID()
	if err := json.Unmarshal(partial, rec); err != nil {
		return nil, invalidPayload(err)
	}
	rec.SetRecordID(keep)
	if err := s.db.WithContext(ctx).Save(rec).Error; err != nil {
		return nil, s.translate("update "+s.schema.Name, err)
	}
	return rec, nil
}

func (s *Store[T, PT]) DeleteByID(ctx context.Context, id string) (PT, error) {
	rec, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(rec).Error; err != nil {
		return nil, s.translate("delete "+s.schema.Name, err)
	}
	return rec, nil
}

func (s *Store[T, PT]) translate(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &ValidationError{Message: s.schema.UniqueMessage()}
	}
	return &Fault{Op: op, Err: err}
}

// invalidPayload turns a JSON decode failure into a validation error naming
// the field when the decoder knows it.
func invalidPayload(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &ValidationError{Message: "Invalid value for field: " + typeErr.Field}
	}
	return &ValidationError{Message: "Invalid request body"}
}
