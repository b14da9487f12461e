package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// GroupFunctionRef is the two-state shape of a group-function reference: a
// bare id as written by clients, or the embedded record once the service has
// resolved it at read time. Only the id is persisted.
type GroupFunctionRef struct {
	ID       string
	Resolved *GroupFunction
}

func (r GroupFunctionRef) IsZero() bool { return r.ID == "" && r.Resolved == nil }

func (r *GroupFunctionRef) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err == nil {
		r.ID = id
		r.Resolved = nil
		return nil
	}
	var gf GroupFunction
	if err := json.Unmarshal(b, &gf); err != nil {
		return fmt.Errorf("groupFunction must be an id or an object: %w", err)
	}
	r.ID = gf.ID
	r.Resolved = &gf
	return nil
}

func (r GroupFunctionRef) MarshalJSON() ([]byte, error) {
	if r.Resolved != nil {
		return json.Marshal(r.Resolved)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// GormDataType keeps the reference as a plain id column.
func (GroupFunctionRef) GormDataType() string { return "string" }

func (r GroupFunctionRef) Value() (driver.Value, error) {
	if r.ID == "" {
		return nil, nil
	}
	return r.ID, nil
}

func (r *GroupFunctionRef) Scan(src any) error {
	r.Resolved = nil
	switch v := src.(type) {
	case nil:
		r.ID = ""
	case string:
		r.ID = v
	case []byte:
		r.ID = string(v)
	default:
		return fmt.Errorf("scan group function ref: unsupported type %T", src)
	}
	return nil
}
