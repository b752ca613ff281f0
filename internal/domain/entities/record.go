package entities

import (
	"encoding/json"
	"fmt"
)

// Record is one loosely-typed entity inside a collection. The store never
// validates its shape; only the "id" field is significant to it.
type Record map[string]any

// ID returns the record's primary key when it is a non-empty string.
func (r Record) ID() (string, bool) {
	id, ok := r["id"].(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return cloneValue(map[string]any(r)).(map[string]any)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case Record:
		return Record(cloneValue(map[string]any(t)).(map[string]any))
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}

// DecodeRecord parses a JSON object into a Record.
func DecodeRecord(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("record is not a JSON object")
	}
	return r, nil
}

// ToRecord converts a typed entity into its stored form.
func ToRecord(v any) (Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	r, err := DecodeRecord(data)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return r, nil
}

// FromRecord decodes a stored record into a typed entity.
func FromRecord(r Record, v any) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

// Merge builds a full replacement record: every field of v overrides base,
// fields only present in base are carried over untouched.
func Merge(base Record, v any) (Record, error) {
	next, err := ToRecord(v)
	if err != nil {
		return nil, err
	}
	out := base.Clone()
	if out == nil {
		out = Record{}
	}
	for k, val := range next {
		out[k] = val
	}
	return out, nil
}
