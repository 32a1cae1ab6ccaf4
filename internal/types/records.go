package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Records is the complete id→Record mapping. It keeps keys in the order
// they were loaded or inserted, and that order is what /view returns and
// the order equal keys keep when sorting.
//
// Records is not safe for concurrent use; storage.Guard owns access.
type Records struct {
	ids  []string
	byID map[string]Record
}

// NewRecords returns an empty mapping.
func NewRecords() *Records {
	return &Records{byID: make(map[string]Record)}
}

// Len returns the number of records.
func (rs *Records) Len() int { return len(rs.ids) }

// Has reports whether id is present.
func (rs *Records) Has(id string) bool {
	_, ok := rs.byID[id]
	return ok
}

// Get returns the record stored under id.
func (rs *Records) Get(id string) (Record, bool) {
	r, ok := rs.byID[id]
	return r, ok
}

// Set stores r under id. A new id is appended at the end; an existing id
// keeps its position.
func (rs *Records) Set(id string, r Record) {
	if rs.byID == nil {
		rs.byID = make(map[string]Record)
	}
	if _, ok := rs.byID[id]; !ok {
		rs.ids = append(rs.ids, id)
	}
	rs.byID[id] = r
}

// Delete removes id and reports whether it was present.
func (rs *Records) Delete(id string) bool {
	if _, ok := rs.byID[id]; !ok {
		return false
	}
	delete(rs.byID, id)
	for i, k := range rs.ids {
		if k == id {
			rs.ids = append(rs.ids[:i], rs.ids[i+1:]...)
			break
		}
	}
	return true
}

// IDs returns the keys in order.
func (rs *Records) IDs() []string {
	out := make([]string, len(rs.ids))
	copy(out, rs.ids)
	return out
}

// Values returns the records in key order. The result is never nil.
func (rs *Records) Values() []Record {
	out := make([]Record, 0, len(rs.ids))
	for _, id := range rs.ids {
		out = append(out, rs.byID[id])
	}
	return out
}

// MarshalJSON encodes the mapping as a JSON object with keys in order.
func (rs *Records) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range rs.ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(rs.byID[id])
		if err != nil {
			return nil, fmt.Errorf("records: encode %q: %w", id, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping its key order.
func (rs *Records) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("records: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("records: expected a JSON object")
	}

	fresh := NewRecords()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("records: %w", err)
		}
		id, ok := tok.(string)
		if !ok {
			return fmt.Errorf("records: unexpected key %v", tok)
		}
		var r Record
		if err := dec.Decode(&r); err != nil {
			return fmt.Errorf("records: decode %q: %w", id, err)
		}
		fresh.Set(id, r)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("records: %w", err)
	}

	*rs = *fresh
	return nil
}
