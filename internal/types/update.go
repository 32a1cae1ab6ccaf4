package types

import (
	"bytes"
	"encoding/json"
)

// Optional is a tri-state JSON field: absent, null, or a value.
//
// encoding/json only calls UnmarshalJSON for keys present in the
// document, so a zero Optional means "not provided".
type Optional[T any] struct {
	Set   bool // key was present in the payload
	Null  bool // key was present with a JSON null
	Value T
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Present reports whether the field was provided with a non-null value.
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Null, o.Value = true, zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// PatientUpdate is the payload of an in-place edit. Every field is
// optional; the id comes from the URL and cannot be changed.
type PatientUpdate struct {
	Name   Optional[string]  `json:"name"`
	City   Optional[string]  `json:"city"`
	Age    Optional[Age]     `json:"age"`
	Gender Optional[Gender]  `json:"gender"`
	Height Optional[float64] `json:"height"`
	Weight Optional[float64] `json:"weight"`
}

// Validate checks the provided fields against the same per-field rules
// as Patient. Absent fields are always valid.
func (u PatientUpdate) Validate() error {
	var errs ValidationErrors
	errs = checkOptional(ruleName, errs, u.Name)
	errs = checkOptional(ruleCity, errs, u.City)
	errs = checkOptional(ruleAge, errs, u.Age)
	errs = checkOptional(ruleGender, errs, u.Gender)
	errs = checkOptional(ruleHeight, errs, u.Height)
	errs = checkOptional(ruleWeight, errs, u.Weight)
	return errs.err()
}

// Fields returns the names of the provided fields, in declaration order.
func (u PatientUpdate) Fields() []string {
	fields := make([]string, 0, 6)
	add := func(set bool, name string) {
		if set {
			fields = append(fields, name)
		}
	}
	add(u.Name.Set, "name")
	add(u.City.Set, "city")
	add(u.Age.Set, "age")
	add(u.Gender.Set, "gender")
	add(u.Height.Set, "height")
	add(u.Weight.Set, "weight")
	return fields
}

// Apply overlays the provided fields onto p and returns the result.
// A provided null resets the field to its zero value.
func (u PatientUpdate) Apply(p Patient) Patient {
	if u.Name.Set {
		p.Name = u.Name.Value
	}
	if u.City.Set {
		p.City = u.City.Value
	}
	if u.Age.Set {
		p.Age = u.Age.Value
	}
	if u.Gender.Set {
		p.Gender = u.Gender.Value
	}
	if u.Height.Set {
		p.Height = u.Height.Value
	}
	if u.Weight.Set {
		p.Weight = u.Weight.Value
	}
	return p
}
