// Package types holds all shared data structures (models) used across
// the application: the patient model, its partial-update variant, the
// ordered id→record mapping, and the error values handlers translate
// into HTTP status codes.
package types

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
)

// Gender is the closed set of accepted gender values.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Verdict is the weight classification derived from BMI.
type Verdict string

const (
	VerdictUnderweight Verdict = "underweight"
	VerdictNormal      Verdict = "Normal"
	VerdictObese       Verdict = "obese"
)

// Age is a patient's age in whole years. It decodes from any JSON number
// with no fractional part, so 30 and 30.0 are the same age.
type Age int

func (a *Age) UnmarshalJSON(data []byte) error {
	var f float64
	err := json.Unmarshal(data, &f)
	if err == nil && f == math.Trunc(f) && math.Abs(f) <= 1<<53 {
		*a = Age(f)
		return nil
	}
	value := "number " + string(data)
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		value = typeErr.Value
	} else if err != nil {
		return err
	}
	return &json.UnmarshalTypeError{Value: value, Type: reflect.TypeOf(0)}
}

// BMI thresholds. Lower bounds are inclusive.
const (
	NormalBMIFrom = 18.5
	ObeseBMIFrom  = 30.0
)

// Patient is the full patient model as received on create and as
// reconstructed for revalidation on update.
//
// BMI and the verdict are not fields: they are computed from Height and
// Weight every time they are asked for.
type Patient struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	City   string  `json:"city"`
	Age    Age     `json:"age"`
	Gender Gender  `json:"gender"`
	Height float64 `json:"height"` // meters
	Weight float64 `json:"weight"` // kilograms
}

// Record is the storage form of a patient. The id is the mapping key and
// is never part of the value; BMI and FinalVerdict are materialised from
// Height/Weight at the moment the record is written.
type Record struct {
	Name         string  `json:"name"`
	City         string  `json:"city"`
	Age          Age     `json:"age"`
	Gender       Gender  `json:"gender"`
	Height       float64 `json:"height"`
	Weight       float64 `json:"weight"`
	BMI          float64 `json:"bmi"`
	FinalVerdict Verdict `json:"final_verdict"`
}

// BMI returns weight / height², rounded to two decimals.
func (p Patient) BMI() float64 {
	return ComputeBMI(p.Height, p.Weight)
}

// Verdict classifies the patient's BMI.
func (p Patient) Verdict() Verdict {
	return Classify(p.BMI())
}

// Record returns the storage form of p with freshly computed derived fields.
func (p Patient) Record() Record {
	return Record{
		Name:         p.Name,
		City:         p.City,
		Age:          p.Age,
		Gender:       p.Gender,
		Height:       p.Height,
		Weight:       p.Weight,
		BMI:          p.BMI(),
		FinalVerdict: p.Verdict(),
	}
}

// Patient re-attaches id to the stored attributes. The stored BMI and
// verdict are dropped; they are recomputed from the measurements.
func (r Record) Patient(id string) Patient {
	return Patient{
		ID:     id,
		Name:   r.Name,
		City:   r.City,
		Age:    r.Age,
		Gender: r.Gender,
		Height: r.Height,
		Weight: r.Weight,
	}
}

// ComputeBMI returns round(weight / height², 2). The result is infinite
// when height is too small for weight; Patient.Validate rejects that.
func ComputeBMI(height, weight float64) float64 {
	return math.Round(weight/(height*height)*100) / 100
}

// Classify maps a BMI value onto its verdict.
func Classify(bmi float64) Verdict {
	switch {
	case bmi < NormalBMIFrom:
		return VerdictUnderweight
	case bmi < ObeseBMIFrom:
		return VerdictNormal
	default:
		return VerdictObese
	}
}
