package types

import (
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared; a *validator.Validate caches rule parsing and is
// safe for concurrent use.
var validate = validator.New()

// FieldError describes one violated field constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every field that failed validation. It is
// returned as an error by Patient.Validate and PatientUpdate.Validate.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, ", ")
}

// err returns v as an error, or nil when nothing failed. Returning a nil
// ValidationErrors through the error interface would yield a non-nil error.
func (v ValidationErrors) err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// rule is a single field constraint expressed as a validator tag.
type rule struct {
	field   string
	tag     string
	message string
}

var (
	ruleID     = rule{"id", "required", "field id is required"}
	ruleName   = rule{"name", "required", "field name is required"}
	ruleCity   = rule{"city", "required", "field city is required"}
	ruleAge    = rule{"age", "gt=0,lt=120", "field age must be greater than 0 and less than 120"}
	ruleGender = rule{"gender", "oneof=male female", "field gender must be one of: male, female"}
	ruleHeight = rule{"height", "gt=0", "field height must be greater than 0"}
	ruleWeight = rule{"weight", "gt=0", "field weight must be greater than 0"}
)

// check appends a FieldError to errs when value breaks r.
func (r rule) check(errs ValidationErrors, value any) ValidationErrors {
	if err := validate.Var(value, r.tag); err != nil {
		return append(errs, FieldError{Field: r.field, Message: r.message})
	}
	return errs
}

// checkOptional applies r only when the field was provided with a value.
// Absent fields are always valid, and so is an explicit null at this
// stage; a null that ends up in the merged record fails the full check.
func checkOptional[T any](r rule, errs ValidationErrors, o Optional[T]) ValidationErrors {
	if !o.Present() {
		return errs
	}
	return r.check(errs, o.Value)
}

// checkBMI rejects measurements that are each positive but together give
// an infinite BMI, such as a height of 1e-200. Such a record could not be
// stored.
func checkBMI(errs ValidationErrors, p Patient) ValidationErrors {
	if p.Height <= 0 || p.Weight <= 0 {
		return errs
	}
	if bmi := p.BMI(); math.IsInf(bmi, 0) || math.IsNaN(bmi) {
		return append(errs, FieldError{Field: "height", Message: "field height is too small for the given weight"})
	}
	return errs
}

// Validate checks every Patient field and reports all violations at once.
func (p Patient) Validate() error {
	var errs ValidationErrors
	errs = ruleID.check(errs, p.ID)
	errs = ruleName.check(errs, p.Name)
	errs = ruleCity.check(errs, p.City)
	errs = ruleAge.check(errs, p.Age)
	errs = ruleGender.check(errs, string(p.Gender))
	errs = ruleHeight.check(errs, p.Height)
	errs = ruleWeight.check(errs, p.Weight)
	errs = checkBMI(errs, p)
	return errs.err()
}
