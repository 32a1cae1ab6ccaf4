package types

import "errors"

// Sentinel errors returned by patient operations. Handlers match them with
// errors.Is and choose the status code.
var (
	// ErrPatientNotFound means no record exists under the requested id.
	ErrPatientNotFound = errors.New("patient not found")

	// ErrPatientExists means create was called with an id already in use.
	ErrPatientExists = errors.New("This paitient already exists")
)
