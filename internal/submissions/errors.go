package submissions

import "errors"

var (
	// ErrMissingFields means a required submission field was empty.
	ErrMissingFields = errors.New("company name, HR/company email, position applied for, and resume type are required fields")
	// ErrInvalidEmail means the HR email did not look like an address.
	ErrInvalidEmail = errors.New("Please provide a valid HR or company email address")
	// ErrPersistenceFailed means the record could not be saved; email is
	// never attempted after it.
	ErrPersistenceFailed = errors.New("failed to save submission")
)
