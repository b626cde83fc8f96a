package report

import "errors"

var ErrUnauthenticated = errors.New("user not authenticated")

// ValidationError rejects a submission before any row is written.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
