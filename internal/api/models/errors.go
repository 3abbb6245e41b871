package models

// InvalidFilterFormatError reports a filter the engine cannot evaluate.
// Reason is user facing and returned verbatim in the error response body.
type InvalidFilterFormatError struct {
	Reason string
}

func (e *InvalidFilterFormatError) Error() string {
	return e.Reason
}

// NewInvalidFilterFormat builds an InvalidFilterFormatError with the given reason
func NewInvalidFilterFormat(reason string) *InvalidFilterFormatError {
	return &InvalidFilterFormatError{Reason: reason}
}
