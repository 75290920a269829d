package service

// ValidationError carries a client-facing message for a rejected input. The
// HTTP layer maps it to a 400 with the message in the detail body.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string { return e.Detail }

func invalid(detail string) error {
	return &ValidationError{Detail: detail}
}
