package common

// DetailedError carries a message meant for API clients while still matching
// its sentinel through errors.Is.
type DetailedError struct {
	Err    error
	Detail string
}

func (e *DetailedError) Error() string { return e.Detail }

func (e *DetailedError) Unwrap() error { return e.Err }

// WithDetail wraps err with a client-facing message.
func WithDetail(err error, detail string) error {
	return &DetailedError{Err: err, Detail: detail}
}
