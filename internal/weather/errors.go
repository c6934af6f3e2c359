package weather

import "errors"

// Kind classifies why producing a summary failed
type Kind string

const (
	KindValidation Kind = "validation"
	KindUpstream   Kind = "upstream"
	KindParse      Kind = "parse"
)

// Error is the error type returned by Service and ParseSummary
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// IsValidation reports whether err is a coordinate validation failure
func IsValidation(err error) bool {
	var werr *Error
	return errors.As(err, &werr) && werr.Kind == KindValidation
}

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}
