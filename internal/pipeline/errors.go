package pipeline

import (
	"errors"
	"fmt"

	"github.com/vodworks/audio-service/internal/media"
)

// ErrorKind classifies a pipeline failure. The kind decides the message
// prefix surfaced to callers, so each category stays assertable from the
// response body alone.
type ErrorKind int

const (
	KindUnclassified ErrorKind = iota
	KindValidation
	KindToolExecution
	KindExternalService
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindToolExecution:
		return "tool_execution"
	case KindExternalService:
		return "external_service"
	default:
		return "unclassified"
	}
}

// Error is a fault tagged with its kind. Pipelines short-circuit on the
// first Error and map it to a success:false response; nothing escapes to
// the transport layer.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindValidation:
		return fmt.Sprintf("validation failed: %v", e.Err)
	case KindToolExecution:
		// Tool errors already read "<tool> failed: ..." with captured
		// stderr.
		return e.Err.Error()
	case KindExternalService:
		return fmt.Sprintf("external service error: %v", e.Err)
	default:
		return fmt.Sprintf("internal error: %v", e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func errValidation(err error) *Error {
	return &Error{Kind: KindValidation, Err: err}
}

func errService(err error) *Error {
	return &Error{Kind: KindExternalService, Err: err}
}

// classify tags an untyped fault: tool process failures keep their own
// category, everything else is unclassified. Already-tagged errors pass
// through.
func classify(err error) *Error {
	var perr *Error
	if errors.As(err, &perr) {
		return perr
	}

	var execErr *media.ExecError
	if errors.As(err, &execErr) {
		return &Error{Kind: KindToolExecution, Err: err}
	}

	return &Error{Kind: KindUnclassified, Err: err}
}

// KindOf returns the kind of a pipeline error, or KindUnclassified for any
// other error.
func KindOf(err error) ErrorKind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return KindUnclassified
}
