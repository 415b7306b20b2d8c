package catalogview

import (
	"context"
	"errors"
	"fmt"

	"vitrina/repository"
)

// NotFoundMessage is the user-facing message for a missing catalog
const NotFoundMessage = "No se encontró el catálogo solicitado."

// ErrorKind classifies a failed catalog fetch
type ErrorKind int

const (
	// KindNotFound means the store returned no row for the slug
	KindNotFound ErrorKind = iota + 1
	// KindRemote means the store reported a failure
	KindRemote
	// KindUnexpected covers every other fault, including recovered panics
	KindUnexpected
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindRemote:
		return "remote_error"
	case KindUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// FetchError is the error value stored by the view model after a failed fetch
type FetchError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *FetchError) Error() string { return e.Message }

func (e *FetchError) Unwrap() error { return e.Err }

// classify converts a fetcher error into a FetchError
func classify(err error) *FetchError {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return &FetchError{Kind: KindNotFound, Message: NotFoundMessage, Err: err}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &FetchError{Kind: KindUnexpected, Message: err.Error(), Err: err}
	default:
		return &FetchError{Kind: KindRemote, Message: err.Error(), Err: err}
	}
}

func recovered(v any) *FetchError {
	err, ok := v.(error)
	if !ok {
		err = fmt.Errorf("%v", v)
	}
	return &FetchError{Kind: KindUnexpected, Message: err.Error(), Err: err}
}
