package article

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no entry matches the slug.
	ErrNotFound = errors.New("article: not found")

	// ErrEmptySlug is returned when Resolve is called without a slug.
	ErrEmptySlug = errors.New("article: empty slug")

	// ErrTransport matches every *TransportError.
	ErrTransport = errors.New("article: content source unavailable")

	// ErrMalformedEntry matches every *MalformedEntryError.
	ErrMalformedEntry = errors.New("article: malformed entry")

	// ErrViewClosed is returned by View.Wait after Close.
	ErrViewClosed = errors.New("article: view closed")
)

// TransportError wraps a failure of the content source itself.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("article: query content source: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// MalformedEntryError reports an entry whose fields are absent or ill-shaped.
type MalformedEntryError struct {
	EntryID string
	Field   string
	Err     error
}

func (e *MalformedEntryError) Error() string {
	msg := fmt.Sprintf("article: entry %q: invalid field %q", e.EntryID, e.Field)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedEntryError) Unwrap() error { return e.Err }

func (e *MalformedEntryError) Is(target error) bool { return target == ErrMalformedEntry }
