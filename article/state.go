package article

import "errors"

// Status is the phase of an article view.
type Status int

const (
	StatusLoading Status = iota
	StatusLoaded
	StatusNotFound
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusNotFound:
		return "not_found"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition happens without a new navigation.
func (s Status) Terminal() bool {
	return s != StatusLoading
}

// State is what a view currently shows. Entry is set only when Loaded and Err
// only when Failed.
type State struct {
	Status Status
	Slug   string
	Entry  Entry
	Err    error
}

// Loading is the state while the article for slug is being fetched.
func Loading(slug string) State {
	return State{Status: StatusLoading, Slug: slug}
}

// Loaded is the state after e was resolved.
func Loaded(slug string, e Entry) State {
	return State{Status: StatusLoaded, Slug: slug, Entry: e}
}

// NotFound is the state when no article matched slug.
func NotFound(slug string) State {
	return State{Status: StatusNotFound, Slug: slug}
}

// Failed is the state when resolution failed with err.
func Failed(slug string, err error) State {
	return State{Status: StatusFailed, Slug: slug, Err: err}
}

// StateFor maps the result of Resolve onto a terminal state.
func StateFor(slug string, e Entry, err error) State {
	switch {
	case err == nil:
		return Loaded(slug, e)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrEmptySlug):
		return NotFound(slug)
	default:
		return Failed(slug, err)
	}
}
