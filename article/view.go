package article

import (
	"context"
	"sync"
)

// View holds the state of one mounted article page. Each Navigate starts a new
// generation; results from older generations are discarded, so the state
// always reflects the most recent slug.
type View struct {
	src      Source
	onChange func(State)

	// notifyMu orders onChange calls; it is taken before mu.
	notifyMu sync.Mutex

	mu     sync.Mutex
	gen    uint64
	state  State
	cancel context.CancelFunc
	done   chan struct{}
	closed bool
}

// ViewOption configures a View.
type ViewOption func(*View)

// WithOnChange registers fn to be called after every state transition.
// Calls are serialized and a transition superseded by a newer Navigate is not
// reported, so the last call always carries the current state. fn may call
// State but must not call Navigate or Close.
func WithOnChange(fn func(State)) ViewOption {
	return func(v *View) {
		v.onChange = fn
	}
}

// NewView returns a view in the Loading state with no navigation yet.
func NewView(src Source, opts ...ViewOption) *View {
	v := &View{src: src}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Navigate points the view at slug. The state resets to Loading, any in-flight
// fetch for a previous slug is canceled, and a new fetch starts in the background.
func (v *View) Navigate(ctx context.Context, slug string) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	if v.cancel != nil {
		v.cancel()
	}
	v.gen++
	gen := v.gen
	fetchCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	v.cancel = cancel
	v.done = done
	v.state = Loading(slug)
	st := v.state
	v.mu.Unlock()

	v.notify(gen, st)

	go func() {
		defer close(done)
		defer cancel()
		entry, err := Resolve(fetchCtx, v.src, slug)
		v.complete(gen, StateFor(slug, entry, err))
	}()
}

func (v *View) complete(gen uint64, st State) {
	v.mu.Lock()
	if v.closed || gen != v.gen {
		v.mu.Unlock()
		return
	}
	v.state = st
	v.mu.Unlock()
	v.notify(gen, st)
}

// notify reports st unless a later navigation or Close has happened since.
func (v *View) notify(gen uint64, st State) {
	if v.onChange == nil {
		return
	}
	v.notifyMu.Lock()
	defer v.notifyMu.Unlock()

	v.mu.Lock()
	current := !v.closed && gen == v.gen
	v.mu.Unlock()
	if current {
		v.onChange(st)
	}
}

// State returns a snapshot of the current state.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Wait blocks until the latest navigation reaches a terminal state, ctx is
// done, or the view is closed. A view that was never navigated returns its
// Loading state immediately.
func (v *View) Wait(ctx context.Context) (State, error) {
	for {
		v.mu.Lock()
		st, done, closed := v.state, v.done, v.closed
		v.mu.Unlock()

		if closed {
			return st, ErrViewClosed
		}
		if st.Status.Terminal() || done == nil {
			return st, nil
		}
		select {
		case <-done:
		case <-ctx.Done():
			return st, ctx.Err()
		}
	}
}

// Close unmounts the view: the in-flight fetch is canceled and the state dropped.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.closed = true
	if v.cancel != nil {
		v.cancel()
	}
	v.state = State{}
}
