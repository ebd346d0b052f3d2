package storefront

import (
	"context"
	"sync"

	"github.com/example/fatales/internal/locale"
)

// State is the lifecycle of a page load.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// FetchFunc loads one page for a locale.
type FetchFunc[T any] func(ctx context.Context, loc locale.Locale) (T, error)

// Snapshot is the observable state of a Loader.
type Snapshot[T any] struct {
	State      State
	Locale     locale.Locale
	Data       T
	Err        error
	Generation uint64
}

// Loader runs idle → loading → success|error for a page and re-enters
// loading on every Load. Each Load cancels the one in flight; results of a
// superseded generation are dropped, so a slow response for an old locale
// can never overwrite a newer one. Notifications are delivered one at a time
// and only while they still describe the current state.
type Loader[T any] struct {
	fetch    FetchFunc[T]
	onChange func(Snapshot[T])

	// notifyMu serializes onChange calls. It is taken before mu, never after.
	notifyMu sync.Mutex

	mu     sync.Mutex
	snap   Snapshot[T]
	cancel context.CancelFunc
}

// NewLoader constructs a Loader. onChange, if set, is called after state
// transitions with the new snapshot. A transition already replaced by a newer
// one is not reported. onChange must not call Load.
func NewLoader[T any](fetch FetchFunc[T], onChange func(Snapshot[T])) *Loader[T] {
	return &Loader[T]{fetch: fetch, onChange: onChange}
}

// Load starts a fetch for loc and blocks until it settles. It reports
// whether the result was committed.
func (l *Loader[T]) Load(ctx context.Context, loc locale.Locale) bool {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.cancel = cancel
	l.snap.Generation++
	gen := l.snap.Generation
	l.snap.State = StateLoading
	l.snap.Locale = loc
	loading := l.snap
	l.mu.Unlock()
	l.publish(loading)

	data, err := l.fetch(ctx, loc)

	l.mu.Lock()
	if gen != l.snap.Generation {
		l.mu.Unlock()
		return false
	}
	l.cancel = nil
	if err != nil {
		l.snap.State = StateError
		l.snap.Err = err
	} else {
		l.snap.State = StateSuccess
		l.snap.Err = nil
		l.snap.Data = data
	}
	done := l.snap
	l.mu.Unlock()
	l.publish(done)
	return true
}

// Snapshot returns the current state.
func (l *Loader[T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap
}

// Stop cancels any fetch in flight and discards its result. A loader
// stopped while loading falls back to idle.
func (l *Loader[T]) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.snap.Generation++
	if l.snap.State == StateLoading {
		l.snap.State = StateIdle
	}
}

// publish reports s unless a later Load or Stop has moved the loader on.
func (l *Loader[T]) publish(s Snapshot[T]) {
	if l.onChange == nil {
		return
	}
	l.notifyMu.Lock()
	defer l.notifyMu.Unlock()

	l.mu.Lock()
	current := l.snap.Generation == s.Generation && l.snap.State == s.State
	l.mu.Unlock()
	if !current {
		return
	}
	l.onChange(s)
}
