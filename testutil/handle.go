package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/hupe1980/prealloc"
)

// Tracker counts the Handles it created, their clones and their releases.
type Tracker struct {
	created        atomic.Int64
	cloned         atomic.Int64
	released       atomic.Int64
	doubleReleases atomic.Int64
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker { return &Tracker{} }

// New returns a fresh Handle with the given id.
func (t *Tracker) New(id int) Handle {
	t.created.Add(1)
	return Handle{ID: id, state: &handleState{tracker: t}}
}

// Live returns the number of Handles created or cloned and not yet released.
func (t *Tracker) Live() int64 {
	return t.created.Load() + t.cloned.Load() - t.released.Load()
}

// Cloned returns the number of Clone calls.
func (t *Tracker) Cloned() int64 { return t.cloned.Load() }

// Released returns the number of first-time releases.
func (t *Tracker) Released() int64 { return t.released.Load() }

// DoubleReleases returns how often an already released Handle was released
// again.
func (t *Tracker) DoubleReleases() int64 { return t.doubleReleases.Load() }

type handleState struct {
	tracker  *Tracker
	released atomic.Bool
}

// Handle is an element owning a tracked resource. It satisfies
// prealloc.Resource, so it can be stored under prealloc.Owned.
//
// The zero Handle owns nothing; releasing it is a no-op.
type Handle struct {
	ID    int
	state *handleState
}

var _ prealloc.Resource[Handle] = Handle{}

// Clone returns an independent Handle with the same ID.
func (h Handle) Clone() Handle {
	if h.state == nil {
		return Handle{ID: h.ID}
	}
	h.state.tracker.cloned.Add(1)
	return Handle{ID: h.ID, state: &handleState{tracker: h.state.tracker}}
}

// Release gives the resource back.
func (h Handle) Release() {
	if h.state == nil {
		return
	}
	if h.state.released.Swap(true) {
		h.state.tracker.doubleReleases.Add(1)
		return
	}
	h.state.tracker.released.Add(1)
}

// Released reports whether h has been released.
func (h Handle) Released() bool {
	return h.state != nil && h.state.released.Load()
}

func (h Handle) String() string {
	return fmt.Sprintf("h%d", h.ID)
}
