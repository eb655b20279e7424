package testutil

import (
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/hupe1980/prealloc"
)

// ErrInjected is returned by FailingAllocator once its grants run out.
var ErrInjected = errors.New("testutil: injected allocation failure")

// FailingAllocator grants a fixed number of requests and refuses every
// request after that. It is safe for concurrent use.
type FailingAllocator struct {
	mu        sync.Mutex
	remaining int // negative: unlimited
}

var _ prealloc.Allocator = (*FailingAllocator)(nil)

// NewFailingAllocator returns an allocator granting the next grants
// requests. A negative count never fails until Exhaust is called.
func NewFailingAllocator(grants int) *FailingAllocator {
	return &FailingAllocator{remaining: grants}
}

// SetGrants replaces the number of requests still granted.
func (f *FailingAllocator) SetGrants(grants int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remaining = grants
}

// Exhaust makes every following request fail.
func (f *FailingAllocator) Exhaust() { f.SetGrants(0) }

// Allocate implements prealloc.Allocator.
func (f *FailingAllocator) Allocate(prealloc.Tag, int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch {
	case f.remaining == 0:
		return ErrInjected
	case f.remaining > 0:
		f.remaining--
	}
	return nil
}

// Release implements prealloc.Allocator.
func (f *FailingAllocator) Release(prealloc.Tag, int64) {}

// RecordingAllocator accounts every grant and release per tag, optionally
// delegating the decision to another allocator. It is safe for concurrent
// use.
type RecordingAllocator struct {
	next prealloc.Allocator

	mu        sync.Mutex
	live      map[prealloc.Tag]int64
	grants    int
	releases  int
	refusals  int
	underflow bool
}

var _ prealloc.Allocator = (*RecordingAllocator)(nil)

// NewRecordingAllocator wraps next. If next is nil every request is granted.
func NewRecordingAllocator(next prealloc.Allocator) *RecordingAllocator {
	if next == nil {
		next = prealloc.HeapAllocator{}
	}
	return &RecordingAllocator{
		next: next,
		live: make(map[prealloc.Tag]int64),
	}
}

// Allocate implements prealloc.Allocator.
func (r *RecordingAllocator) Allocate(tag prealloc.Tag, bytes int64) error {
	if err := r.next.Allocate(tag, bytes); err != nil {
		r.mu.Lock()
		r.refusals++
		r.mu.Unlock()
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.grants++
	r.live[tag] += bytes
	return nil
}

// Release implements prealloc.Allocator.
func (r *RecordingAllocator) Release(tag prealloc.Tag, bytes int64) {
	r.mu.Lock()
	r.releases++
	r.live[tag] -= bytes
	if r.live[tag] < 0 {
		r.underflow = true
	}
	if r.live[tag] == 0 {
		delete(r.live, tag)
	}
	r.mu.Unlock()

	r.next.Release(tag, bytes)
}

// Live returns the bytes currently granted under tag.
func (r *RecordingAllocator) Live(tag prealloc.Tag) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live[tag]
}

// TotalLive returns the bytes currently granted under all tags.
func (r *RecordingAllocator) TotalLive() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, b := range r.live {
		total += b
	}
	return total
}

// Tags returns the tags with live grants, sorted.
func (r *RecordingAllocator) Tags() []prealloc.Tag {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Sorted(maps.Keys(r.live))
}

// Grants returns the number of granted requests.
func (r *RecordingAllocator) Grants() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.grants
}

// Releases returns the number of releases.
func (r *RecordingAllocator) Releases() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.releases
}

// Refusals returns the number of requests refused by the wrapped allocator.
func (r *RecordingAllocator) Refusals() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refusals
}

// Balanced reports whether every grant was released exactly once and no
// tag was ever released more than it was granted.
func (r *RecordingAllocator) Balanced() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.underflow && len(r.live) == 0 && r.grants == r.releases
}
