package prealloc

import (
	"fmt"
	"iter"
	"unsafe"

	"github.com/hupe1980/prealloc/internal/conv"
)

// growthFactor is applied to the capacity whenever an append finds the
// Array full.
const growthFactor = 2

// Array is a growable sequence that keeps up to len(B) elements in a buffer
// embedded in the Array itself and moves them to a separately allocated
// overflow region once that bound is exceeded.
//
// The capacity never drops below len(B). It only shrinks back to the inline
// buffer through ShrinkToFit, Swap or Free. Overflow regions are granted by
// the configured Allocator and released to it exactly once.
//
// The zero value is an empty Array backed by HeapAllocator, ready to use.
// An Array owns its elements and must not be copied by value after first
// use; use Clone or Assign to duplicate one.
//
// Array does no locking. A single goroutine may mutate an Array at a time
// and readers must not overlap with a writer.
type Array[T any, B Inline[T], P Policy[T]] struct {
	inline   B
	overflow []T // nil while the inline buffer is in use; len(overflow) is the capacity
	size     int
	cfg      *options
}

// New creates an empty Array using its inline buffer.
func New[T any, B Inline[T], P Policy[T]](optFns ...Option) *Array[T, B, P] {
	return &Array[T, B, P]{cfg: resolveOptions(optFns)}
}

// NewFrom creates an Array holding copies of src, in order.
//
// If the allocator refuses the region, the returned Array is valid but
// empty and the error wraps ErrOutOfMemory.
func NewFrom[T any, B Inline[T], P Policy[T]](src []T, optFns ...Option) (*Array[T, B, P], error) {
	a := New[T, B, P](optFns...)
	if err := a.Reserve(len(src)); err != nil {
		return a, err
	}
	a.appendCopies(src)
	return a, nil
}

func (a *Array[T, B, P]) config() *options {
	if a.cfg == nil {
		return defaultOptions
	}
	return a.cfg
}

func (a *Array[T, B, P]) inlineRegion() []T {
	return unsafe.Slice(&a.inline[0], len(a.inline))
}

func (a *Array[T, B, P]) region() []T {
	if a.overflow != nil {
		return a.overflow
	}
	return a.inlineRegion()
}

// Len returns the number of live elements.
func (a *Array[T, B, P]) Len() int { return a.size }

// Cap returns the number of elements the Array can hold without allocating.
func (a *Array[T, B, P]) Cap() int {
	if a.overflow != nil {
		return len(a.overflow)
	}
	return len(a.inline)
}

// InlineCap returns the size of the embedded buffer.
func (a *Array[T, B, P]) InlineCap() int { return len(a.inline) }

// Empty reports whether the Array has no elements.
func (a *Array[T, B, P]) Empty() bool { return a.size == 0 }

// Mode reports where the elements are currently stored.
func (a *Array[T, B, P]) Mode() StorageMode {
	if a.overflow != nil {
		return OverflowMode
	}
	return InlineMode
}

// IsInline reports whether the elements live in the embedded buffer.
func (a *Array[T, B, P]) IsInline() bool { return a.overflow == nil }

// ElementSize returns the size in bytes of one slot.
func (a *Array[T, B, P]) ElementSize() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// Tag returns the accounting tag passed to the allocator.
func (a *Array[T, B, P]) Tag() Tag { return a.config().tag }

func (a *Array[T, B, P]) check(op string, i int) {
	if i < 0 || i >= a.size {
		panic(outOfRange(op, i, a.size))
	}
}

// At returns the element at index i. It panics if i is out of range.
func (a *Array[T, B, P]) At(i int) T {
	a.check("At", i)
	return a.region()[i]
}

// Ref returns a pointer to the element at index i.
// The pointer is invalidated by any operation that may relocate storage.
func (a *Array[T, B, P]) Ref(i int) *T {
	a.check("Ref", i)
	return &a.region()[i]
}

// Set replaces the element at index i with a policy copy of v, destroying
// the previous one according to the policy. The caller keeps ownership of v.
func (a *Array[T, B, P]) Set(i int, v T) {
	a.check("Set", i)
	r := a.region()
	var p P
	// Copy first: v may be the element being replaced.
	c := p.Copy(v)
	if !p.Trivial() {
		p.Destroy(&r[i])
	}
	r[i] = c
}

// Front returns the first element. It panics if the Array is empty.
func (a *Array[T, B, P]) Front() T {
	if a.size == 0 {
		panic("prealloc: Front on empty Array")
	}
	return a.region()[0]
}

// Back returns the last element. It panics if the Array is empty.
func (a *Array[T, B, P]) Back() T {
	if a.size == 0 {
		panic("prealloc: Back on empty Array")
	}
	return a.region()[a.size-1]
}

// Slice returns the live elements as a slice sharing the Array's storage.
// Its capacity is clipped to its length, so appending to it never writes
// into the Array. The view is invalidated by any operation that may
// relocate storage.
func (a *Array[T, B, P]) Slice() []T {
	return a.region()[:a.size:a.size]
}

// All returns an iterator over index/element pairs in order.
func (a *Array[T, B, P]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range a.Slice() {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in order.
func (a *Array[T, B, P]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range a.Slice() {
			if !yield(v) {
				return
			}
		}
	}
}

// Backward returns an iterator over index/element pairs from last to first.
func (a *Array[T, B, P]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		s := a.Slice()
		for i := len(s) - 1; i >= 0; i-- {
			if !yield(i, s[i]) {
				return
			}
		}
	}
}

// Format implements fmt.Formatter by formatting the live elements as a slice.
func (a *Array[T, B, P]) Format(state fmt.State, verb rune) {
	fmt.Fprintf(state, fmt.FormatString(state, verb), a.Slice())
}

// allocRegion obtains the allocator's grant for an n-slot region under cfg.
// Nothing in the Array is touched.
func (a *Array[T, B, P]) allocRegion(cfg *options, n int) ([]T, error) {
	bytes, err := conv.SlotBytes(n, a.ElementSize())
	if err == nil {
		err = cfg.allocator.Allocate(cfg.tag, bytes)
	}
	if err != nil {
		err = &AllocError{Tag: cfg.tag, Slots: n, Bytes: bytes, cause: err}
		cfg.metricsCollector.RecordReserve(cfg.tag, bytes, err)
		return nil, err
	}
	cfg.metricsCollector.RecordReserve(cfg.tag, bytes, nil)
	return make([]T, n), nil
}

// releaseOverflow gives the overflow region back to the allocator it was
// obtained from and falls back to the inline buffer. Live elements must
// already have been moved out or destroyed.
func (a *Array[T, B, P]) releaseOverflow(cfg *options) int64 {
	if a.overflow == nil {
		return 0
	}
	// Cannot fail: the same size was granted before.
	bytes, _ := conv.SlotBytes(len(a.overflow), a.ElementSize())
	cfg.allocator.Release(cfg.tag, bytes)
	cfg.metricsCollector.RecordRelease(cfg.tag, bytes)
	a.overflow = nil
	return bytes
}

// Reserve ensures the Array can hold at least n elements.
//
// It is a no-op if n <= Cap(). Otherwise it asks the allocator for a region
// of exactly n slots and moves every element into it, releasing the previous
// overflow region. If the allocator refuses, the error wraps ErrOutOfMemory
// and the Array is unchanged.
func (a *Array[T, B, P]) Reserve(n int) error {
	capacity := a.Cap()
	if n <= capacity {
		return nil
	}

	cfg := a.config()
	spill := a.overflow == nil

	grown, err := a.allocRegion(cfg, n)
	if err != nil {
		if cfg.logger != nil {
			cfg.logger.LogGrow(cfg.tag, capacity, n, a.size, spill, err)
		}
		return err
	}

	old := a.region()
	copy(grown, old[:a.size])
	if spill {
		// The inline buffer stays reachable; drop the moved references.
		var p P
		if !p.Trivial() {
			clear(old[:a.size])
		}
		cfg.metricsCollector.RecordSpill(cfg.tag)
	} else {
		a.releaseOverflow(cfg)
	}
	a.overflow = grown

	if cfg.logger != nil {
		cfg.logger.LogGrow(cfg.tag, capacity, n, a.size, spill, nil)
	}
	return nil
}

// PushBack appends a policy copy of v, doubling the capacity first if the
// Array is full. The caller keeps ownership of v. Amortized O(1). On
// allocation failure the Array is unchanged and no copy is made.
func (a *Array[T, B, P]) PushBack(v T) error {
	if a.size == a.Cap() {
		if err := a.Reserve(a.Cap() * growthFactor); err != nil {
			return err
		}
	}
	var p P
	a.region()[a.size] = p.Copy(v)
	a.size++
	return nil
}

// appendCopies appends policy copies of src. Capacity must already suffice.
func (a *Array[T, B, P]) appendCopies(src []T) {
	var p P
	r := a.region()[a.size:]
	for i, v := range src {
		r[i] = p.Copy(v)
	}
	a.size += len(src)
}

// PopBack removes the last element. It panics if the Array is empty.
func (a *Array[T, B, P]) PopBack() {
	if a.size == 0 {
		panic("prealloc: PopBack on empty Array")
	}
	a.size--
	var p P
	if !p.Trivial() {
		p.Destroy(&a.region()[a.size])
	}
}

// Clear removes all elements. The capacity is unchanged.
func (a *Array[T, B, P]) Clear() {
	a.EraseAtEnd(0)
}

// Resize changes the length to n. New slots hold the zero value.
// See ResizeFill.
func (a *Array[T, B, P]) Resize(n int) error {
	if n <= a.size {
		return a.ResizeFill(n, *new(T))
	}
	if err := a.Reserve(n); err != nil {
		return err
	}
	clear(a.region()[a.size:n])
	a.size = n
	return nil
}

// ResizeFill changes the length to n.
//
// Growing reserves exactly n slots and appends policy copies of fill; if
// the allocator refuses, the Array is unchanged. Shrinking destroys the
// trailing elements. The capacity is never reduced.
func (a *Array[T, B, P]) ResizeFill(n int, fill T) error {
	if n < 0 {
		panic(fmt.Sprintf("prealloc: Resize to negative length %d", n))
	}
	switch {
	case n == a.size:
		return nil
	case n < a.size:
		a.EraseAtEnd(n)
		return nil
	}
	if err := a.Reserve(n); err != nil {
		return err
	}
	var p P
	r := a.region()
	for i := a.size; i < n; i++ {
		r[i] = p.Copy(fill)
	}
	a.size = n
	return nil
}

// Clone returns a deep copy of the Array sharing its allocator
// configuration and tag. The copy reserves the source's capacity.
//
// If the allocator refuses, Clone returns a valid, empty Array together
// with an error wrapping ErrOutOfMemory.
func (a *Array[T, B, P]) Clone() (*Array[T, B, P], error) {
	c := &Array[T, B, P]{cfg: a.cfg}
	if err := c.Reserve(a.Cap()); err != nil {
		return c, err
	}
	c.appendCopies(a.Slice())
	return c, nil
}

// Assign replaces the contents of a with copies of src's elements and
// adopts src's capacity, allocator and tag.
//
// Storage is obtained before anything is destroyed, so on allocation
// failure a is unchanged. Assigning an Array to itself is a no-op.
func (a *Array[T, B, P]) Assign(src *Array[T, B, P]) error {
	if a == src {
		return nil
	}

	oldCfg, newCfg := a.config(), src.config()
	need := src.Cap()

	// A region granted under another configuration cannot be reused: it
	// has to be released to the allocator it came from.
	needRegion := need > a.Cap()
	if oldCfg != newCfg {
		needRegion = need > a.InlineCap()
	}

	var grown []T
	if needRegion {
		r, err := a.allocRegion(newCfg, need)
		if err != nil {
			if newCfg.logger != nil {
				newCfg.logger.LogGrow(newCfg.tag, a.Cap(), need, a.size, a.overflow == nil, err)
			}
			return err
		}
		grown = r
		if a.overflow == nil {
			newCfg.metricsCollector.RecordSpill(newCfg.tag)
		}
	}

	a.Clear()
	if grown != nil || oldCfg != newCfg {
		a.releaseOverflow(oldCfg)
		a.overflow = grown
		a.cfg = src.cfg
	}
	a.appendCopies(src.Slice())
	return nil
}

// Free destroys all elements according to the policy and releases the
// overflow region. The Array returns to its empty inline state and can be
// reused.
func (a *Array[T, B, P]) Free() {
	a.Clear()
	if a.overflow == nil {
		return
	}
	cfg := a.config()
	capacity := len(a.overflow)
	bytes := a.releaseOverflow(cfg)
	if cfg.logger != nil {
		cfg.logger.LogFree(cfg.tag, capacity, bytes)
	}
}

// Swap exchanges the contents of a and other, including capacity,
// allocator and tag.
//
// When both Arrays use overflow regions only the regions change owner,
// in O(1). An inline buffer cannot change owner, so otherwise the elements
// of the inline side are moved into the other Array's buffer, in O(N).
// Swap never allocates and cannot fail.
func (a *Array[T, B, P]) Swap(other *Array[T, B, P]) {
	if a == other {
		return
	}

	fast := a.overflow != nil && other.overflow != nil
	a.config().metricsCollector.RecordSwap(fast)

	switch {
	case fast:
		a.overflow, other.overflow = other.overflow, a.overflow
	case a.overflow == nil && other.overflow == nil:
		a.inline, other.inline = other.inline, a.inline
	case a.overflow == nil:
		a.handOver(other)
	default:
		other.handOver(a)
	}
	a.size, other.size = other.size, a.size
	a.cfg, other.cfg = other.cfg, a.cfg
}

// handOver moves a's inline elements into dst's inline buffer and takes
// dst's overflow region. a must be inline and dst must not be.
func (a *Array[T, B, P]) handOver(dst *Array[T, B, P]) {
	src := a.inlineRegion()[:a.size]
	copy(dst.inlineRegion(), src)
	var p P
	if !p.Trivial() {
		clear(src)
	}
	a.overflow, dst.overflow = dst.overflow, nil
}

// ShrinkToFit reduces the capacity to the length.
//
// It is a no-op when the inline buffer is in use or the Array is full.
// Otherwise the elements move into the inline buffer if they fit, or into
// an overflow region of exactly Len() slots, and the old region is
// released. If the allocator refuses the new region, the error wraps
// ErrOutOfMemory and the Array is unchanged.
func (a *Array[T, B, P]) ShrinkToFit() error {
	if a.overflow == nil || a.size == len(a.overflow) {
		return nil
	}

	cfg := a.config()
	from := len(a.overflow)
	old := a.overflow

	if a.size <= a.InlineCap() {
		copy(a.inlineRegion(), old[:a.size])
		a.releaseOverflow(cfg)
	} else {
		shrunk, err := a.allocRegion(cfg, a.size)
		if err != nil {
			if cfg.logger != nil {
				cfg.logger.LogShrink(cfg.tag, from, a.size, err)
			}
			return err
		}
		copy(shrunk, old[:a.size])
		a.releaseOverflow(cfg)
		a.overflow = shrunk
	}

	if cfg.logger != nil {
		cfg.logger.LogShrink(cfg.tag, from, a.Cap(), nil)
	}
	return nil
}
