package prealloc

// Tag is an opaque accounting token passed to the Allocator on every request
// and release. It carries no meaning for the container itself.
type Tag string

// Allocator grants and takes back the memory budget behind overflow regions.
//
// The Go runtime owns the memory itself; an Allocator decides whether a
// region of the given size may exist and accounts for it. A refusal is
// propagated to the caller verbatim: the container never retries and never
// falls back to another strategy.
//
// Every successful Allocate is matched by exactly one Release with the same
// tag and byte count.
type Allocator interface {
	Allocate(tag Tag, bytes int64) error
	Release(tag Tag, bytes int64)
}

// HeapAllocator grants every request.
// It is the default when no allocator is configured.
type HeapAllocator struct{}

// Allocate implements Allocator.
func (HeapAllocator) Allocate(Tag, int64) error { return nil }

// Release implements Allocator.
func (HeapAllocator) Release(Tag, int64) {}

// AllocatorFunc adapts a pair of functions to the Allocator interface.
// A nil Free is allowed.
type AllocatorFunc struct {
	Alloc func(tag Tag, bytes int64) error
	Free  func(tag Tag, bytes int64)
}

// Allocate implements Allocator.
func (f AllocatorFunc) Allocate(tag Tag, bytes int64) error {
	if f.Alloc == nil {
		return nil
	}
	return f.Alloc(tag, bytes)
}

// Release implements Allocator.
func (f AllocatorFunc) Release(tag Tag, bytes int64) {
	if f.Free != nil {
		f.Free(tag, bytes)
	}
}
