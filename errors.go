package prealloc

import (
	"errors"
	"fmt"
)

// ErrOutOfMemory is returned when the allocator refuses to back a new
// overflow region, or when the requested region size cannot be represented.
//
// The Array is left unchanged whenever an operation returns this error.
var ErrOutOfMemory = errors.New("prealloc: out of memory")

// AllocError describes a refused overflow allocation.
//
// It matches ErrOutOfMemory via errors.Is. The allocator's own error (if any)
// can be accessed via errors.Unwrap.
type AllocError struct {
	Tag   Tag
	Slots int
	Bytes int64
	cause error
}

func (e *AllocError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("prealloc: cannot allocate %d slots (%d bytes) for tag %q", e.Slots, e.Bytes, e.Tag)
	}
	return fmt.Sprintf("prealloc: cannot allocate %d slots (%d bytes) for tag %q: %v", e.Slots, e.Bytes, e.Tag, e.cause)
}

func (e *AllocError) Unwrap() error { return e.cause }

// Is reports ErrOutOfMemory as a match so callers only need the sentinel.
func (e *AllocError) Is(target error) bool { return target == ErrOutOfMemory }

func outOfRange(op string, i, n int) string {
	return fmt.Sprintf("prealloc: %s index %d out of range [0:%d]", op, i, n)
}
