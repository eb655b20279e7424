// Package prealloc provides Array, a growable sequence with a fixed-size
// buffer embedded in the container itself.
//
// Most per-request collections in a server are small: a handful of keys, a
// few column references, the tables of one statement. Array keeps such
// collections in its own inline buffer and only asks an Allocator for an
// overflow region once the buffer is exceeded. Elements stay contiguous in
// either case.
//
// # Quick Start
//
//	// Up to 8 ids without allocating.
//	ids := prealloc.New[uint32, [8]uint32, prealloc.Plain[uint32]]()
//	defer ids.Free()
//
//	for _, id := range incoming {
//	    if err := ids.PushBack(id); err != nil {
//	        return err // errors.Is(err, prealloc.ErrOutOfMemory)
//	    }
//	}
//
// # Type Parameters
//
//   - T is the element type.
//   - B is the inline buffer, an array of T such as [8]T. len(B) is the
//     inline capacity N.
//   - P is the element Policy. Plain elides per-element destruction, Zeroing
//     clears removed slots, Owned clones and releases elements that
//     implement Resource.
//
// # Storage Modes
//
// An Array starts in InlineMode with Cap() == N. Growing past N moves the
// elements into an overflow region whose size doubles on append; Reserve is
// the single place where elements are relocated. The capacity never shrinks
// except through ShrinkToFit, Swap and Free.
//
// # Failure Model
//
// Every operation that may allocate returns an error wrapping
// ErrOutOfMemory when the Allocator refuses, and leaves the Array exactly
// as it was. Precondition violations (index out of range, PopBack on an
// empty Array) are programming errors and panic.
//
// # Sorted Sets
//
// InsertUnique, EraseUnique, CountUnique and FindUnique (and their Func
// variants) maintain a sorted Array without duplicates:
//
//	tables := prealloc.New[string, [4]string, prealloc.Zeroing[string]]()
//	prealloc.InsertUnique(tables, "orders")
//	prealloc.InsertUnique(tables, "customers")
//	prealloc.CountUnique(tables, "orders") // 1
//
// # Accounting
//
// Overflow regions are granted by an Allocator under an opaque Tag. The
// resource package provides a Controller enforcing global and per-tag
// budgets; telemetry/prom and telemetry/otelmetric export the
// MetricsCollector events.
package prealloc
