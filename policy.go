package prealloc

// Policy describes how an Array treats its elements. It is a type-level
// parameter: implementations are zero-size structs and the Array consults
// Trivial once per operation, never once per element.
//
// When Trivial reports true the Array skips Destroy entirely on removal,
// truncation, clearing and Free, and only adjusts its size. Eliding
// destruction for elements that hold references or resources leaks them;
// a non-trivial policy for plain values only costs a few stores.
type Policy[T any] interface {
	// Trivial reports whether per-element destruction can be elided.
	Trivial() bool
	// Copy returns an independent duplicate of src.
	Copy(src T) T
	// Destroy tears down the element at p and leaves the zero value behind.
	Destroy(p *T)
}

// Plain is the policy for values without references: ints, fixed-size
// structs, keys. Removed slots are left as they are.
type Plain[T any] struct{}

func (Plain[T]) Trivial() bool { return true }
func (Plain[T]) Copy(src T) T  { return src }
func (Plain[T]) Destroy(p *T)  {}

// Zeroing is the policy for pointer-bearing values that do not own anything:
// removed slots are zeroed so the referents can be collected.
type Zeroing[T any] struct{}

func (Zeroing[T]) Trivial() bool { return false }
func (Zeroing[T]) Copy(src T) T  { return src }
func (Zeroing[T]) Destroy(p *T) {
	var zero T
	*p = zero
}

// Resource is an element that owns something which must be duplicated on
// copy and given back on removal.
type Resource[T any] interface {
	Clone() T
	Release()
}

// Owned is the policy for elements implementing Resource.
type Owned[T Resource[T]] struct{}

func (Owned[T]) Trivial() bool { return false }
func (Owned[T]) Copy(src T) T  { return src.Clone() }
func (Owned[T]) Destroy(p *T) {
	(*p).Release()
	var zero T
	*p = zero
}
