package prealloc

import (
	"cmp"
	"slices"
)

// The sorted-unique family treats the Array as a set ordered by cmp. The
// caller keeps the Array sorted without duplicates under the same ordering
// (inserting only through InsertUniqueFunc does that); results are
// unspecified otherwise.

// FindUniqueFunc binary-searches for v. It returns the position of the
// equal element and true, or the position where v would be inserted and
// false.
func (a *Array[T, B, P]) FindUniqueFunc(v T, cmp func(T, T) int) (int, bool) {
	return slices.BinarySearchFunc(a.Slice(), v, cmp)
}

// InsertUniqueFunc inserts v at its sort position unless an equal element
// is already present. It returns the position of v (or of the equal
// element) and whether it was inserted. O(log n) search plus O(n) shift.
//
// On allocation failure the error wraps ErrOutOfMemory, inserted is false
// and the Array is unchanged.
func (a *Array[T, B, P]) InsertUniqueFunc(v T, cmp func(T, T) int) (int, bool, error) {
	pos, found := a.FindUniqueFunc(v, cmp)
	if found {
		return pos, false, nil
	}
	if _, err := a.Insert(pos, v); err != nil {
		return pos, false, err
	}
	return pos, true, nil
}

// EraseUniqueFunc removes the element equal to v, if any, and returns the
// number of elements removed (0 or 1).
func (a *Array[T, B, P]) EraseUniqueFunc(v T, cmp func(T, T) int) int {
	pos, found := a.FindUniqueFunc(v, cmp)
	if !found {
		return 0
	}
	a.Erase(pos)
	return 1
}

// CountUniqueFunc returns 1 if an element equal to v is present, 0 otherwise.
func (a *Array[T, B, P]) CountUniqueFunc(v T, cmp func(T, T) int) int {
	if _, found := a.FindUniqueFunc(v, cmp); found {
		return 1
	}
	return 0
}

// FindUnique is FindUniqueFunc under the natural ordering of T.
func FindUnique[T cmp.Ordered, B Inline[T], P Policy[T]](a *Array[T, B, P], v T) (int, bool) {
	return a.FindUniqueFunc(v, cmp.Compare[T])
}

// InsertUnique is InsertUniqueFunc under the natural ordering of T.
func InsertUnique[T cmp.Ordered, B Inline[T], P Policy[T]](a *Array[T, B, P], v T) (int, bool, error) {
	return a.InsertUniqueFunc(v, cmp.Compare[T])
}

// EraseUnique is EraseUniqueFunc under the natural ordering of T.
func EraseUnique[T cmp.Ordered, B Inline[T], P Policy[T]](a *Array[T, B, P], v T) int {
	return a.EraseUniqueFunc(v, cmp.Compare[T])
}

// CountUnique is CountUniqueFunc under the natural ordering of T.
func CountUnique[T cmp.Ordered, B Inline[T], P Policy[T]](a *Array[T, B, P], v T) int {
	return a.CountUniqueFunc(v, cmp.Compare[T])
}
