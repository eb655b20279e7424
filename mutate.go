package prealloc

import "fmt"

// Insert inserts a policy copy of v before the element at pos and returns
// pos. The caller keeps ownership of v.
//
// pos must be in [0, Len()]; pos == Len() appends. Elements from pos onward
// shift one slot toward the end, so Insert is O(n). If the Array is full it
// grows through the same path as PushBack; on allocation failure the Array
// is unchanged. Positions, Ref pointers and Slice views taken earlier are
// invalidated by any growth.
func (a *Array[T, B, P]) Insert(pos int, v T) (int, error) {
	if pos < 0 || pos > a.size {
		panic(outOfRange("Insert", pos, a.size+1))
	}
	if pos == a.size {
		return pos, a.PushBack(v)
	}
	if a.size == a.Cap() {
		if err := a.Reserve(a.Cap() * growthFactor); err != nil {
			return pos, err
		}
	}
	r := a.region()
	// copy is overlap-safe: the tail is moved back to front.
	copy(r[pos+1:a.size+1], r[pos:a.size])
	var p P
	r[pos] = p.Copy(v)
	a.size++
	return pos, nil
}

// Erase removes the element at pos and returns pos, which now holds the
// element that followed it. O(n).
func (a *Array[T, B, P]) Erase(pos int) int {
	a.check("Erase", pos)
	r := a.region()
	var p P
	trivial := p.Trivial()
	if !trivial {
		p.Destroy(&r[pos])
	}
	copy(r[pos:], r[pos+1:a.size])
	a.size--
	if !trivial {
		// Moved-from duplicate of the last element.
		var zero T
		r[a.size] = zero
	}
	return pos
}

// EraseRange removes the elements in [first, last) and returns first.
// The tail is shifted into the gap. O(n).
func (a *Array[T, B, P]) EraseRange(first, last int) int {
	if first < 0 || last < first || last > a.size {
		panic(fmt.Sprintf("prealloc: EraseRange [%d:%d] out of range [0:%d]", first, last, a.size))
	}
	if first == last {
		return first
	}
	r := a.region()
	var p P
	trivial := p.Trivial()
	if !trivial {
		for i := first; i < last; i++ {
			p.Destroy(&r[i])
		}
	}
	newSize := first + copy(r[first:], r[last:a.size])
	if !trivial {
		clear(r[newSize:a.size])
	}
	a.size = newSize
	return first
}

// EraseAtEnd removes the elements in [first, Len()). No element is moved.
func (a *Array[T, B, P]) EraseAtEnd(first int) {
	if first < 0 || first > a.size {
		panic(outOfRange("EraseAtEnd", first, a.size+1))
	}
	var p P
	if !p.Trivial() {
		r := a.region()
		for i := first; i < a.size; i++ {
			p.Destroy(&r[i])
		}
	}
	a.size = first
}
