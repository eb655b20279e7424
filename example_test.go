package prealloc_test

import (
	"errors"
	"fmt"

	"github.com/hupe1980/prealloc"
	"github.com/hupe1980/prealloc/resource"
)

// Example demonstrates the inline-to-overflow transition.
func Example() {
	ids := prealloc.New[int, [4]int, prealloc.Plain[int]]()
	defer ids.Free()

	for i := 1; i <= 4; i++ {
		_ = ids.PushBack(i * 10)
	}
	fmt.Println(ids, ids.Mode(), ids.Cap())

	_ = ids.PushBack(50)
	fmt.Println(ids, ids.Mode(), ids.Cap())
	// Output:
	// [10 20 30 40] inline 4
	// [10 20 30 40 50] overflow 8
}

// Example_sortedSet demonstrates the sorted-unique operations.
func Example_sortedSet() {
	set := prealloc.New[string, [8]string, prealloc.Zeroing[string]]()
	defer set.Free()

	for _, w := range []string{"pear", "apple", "fig", "apple"} {
		pos, inserted, err := prealloc.InsertUnique(set, w)
		if err != nil {
			panic(err)
		}
		fmt.Println(w, pos, inserted)
	}
	fmt.Println(set, prealloc.CountUnique(set, "fig"))

	prealloc.EraseUnique(set, "fig")
	fmt.Println(set, prealloc.CountUnique(set, "fig"))
	// Output:
	// pear 0 true
	// apple 0 true
	// fig 1 true
	// apple 0 false
	// [apple fig pear] 1
	// [apple pear] 0
}

// Example_budget demonstrates a memory budget enforced by resource.Controller.
func Example_budget() {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 64})
	keys := prealloc.New[uint64, [4]uint64, prealloc.Plain[uint64]](
		prealloc.WithAllocator(rc),
		prealloc.WithTag("conn.keys"),
	)
	defer keys.Free()

	var err error
	for k := uint64(0); err == nil; k++ {
		err = keys.PushBack(k)
	}

	fmt.Println(keys.Len(), rc.MemoryUsage())
	fmt.Println(errors.Is(err, prealloc.ErrOutOfMemory), errors.Is(err, resource.ErrMemoryLimitExceeded))
	// Output:
	// 8 64
	// true true
}
