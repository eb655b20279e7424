package prealloc_test

import (
	"fmt"
	"testing"

	"github.com/hupe1980/prealloc"
	"github.com/hupe1980/prealloc/testutil"
)

func BenchmarkPushBack(b *testing.B) {
	for _, n := range []int{8, 16, 64, 1024} {
		b.Run(fmt.Sprintf("Array/n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for range b.N {
				a := prealloc.New[int, [16]int, prealloc.Plain[int]]()
				for i := range n {
					_ = a.PushBack(i)
				}
				a.Free()
			}
		})
		b.Run(fmt.Sprintf("Slice/n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for range b.N {
				var s []int
				for i := range n {
					s = append(s, i)
				}
				_ = s
			}
		})
	}
}

func BenchmarkInsertUnique(b *testing.B) {
	rng := testutil.NewRNG(99)
	for _, n := range []int{16, 256, 4096} {
		keys := rng.Ints(n, n*4)
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for range b.N {
				a := prealloc.New[int, [16]int, prealloc.Plain[int]]()
				for _, k := range keys {
					_, _, _ = prealloc.InsertUnique(a, k)
				}
				a.Free()
			}
		})
	}
}

func BenchmarkSwap(b *testing.B) {
	b.Run("Overflow", func(b *testing.B) {
		x := prealloc.New[int, [8]int, prealloc.Plain[int]]()
		y := prealloc.New[int, [8]int, prealloc.Plain[int]]()
		for i := range 100 {
			_ = x.PushBack(i)
			_ = y.PushBack(i)
		}
		b.ReportAllocs()
		b.ResetTimer()
		for range b.N {
			x.Swap(y)
		}
	})
	b.Run("Inline", func(b *testing.B) {
		x := prealloc.New[int, [8]int, prealloc.Plain[int]]()
		y := prealloc.New[int, [8]int, prealloc.Plain[int]]()
		for i := range 8 {
			_ = x.PushBack(i)
			_ = y.PushBack(i)
		}
		b.ReportAllocs()
		b.ResetTimer()
		for range b.N {
			x.Swap(y)
		}
	})
}

func BenchmarkEraseOwned(b *testing.B) {
	tr := testutil.NewTracker()
	b.ReportAllocs()
	for range b.N {
		a := prealloc.New[testutil.Handle, [8]testutil.Handle, prealloc.Owned[testutil.Handle]]()
		for i := range 32 {
			_ = a.PushBack(tr.New(i))
		}
		for !a.Empty() {
			a.Erase(0)
		}
		a.Free()
	}
}
