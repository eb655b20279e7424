// Package testutil provides testing utilities for prealloc.
//
// This package is intended for use in tests and benchmarks only.
// It provides deterministic input generation, fault-injecting and
// recording allocators, and an element type that tracks its own
// copies and releases.
//
// # Deterministic Input
//
//	rng := testutil.NewRNG(seed)
//	keys := rng.SortedUnique(100, 1000) // 100 distinct ints in [0, 1000), ascending
//	vals := rng.Ints(50, 10)           // 50 ints in [0, 10), duplicates allowed
//
// # Fault Injection
//
//	fa := testutil.NewFailingAllocator(2) // grant twice, then refuse
//	rec := testutil.NewRecordingAllocator(fa)
//	arr := prealloc.New[int, [4]int, prealloc.Plain[int]](prealloc.WithAllocator(rec))
//	// ... exercise arr ...
//	arr.Free()
//	if !rec.Balanced() { t.Fatal("leaked overflow grant") }
//
// # Ownership Tracking
//
//	tr := testutil.NewTracker()
//	arr := prealloc.New[testutil.Handle, [4]testutil.Handle, prealloc.Owned[testutil.Handle]]()
//	h := tr.New(1)
//	_ = arr.PushBack(h) // stores a clone
//	h.Release()
//	arr.Free()
//	// tr.Live() == 0
package testutil
