// Package resource implements Controller, a prealloc.Allocator that enforces
// memory budgets for overflow regions.
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                        Controller                           │
//	├─────────────────┬─────────────────┬─────────────────────────┤
//	│  Global Limit   │  Per-Tag Limits │  Grant Rate Limiter     │
//	│  (semaphore)    │  (semaphores)   │  (token bucket)         │
//	├─────────────────┴─────────────────┴─────────────────────────┤
//	│  Allocate (non-blocking, fail-fast)   Release               │
//	│  MemoryUsage   TagUsage   Tags                              │
//	└─────────────────────────────────────────────────────────────┘
//
// # Usage
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 256 << 20,
//	    TagLimits:        map[prealloc.Tag]int64{"conn.keys": 1 << 20},
//	})
//
//	keys := prealloc.New[uint64, [16]uint64, prealloc.Plain[uint64]](
//	    prealloc.WithAllocator(rc),
//	    prealloc.WithTag("conn.keys"),
//	)
//	defer keys.Free()
//
//	if err := keys.PushBack(k); err != nil {
//	    // errors.Is(err, prealloc.ErrOutOfMemory)
//	    // errors.Is(err, resource.ErrTagLimitExceeded)
//	}
//
// Allocate never blocks. A grant is refused as soon as any limit would be
// exceeded and nothing is charged; the Array that asked stays unchanged.
//
// # Configuration
//
// Config can be decoded from YAML with ParseConfig or LoadConfig.
//
// # Thread Safety
//
// All Controller methods are safe for concurrent use. The underlying
// implementations use atomic operations and sync primitives.
//
// # Nil Safety
//
// All methods handle nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
