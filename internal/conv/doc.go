// Package conv provides overflow-checked integer conversions.
//
// These functions perform bounds checking to prevent integer overflow
// when converting element counts into byte sizes and between the
// platform-dependent int and fixed-width types.
//
// Use cases:
//   - Turning a slot count and element size into an allocator request
//   - Feeding int64 byte counts into APIs that take int
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices, bounded counters), use direct type casts instead to avoid overhead.
package conv
