package conv

import (
	"fmt"
	"math"
	"math/bits"
)

// IntToUint64 converts int to uint64 safely.
func IntToUint64(v int) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint64 (negative)", v)
	}
	return uint64(v), nil
}

// Int64ToInt converts int64 to int safely.
func Int64ToInt(v int64) (int, error) {
	if v > math.MaxInt || v < math.MinInt {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int", v)
	}
	return int(v), nil
}

// SlotBytes returns n*size as an int64 byte count.
// It fails if n is negative or the product does not fit in an int64.
func SlotBytes(n int, size uintptr) (int64, error) {
	un, err := IntToUint64(n)
	if err != nil {
		return 0, err
	}
	hi, lo := bits.Mul64(un, uint64(size))
	if hi != 0 || lo > math.MaxInt64 {
		return 0, fmt.Errorf("integer overflow: %d slots of %d bytes exceed int64", n, size)
	}
	return int64(lo), nil
}
