package prealloc

// Inline is the set of inline buffer types. The buffer length is the
// Array's inline capacity N, fixed at compile time by the type argument:
//
//	var ids prealloc.Array[uint32, [8]uint32, prealloc.Plain[uint32]]
//	var cols prealloc.Array[string, [5]string, prealloc.Zeroing[string]]
//
// Every length from 1 to 64 is accepted, plus 96, 128, 192, 256, 512 and
// 1024. Zero-length buffers are excluded; an Array always has room for at
// least one element without allocating.
type Inline[T any] interface {
	~[1]T | ~[2]T | ~[3]T | ~[4]T | ~[5]T | ~[6]T | ~[7]T | ~[8]T |
		~[9]T | ~[10]T | ~[11]T | ~[12]T | ~[13]T | ~[14]T | ~[15]T | ~[16]T |
		~[17]T | ~[18]T | ~[19]T | ~[20]T | ~[21]T | ~[22]T | ~[23]T | ~[24]T |
		~[25]T | ~[26]T | ~[27]T | ~[28]T | ~[29]T | ~[30]T | ~[31]T | ~[32]T |
		~[33]T | ~[34]T | ~[35]T | ~[36]T | ~[37]T | ~[38]T | ~[39]T | ~[40]T |
		~[41]T | ~[42]T | ~[43]T | ~[44]T | ~[45]T | ~[46]T | ~[47]T | ~[48]T |
		~[49]T | ~[50]T | ~[51]T | ~[52]T | ~[53]T | ~[54]T | ~[55]T | ~[56]T |
		~[57]T | ~[58]T | ~[59]T | ~[60]T | ~[61]T | ~[62]T | ~[63]T | ~[64]T |
		~[96]T | ~[128]T | ~[192]T | ~[256]T | ~[512]T | ~[1024]T
}

// StorageMode tells where the live elements of an Array are stored.
type StorageMode uint8

const (
	// InlineMode storage is the buffer embedded in the Array itself.
	InlineMode StorageMode = iota
	// OverflowMode storage is a separately allocated region.
	OverflowMode
)

func (m StorageMode) String() string {
	switch m {
	case InlineMode:
		return "inline"
	case OverflowMode:
		return "overflow"
	default:
		return "unknown"
	}
}
