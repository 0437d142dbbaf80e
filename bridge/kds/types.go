package kds

// ColumnType is the closed set of semantic types a source column may
// carry (spec §3).
type ColumnType int

const (
	Int16 ColumnType = iota
	Int32
	Int64 // includes microsecond timestamps
	Float32
	Float64
	GeometryPointZ
)

// typLen returns the fixed-width element size in bytes for every type
// except GeometryPointZ, which is variable-width and has no typLen.
func (t ColumnType) typLen() int64 {
	switch t {
	case Int16:
		return 2
	case Int32, Float32:
		return 4
	case Int64, Float64:
		return 8
	default:
		return 0
	}
}

// ColumnDesc describes one source column: its semantic type, the
// attribute index it came from, and, for geometry columns, the spatial
// reference identifier the geometry header should carry.
type ColumnDesc struct {
	Type      ColumnType
	AttrIndex int
	// SRID is read by the geometry header writer; zero means the
	// descriptor does not carry one, and SentinelSRID is written instead.
	SRID int32
}

// SentinelSRID is written into a geometry header when a ColumnDesc does
// not specify a spatial reference identifier.
const SentinelSRID int32 = -1

// Array is one Arrow-shaped source column (spec §3): an optional
// validity bitmap, LSB-first in 64-bit words (nil means "all valid"),
// and one or two data buffers. Fixed-width columns use Data only;
// variable-width geometry columns use Offsets (int32 byte offsets,
// nrows+1 entries) plus Payload (the well-known-binary records).
type Array struct {
	Validity []uint64
	Data     []byte
	Offsets  []int32
	Payload  []byte
}

// Buffer is an allocated, fully-encoded KDS byte region together with
// the column offsets Encode wrote into its offset table, for callers
// that want them without re-parsing the header.
type Buffer struct {
	Bytes         []byte
	ColumnOffsets []int32
}

// Decoded is the result of Verify: a read-only, independently-derived
// view of a KDS buffer's structure, used by round-trip tests and the
// inspect CLI, never by the production encode/decode path.
type Decoded struct {
	TotalLength   uint32
	FormatTag     uint16
	ColumnCount   uint16
	CapacityRows  uint32
	ActualRows    uint32
	ColumnOffsets []uint32
}
