package kds

// Buffer layout constants, byte-exact per the external accelerator ABI.
//
//	[0:4]   total length (uint32 LE)
//	[4:6]   format tag (uint16 LE), fixed value formatTagColumnar
//	[6:8]   column count (uint16 LE)
//	[8:12]  capacity in rows (uint32 LE)
//	[12:16] actual row count (uint32 LE)
//	[16:]   column offset table: ncols x uint32 LE absolute offsets
//
// The header-plus-offset-table region is then padded up to kdsAlignment
// before the first column region begins; every column region is itself
// max-aligned in turn.
const (
	headerFixedFieldsSize = 16
	offsetEntrySize       = 4

	// kdsAlignment is the external ABI's "platform maximum alignment"
	// (spec §3); 16 bytes covers every scalar and vector width the
	// accelerator's per-row kernels read from a KDS buffer.
	kdsAlignment = 16

	formatTagColumnar uint16 = 0x4B44 // "KD"

	// geometryHeaderSize is the fixed per-value header+coordinate block
	// written for every POINT-Z row (spec §3): type code, flags, padding,
	// SRID, item count, raw payload size, three float64 coordinates.
	geometryHeaderSize = 48

	// kdsGeometryLayoutVersion is informational only: a breaking change
	// to the geometry header layout is an external ABI change handled
	// out-of-band, not something this package negotiates at runtime.
	kdsGeometryLayoutVersion = 1

	// minWKBPointLen is the minimum source payload length this package
	// will parse as a POINT-Z well-known-binary record: 1 byte
	// byte-order + 4 bytes type + 24 bytes of three float64 coordinates.
	minWKBPointLen = 29
)

// maxAlign rounds n up to the next multiple of kdsAlignment.
func maxAlign(n int64) int64 {
	rem := n % kdsAlignment
	if rem == 0 {
		return n
	}
	return n + (kdsAlignment - rem)
}

func validityBytes(nrows int32) int64 {
	words := (int64(nrows) + 63) / 64
	return maxAlign(words * 8)
}

func headerRegionSize(ncols int) int64 {
	return maxAlign(int64(headerFixedFieldsSize + offsetEntrySize*ncols))
}
