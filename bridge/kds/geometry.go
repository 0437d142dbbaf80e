package kds

import "encoding/binary"

// writeGeometryHeader emits the 48-byte per-value header+coordinate
// block at buf[0:48] (spec §3):
//
//	[0:4]   type code (fixed, "point")
//	[4:6]   flags (bit 0 = has Z)
//	[6:8]   padding to 4-byte alignment
//	[8:12]  spatial reference identifier
//	[12:16] inline item count (always 1)
//	[16:20] raw payload size (always 24)
//	[20:28] x (float64 LE)
//	[28:36] y (float64 LE)
//	[36:44] z (float64 LE)
//	[44:48] padding, 8-byte-aligning the coordinate triplet
const (
	geometryTypeCodePoint uint32 = 1
	geometryFlagHasZ      uint16 = 1 << 0
	geometryItemCount     uint32 = 1
	geometryRawPayload    uint32 = 24
)

func writeGeometryHeader(buf []byte, srid int32, x, y, z float64) {
	binary.LittleEndian.PutUint32(buf[0:4], geometryTypeCodePoint)
	binary.LittleEndian.PutUint16(buf[4:6], geometryFlagHasZ)
	binary.LittleEndian.PutUint16(buf[6:8], 0)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(srid))
	binary.LittleEndian.PutUint32(buf[12:16], geometryItemCount)
	binary.LittleEndian.PutUint32(buf[16:20], geometryRawPayload)
	binary.LittleEndian.PutUint64(buf[20:28], floatBits(x))
	binary.LittleEndian.PutUint64(buf[28:36], floatBits(y))
	binary.LittleEndian.PutUint64(buf[36:44], floatBits(z))
	binary.LittleEndian.PutUint32(buf[44:48], 0)
}

// readWKBPoint parses a well-known-binary POINT-Z record: one byte of
// byte-order, four bytes of type, then three little-endian float64
// coordinates (spec §4.D). The caller has already checked len(payload)
// is at least minWKBPointLen.
func readWKBPoint(payload []byte) (x, y, z float64) {
	body := payload[5:]
	x = floatFromBits(binary.LittleEndian.Uint64(body[0:8]))
	y = floatFromBits(binary.LittleEndian.Uint64(body[8:16]))
	z = floatFromBits(binary.LittleEndian.Uint64(body[16:24]))
	return x, y, z
}
