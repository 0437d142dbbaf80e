package kds

import "encoding/binary"

// writeHeader writes the 16-byte fixed header fields at the start of buf
// (spec §3): total length, format tag, column count, capacity-in-rows,
// actual-row-count.
func writeHeader(buf []byte, totalLength int64, ncols int, nrows int32) {
	binary.LittleEndian.PutUint32(buf[0:4], uint32(totalLength))
	binary.LittleEndian.PutUint16(buf[4:6], formatTagColumnar)
	binary.LittleEndian.PutUint16(buf[6:8], uint16(ncols))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(nrows))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(nrows))
}

// writeColumnOffset writes the absolute offset of column i into the
// offset table that immediately follows the fixed header fields.
func writeColumnOffset(buf []byte, i int, offset int64) {
	pos := headerFixedFieldsSize + i*offsetEntrySize
	binary.LittleEndian.PutUint32(buf[pos:pos+4], uint32(offset))
}

func readHeader(buf []byte) (totalLength uint32, formatTag uint16, ncols uint16, capacityRows, actualRows uint32, ok bool) {
	if len(buf) < headerFixedFieldsSize {
		return 0, 0, 0, 0, 0, false
	}
	totalLength = binary.LittleEndian.Uint32(buf[0:4])
	formatTag = binary.LittleEndian.Uint16(buf[4:6])
	ncols = binary.LittleEndian.Uint16(buf[6:8])
	capacityRows = binary.LittleEndian.Uint32(buf[8:12])
	actualRows = binary.LittleEndian.Uint32(buf[12:16])
	return totalLength, formatTag, ncols, capacityRows, actualRows, true
}

func readColumnOffset(buf []byte, i int) (int64, bool) {
	pos := headerFixedFieldsSize + i*offsetEntrySize
	if pos+4 > len(buf) {
		return 0, false
	}
	return int64(binary.LittleEndian.Uint32(buf[pos : pos+4])), true
}
