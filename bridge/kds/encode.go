package kds

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Encode builds a KDS buffer from the given Arrow-shaped arrays and
// column descriptors: a sizing pass, one zero-initialized allocation,
// then per-column encoding (spec §4.D). Arrays and descs must be the
// same length, one entry per column, in declaration order.
func Encode(arrays []Array, descs []ColumnDesc, nrows int32) (*Buffer, error) {
	ncols := len(descs)
	if len(arrays) != ncols {
		return nil, fmt.Errorf("kds: %d arrays for %d column descriptors", len(arrays), ncols)
	}

	total := headerRegionSize(ncols)
	colSizes := make([]int64, ncols)
	for i, d := range descs {
		size := validityBytes(nrows)
		if d.Type == GeometryPointZ {
			size += maxAlign(int64(nrows+1) * 4)
			size += maxAlign(int64(nrows) * geometryHeaderSize)
		} else {
			size += maxAlign(int64(nrows) * d.Type.typLen())
		}
		colSizes[i] = size
		total += size
	}

	if total <= 0 || total > int64(^uint32(0)) {
		return nil, ErrAllocation
	}

	buf := make([]byte, total)
	writeHeader(buf, total, ncols, nrows)

	offsets := make([]int32, ncols)
	cursor := headerRegionSize(ncols)
	for i, d := range descs {
		writeColumnOffset(buf, i, cursor)
		offsets[i] = int32(cursor)

		region := buf[cursor : cursor+colSizes[i]]
		if err := encodeValidity(region, arrays[i].Validity, nrows); err != nil {
			return nil, fmt.Errorf("kds: column %d: %w", i, err)
		}
		dataRegion := region[validityBytes(nrows):]
		if d.Type == GeometryPointZ {
			srid := d.SRID
			if srid == 0 {
				srid = SentinelSRID
			}
			if err := encodeGeometryColumn(dataRegion, arrays[i], srid, nrows); err != nil {
				return nil, fmt.Errorf("kds: column %d: %w", i, err)
			}
		} else {
			encodeFixedWidth(dataRegion, arrays[i].Data, nrows, d.Type.typLen())
		}

		cursor += colSizes[i]
	}

	return &Buffer{Bytes: buf, ColumnOffsets: offsets}, nil
}

// encodeValidity writes the column's validity bitmap. A bitset.BitSet is
// built one bit at a time — set if the row is present, left clear
// otherwise — so trailing bits beyond nrows in the final word fall out
// zero for free, with no separate masking pass. If the source array
// supplies no validity buffer every row is treated as present (spec
// §4.D). The set's backing words are then written out LSB-first, the
// same word order Arrow uses for its own validity bitmaps.
func encodeValidity(region []byte, validity []uint64, nrows int32) error {
	nwords := (int64(nrows) + 63) / 64
	if int64(len(region)) < nwords*8 {
		return ErrShortBuffer
	}
	bs := bitset.New(uint(nrows))
	for i := int32(0); i < nrows; i++ {
		if validBit(validity, i) {
			bs.Set(uint(i))
		}
	}
	words := bs.Bytes()
	for w := int64(0); w < nwords; w++ {
		var v uint64
		if int(w) < len(words) {
			v = words[w]
		}
		putWord(region, w, v)
	}
	return nil
}

func putWord(region []byte, word int64, v uint64) {
	for b := int64(0); b < 8; b++ {
		region[word*8+b] = byte(v >> (8 * uint(b)))
	}
}

// encodeFixedWidth copies nrows*typLen bytes from the Arrow data buffer,
// if present, leaving the region zero (already zero-initialized) when it
// is not. Pointer aliasing is a valid optimization the caller may make
// at the Array construction site; this function always copies.
func encodeFixedWidth(region, data []byte, nrows int32, typLen int64) {
	if data == nil {
		return
	}
	n := int64(nrows) * typLen
	if int64(len(data)) < n {
		n = int64(len(data))
	}
	copy(region[:n], data[:n])
}

// encodeGeometryColumn walks each row, writing its payload offset into
// the offset array, then a 48-byte header+coordinates block unless the
// row is null or its source payload is malformed (spec §4.D).
func encodeGeometryColumn(region []byte, arr Array, srid int32, nrows int32) error {
	offsetsLen := maxAlign(int64(nrows+1) * 4)
	if int64(len(region)) < offsetsLen {
		return ErrShortBuffer
	}
	payload := region[offsetsLen:]

	var cursor int64
	for i := int32(0); i < nrows; i++ {
		putOffset(region, i, cursor)
		if !validBit(arr.Validity, i) {
			continue
		}
		row, ok := sourceRow(arr, i)
		if !ok || len(row) < minWKBPointLen {
			// Malformed or short payload is treated as null: offset
			// written, no payload (spec §4.D failure modes).
			continue
		}
		if cursor+geometryHeaderSize > int64(len(payload)) {
			return ErrAllocation
		}
		x, y, z := readWKBPoint(row)
		writeGeometryHeader(payload[cursor:cursor+geometryHeaderSize], srid, x, y, z)
		cursor += geometryHeaderSize
	}
	putOffset(region, nrows, cursor)
	return nil
}

func putOffset(region []byte, i int32, v int64) {
	pos := int64(i) * 4
	region[pos] = byte(v)
	region[pos+1] = byte(v >> 8)
	region[pos+2] = byte(v >> 16)
	region[pos+3] = byte(v >> 24)
}

func validBit(validity []uint64, i int32) bool {
	if validity == nil {
		return true
	}
	word := int(i) / 64
	if word >= len(validity) {
		return true
	}
	return validity[word]&(1<<(uint(i)%64)) != 0
}

// sourceRow slices the i'th variable-width source record out of the
// array's offsets/payload pair.
func sourceRow(arr Array, i int32) ([]byte, bool) {
	if arr.Offsets == nil || int(i)+1 >= len(arr.Offsets) {
		return nil, false
	}
	start, end := arr.Offsets[i], arr.Offsets[i+1]
	if start < 0 || end < start || int(end) > len(arr.Payload) {
		return nil, false
	}
	return arr.Payload[start:end], true
}
