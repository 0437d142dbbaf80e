package kds

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wkbPoint(x, y, z float64) []byte {
	rec := make([]byte, minWKBPointLen)
	rec[0] = 0x01 // byte order, unused by the reader beyond being skipped
	binary.LittleEndian.PutUint32(rec[1:5], 0)
	binary.LittleEndian.PutUint64(rec[5:13], math.Float64bits(x))
	binary.LittleEndian.PutUint64(rec[13:21], math.Float64bits(y))
	binary.LittleEndian.PutUint64(rec[21:29], math.Float64bits(z))
	return rec
}

// S2: a 3-row geometry column with no validity buffer.
func TestEncode_ScenarioS2_GeometryPointZ(t *testing.T) {
	points := [][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	var payload []byte
	offsets := make([]int32, 0, 4)
	for _, p := range points {
		offsets = append(offsets, int32(len(payload)))
		payload = append(payload, wkbPoint(p[0], p[1], p[2])...)
	}
	offsets = append(offsets, int32(len(payload)))

	arr := Array{Offsets: offsets, Payload: payload}
	descs := []ColumnDesc{{Type: GeometryPointZ, AttrIndex: 0, SRID: 4326}}

	buf, err := Encode([]Array{arr}, descs, 3)
	require.NoError(t, err)

	col := buf.Bytes[buf.ColumnOffsets[0]:]
	validity := col[:validityBytes(3)]
	assert.Equal(t, byte(0b00000111), validity[0])

	geomRegion := col[validityBytes(3):]
	offsetsLen := maxAlign(int64(3+1) * 4)
	gotOffsets := make([]int32, 4)
	for i := range gotOffsets {
		gotOffsets[i] = int32(binary.LittleEndian.Uint32(geomRegion[i*4 : i*4+4]))
	}
	assert.Equal(t, []int32{0, 48, 96, 144}, gotOffsets)

	payloadRegion := geomRegion[offsetsLen:]
	for i, p := range points {
		hdr := payloadRegion[i*48 : (i+1)*48]
		assert.Equal(t, geometryTypeCodePoint, binary.LittleEndian.Uint32(hdr[0:4]))
		assert.Equal(t, geometryFlagHasZ, binary.LittleEndian.Uint16(hdr[4:6]))
		assert.Equal(t, uint32(4326), binary.LittleEndian.Uint32(hdr[8:12]))
		assert.Equal(t, geometryItemCount, binary.LittleEndian.Uint32(hdr[12:16]))
		assert.Equal(t, geometryRawPayload, binary.LittleEndian.Uint32(hdr[16:20]))
		assert.Equal(t, p[0], math.Float64frombits(binary.LittleEndian.Uint64(hdr[20:28])))
		assert.Equal(t, p[1], math.Float64frombits(binary.LittleEndian.Uint64(hdr[28:36])))
		assert.Equal(t, p[2], math.Float64frombits(binary.LittleEndian.Uint64(hdr[36:44])))
	}
}

// Invariant 3: round trip through the independent Verify decoder.
func TestEncode_RoundTripsThroughVerify(t *testing.T) {
	descs := []ColumnDesc{
		{Type: Int32, AttrIndex: 0},
		{Type: Float64, AttrIndex: 1},
	}
	data0 := make([]byte, 4*5)
	for i := range 5 {
		binary.LittleEndian.PutUint32(data0[i*4:i*4+4], uint32(i*10))
	}
	data1 := make([]byte, 8*5)
	for i := range 5 {
		binary.LittleEndian.PutUint64(data1[i*8:i*8+8], math.Float64bits(float64(i)*1.5))
	}
	arrays := []Array{{Data: data0}, {Data: data1}}

	buf, err := Encode(arrays, descs, 5)
	require.NoError(t, err)

	decoded, err := Verify(buf.Bytes)
	require.NoError(t, err)
	assert.Equal(t, uint16(2), decoded.ColumnCount)
	assert.EqualValues(t, 5, decoded.CapacityRows)
	assert.EqualValues(t, 5, decoded.ActualRows)
	assert.EqualValues(t, len(buf.Bytes), decoded.TotalLength)

	for i, off := range buf.ColumnOffsets {
		assert.EqualValues(t, off, decoded.ColumnOffsets[i])
	}
}

// Invariant 4: header conformance — monotonic offsets within total length.
func TestEncode_HeaderConformance(t *testing.T) {
	descs := []ColumnDesc{
		{Type: Int16, AttrIndex: 0},
		{Type: Int32, AttrIndex: 1},
		{Type: Float64, AttrIndex: 2},
	}
	arrays := []Array{{}, {}, {}}

	buf, err := Encode(arrays, descs, 10)
	require.NoError(t, err)

	decoded, err := Verify(buf.Bytes)
	require.NoError(t, err)

	var prev uint32
	for _, off := range decoded.ColumnOffsets {
		assert.GreaterOrEqual(t, off, prev)
		assert.LessOrEqual(t, off, decoded.TotalLength)
		prev = off
	}
	assert.GreaterOrEqual(t, decoded.TotalLength, uint32(headerRegionSize(len(descs))))
}

func TestEncode_NoValidityBufferMeansAllValidWithTrailingMask(t *testing.T) {
	descs := []ColumnDesc{{Type: Int16, AttrIndex: 0}}
	buf, err := Encode([]Array{{}}, descs, 70) // spans two 64-bit words
	require.NoError(t, err)

	col := buf.Bytes[buf.ColumnOffsets[0]:]
	word0 := binary.LittleEndian.Uint64(col[0:8])
	word1 := binary.LittleEndian.Uint64(col[8:16])
	assert.Equal(t, uint64(math.MaxUint64), word0)
	assert.Equal(t, uint64(0b0011_1111), word1) // 70 mod 64 = 6 valid bits
}

func TestDecode_ShortResultBufferMarksAllNull(t *testing.T) {
	values, nulls := Decode([]byte{0, 0, 0}, 2)
	assert.Equal(t, []float64{0, 0}, values)
	assert.Equal(t, []bool{true, true}, nulls)
}

func TestDecode_ValuesThenNullFlags(t *testing.T) {
	buf := make([]byte, 2*9)
	binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(3.25))
	binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(7.5))
	buf[16] = 0 // not null
	buf[17] = 1 // null

	values, nulls := Decode(buf, 2)
	assert.Equal(t, []float64{3.25, 7.5}, values)
	assert.Equal(t, []bool{false, true}, nulls)
}

func TestEncode_ShortGeometryPayloadTreatedAsNull(t *testing.T) {
	arr := Array{
		Offsets: []int32{0, 10}, // shorter than minWKBPointLen
		Payload: make([]byte, 10),
	}
	descs := []ColumnDesc{{Type: GeometryPointZ, AttrIndex: 0}}

	buf, err := Encode([]Array{arr}, descs, 1)
	require.NoError(t, err)

	col := buf.Bytes[buf.ColumnOffsets[0]:]
	geomRegion := col[validityBytes(1):]
	off0 := binary.LittleEndian.Uint32(geomRegion[0:4])
	off1 := binary.LittleEndian.Uint32(geomRegion[4:8])
	assert.Equal(t, uint32(0), off0)
	assert.Equal(t, uint32(0), off1) // no payload written for the malformed row
}
