package kds

// Verify is a read-only decoder built from the layout invariants of
// spec §3 alone, independent of Encode's internals. It is used by
// round-trip tests and the kdsdiag inspect subcommand, never by the
// production encode/dispatch path.
func Verify(buf []byte) (*Decoded, error) {
	totalLength, formatTag, ncols, capacityRows, actualRows, ok := readHeader(buf)
	if !ok {
		return nil, ErrShortBuffer
	}
	if formatTag != formatTagColumnar {
		return nil, ErrBadFormatTag
	}
	if int64(totalLength) > int64(len(buf)) {
		return nil, ErrShortBuffer
	}

	offsets := make([]uint32, ncols)
	var prev int64
	for i := 0; i < int(ncols); i++ {
		off, ok := readColumnOffset(buf, i)
		if !ok {
			return nil, ErrShortBuffer
		}
		if off < prev || off > int64(totalLength) {
			return nil, ErrShortBuffer
		}
		offsets[i] = uint32(off)
		prev = off
	}

	return &Decoded{
		TotalLength:   totalLength,
		FormatTag:     formatTag,
		ColumnCount:   ncols,
		CapacityRows:  capacityRows,
		ActualRows:    actualRows,
		ColumnOffsets: offsets,
	}, nil
}
