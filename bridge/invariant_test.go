package bridge

import (
	"context"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/irongatelabs/kds-bridge/bridge/kds"
)

// cpuSumPolicy is a CPU GroupingPolicy that actually computes the sum
// aggregate over a single int32 column, giving TestWrap_Accelerated...
// a genuine CPU-path reference to compare the accelerated path against.
type cpuSumPolicy struct{}

func (cpuSumPolicy) ProcessBatch(ctx context.Context, arrays []kds.Array, descs []kds.ColumnDesc, nrows int32) (PartialAggregate, error) {
	var sum float64
	data := arrays[0].Data
	for i := int32(0); i < nrows; i++ {
		sum += float64(int32(binary.LittleEndian.Uint32(data[i*4 : i*4+4])))
	}
	return PartialAggregate{Values: []float64{sum}, Nulls: []bool{false}}, nil
}

func alignedValidityBytes(nrows uint32) int64 {
	words := (int64(nrows) + 63) / 64
	bytes := words * 8
	if rem := bytes % 16; rem != 0 {
		bytes += 16 - rem
	}
	return bytes
}

func mustInt32Bytes(vs ...int32) []byte {
	buf := make([]byte, 4*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], uint32(v))
	}
	return buf
}

// Invariant 1: an accelerated result must agree with the CPU-computed
// result within max(1e-10*|cpu|, 1e-15) (spec §8). The fake Submit below
// independently parses the same KDS buffer an out-of-process accelerator
// would receive and computes the identical sum, so this drives the real
// Encode output end to end rather than comparing against a hand-picked
// expected value.
func TestWrap_AcceleratedResultMatchesCPUWithinTolerance(t *testing.T) {
	cap := fullCapability(map[int64]int32{42: 1}, map[int32]float64{1: 100000.0})
	cap.Submit = func(kdsBuf, resultBuf []byte) int32 {
		decoded, err := kds.Verify(kdsBuf)
		if err != nil {
			return -1
		}
		col := kdsBuf[decoded.ColumnOffsets[0]:]
		dataRegion := col[alignedValidityBytes(decoded.ActualRows):]

		var sum float64
		for i := uint32(0); i < decoded.ActualRows; i++ {
			sum += float64(int32(binary.LittleEndian.Uint32(dataRegion[i*4 : i*4+4])))
		}
		binary.LittleEndian.PutUint64(resultBuf[0:8], math.Float64bits(sum))
		resultBuf[8] = 0
		return 0
	}
	rt := enabledRuntime(t, cap)
	rt.Config().SetTunables(0.001, 1, 0)

	cpu := cpuSumPolicy{}
	wrapped := Wrap(cpu, rt, eligibleExprs(), 1, 64)

	arrays := []kds.Array{{Data: mustInt32Bytes(10, 20, 30, 40)}}
	descs := []kds.ColumnDesc{{Type: kds.Int32, AttrIndex: 0}}
	nrows := int32(4)

	wantResult, err := cpu.ProcessBatch(context.Background(), arrays, descs, nrows)
	require.NoError(t, err)

	gotResult, err := wrapped.ProcessBatch(context.Background(), arrays, descs, nrows)
	require.NoError(t, err)
	require.Len(t, gotResult.Values, len(wantResult.Values))

	for i, want := range wantResult.Values {
		tol := math.Max(1e-10*math.Abs(want), 1e-15)
		assert.True(t, floats.EqualWithinAbsOrRel(gotResult.Values[i], want, tol, tol),
			"accelerated=%v cpu=%v tol=%v", gotResult.Values[i], want, tol)
	}
	assert.Equal(t, wantResult.Nulls, gotResult.Nulls)
}
