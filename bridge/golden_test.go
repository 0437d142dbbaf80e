package bridge

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/irongatelabs/kds-bridge/bridge/internal/testutil"
	"github.com/irongatelabs/kds-bridge/bridge/kds"
)

// TestDecode_GoldenResultFixtures hand-builds the result buffer each
// golden fixture's Result section describes, decodes it through
// kds.Decode, and checks the decoded values and null flags against the
// fixture's expectations — the dispatcher-level half of the golden
// fixture file, complementing bridge/kds's encode-side coverage.
func TestDecode_GoldenResultFixtures(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)
	require.NotEmpty(t, dataset.Cases)

	for _, c := range dataset.Cases {
		t.Run(c.Name, func(t *testing.T) {
			nAggs := c.Result.NAggs
			buf := make([]byte, nAggs*(8+1))
			for i := 0; i < nAggs; i++ {
				binary.LittleEndian.PutUint64(buf[i*8:i*8+8], math.Float64bits(c.Result.Values[i]))
			}
			flagsOffset := nAggs * 8
			for i, null := range c.Result.Nulls {
				if null {
					buf[flagsOffset+i] = 1
				}
			}

			values, nulls := kds.Decode(buf, nAggs)
			require.Equal(t, c.Result.Nulls, nulls)
			for i, want := range c.Result.Values {
				testutil.AssertFloat64Equal(t, c.Name, want, values[i], 1e-12)
			}
		})
	}
}
