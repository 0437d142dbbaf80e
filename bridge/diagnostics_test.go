package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnose_ReportsDisabledRuntimeZeroValues(t *testing.T) {
	rt := NewRuntime(NewConfig())
	rt.Discover(MapSymbolLookup{})

	diag := Diagnose(rt)
	assert.False(t, diag.Enabled)
	assert.False(t, diag.AcceleratorDetected)
	assert.Zero(t, diag.MeanTransferMicrosPerByte)
	assert.Zero(t, diag.TransferMicrosPerByteVariance)
}

// Diagnose must surface the same calibration-sample statistics
// CalibrationState.MeanTransferMicrosPerByte computes, not just the two
// frozen scalars.
func TestDiagnose_SurfacesCalibrationSampleStatistics(t *testing.T) {
	rt := enabledRuntime(t, fullCapability(map[int64]int32{1: 1}, map[int32]float64{1: 1.0}))
	rt.Calibration().Calibrate(1000, 200.0, 10.0)
	rt.Calibration().Calibrate(1000, 400.0, 10.0)

	wantMean, wantVariance := rt.Calibration().MeanTransferMicrosPerByte()

	diag := Diagnose(rt)
	assert.Equal(t, wantMean, diag.MeanTransferMicrosPerByte)
	assert.Equal(t, wantVariance, diag.TransferMicrosPerByteVariance)
	assert.Greater(t, diag.TransferMicrosPerByteVariance, 0.0)
}
