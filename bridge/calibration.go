package bridge

import (
	"sync"

	"gonum.org/v1/gonum/stat"
)

// calibSampleCap bounds the ring of observed (bytes, elapsed) pairs kept
// purely for the diagnostic-only statistics in MeanTransferMicrosPerByte;
// Estimate never reads this ring, only the two calibrated scalars below.
const calibSampleCap = 32

type calibSample struct {
	bytes         int64
	elapsedMicros float64
}

// CalibrationState is the two-scalar process-wide calibration record of
// spec §3: transfer cost per byte, launch overhead in cost units, and a
// "calibrated" flag. It is written at most once per process, after the
// first successful accelerator dispatch, and read by the cost model on
// every estimate thereafter (spec §4.C, §5).
type CalibrationState struct {
	mu sync.Mutex

	transferCostPerByte float64
	launchOverhead      float64
	calibrated          bool

	samples []calibSample
}

// NewCalibrationState returns a CalibrationState at its zero/false
// initial value.
func NewCalibrationState() *CalibrationState {
	return &CalibrationState{}
}

// CalibrationSnapshot is a read-only copy of CalibrationState, the shape
// Estimate consults.
type CalibrationSnapshot struct {
	TransferCostPerByte float64
	LaunchOverhead      float64
	Calibrated          bool
}

// Snapshot returns the current calibration values.
func (c *CalibrationState) Snapshot() CalibrationSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CalibrationSnapshot{
		TransferCostPerByte: c.transferCostPerByte,
		LaunchOverhead:      c.launchOverhead,
		Calibrated:          c.calibrated,
	}
}

// Calibrate performs the one-time auto-calibration of spec §4.C: it sets
// calibrated_transfer = elapsed/bytes and calibrated_launch =
// max(1.0, elapsed - estimatedCompute), then marks calibration complete.
// The two scalars are monotone: only the first call's observation sticks.
// Every call with positive bytes still records its (bytes, elapsed) pair
// into the diagnostic ring regardless; a call with bytes <= 0 changes
// nothing. estimatedCompute is the compute_cost this same batch's
// Estimate call already produced.
func (c *CalibrationState) Calibrate(bytes int64, elapsedMicros float64, estimatedCompute float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if bytes <= 0 {
		return
	}
	// Every observed dispatch feeds the diagnostic ring, independent of
	// the one-shot scalar write below.
	c.recordSampleLocked(bytes, elapsedMicros)
	if c.calibrated {
		return
	}
	c.transferCostPerByte = elapsedMicros / float64(bytes)
	launch := elapsedMicros - estimatedCompute
	if launch < 1.0 {
		launch = 1.0
	}
	c.launchOverhead = launch
	c.calibrated = true
}

func (c *CalibrationState) recordSampleLocked(bytes int64, elapsedMicros float64) {
	if len(c.samples) >= calibSampleCap {
		c.samples = c.samples[1:]
	}
	c.samples = append(c.samples, calibSample{bytes: bytes, elapsedMicros: elapsedMicros})
}

// MeanTransferMicrosPerByte reports the mean and variance of observed
// per-byte transfer rates across the recorded calibration samples, for
// Diagnose()'s reporting only. Estimate never consults this; it reads
// only Snapshot()'s two scalars, per the exact formula in spec §4.C.
func (c *CalibrationState) MeanTransferMicrosPerByte() (mean, variance float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.samples) == 0 {
		return 0, 0
	}
	rates := make([]float64, len(c.samples))
	for i, s := range c.samples {
		rates[i] = s.elapsedMicros / float64(s.bytes)
	}
	return stat.MeanVariance(rates, nil)
}
