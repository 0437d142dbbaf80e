package bridge

// Diagnostics is the record returned by the diagnostic query of spec §6:
// a snapshot of whether the bridge is active and of the current tunable
// settings. The tunable fields are the raw configured values (zero when
// unset), not the calibrated or default values Estimate falls back to.
type Diagnostics struct {
	Enabled             bool    `yaml:"enabled"`
	AcceleratorDetected bool    `yaml:"accelerator_detected"`
	HostDetected        bool    `yaml:"host_detected"`
	TransferCostPerByte float64 `yaml:"transfer_cost_per_byte"`
	LaunchOverhead      float64 `yaml:"launch_overhead"`
	MinBatchRows        int64   `yaml:"min_batch_rows"`

	// MeanTransferMicrosPerByte and TransferMicrosPerByteVariance summarize
	// the observed calibration samples, independent of the single frozen
	// TransferCostPerByte scalar above; both are zero until the first
	// successful dispatch calibrates. Diagnostic-only, per
	// CalibrationState.MeanTransferMicrosPerByte.
	MeanTransferMicrosPerByte     float64 `yaml:"mean_transfer_micros_per_byte"`
	TransferMicrosPerByteVariance float64 `yaml:"transfer_micros_per_byte_variance"`
}

// Diagnose builds the Diagnostics record for rt.
func Diagnose(rt *Runtime) Diagnostics {
	transferCostPerByte, launchOverhead, minBatchRows := rt.Config().Tunables()
	mean, variance := rt.Calibration().MeanTransferMicrosPerByte()
	return Diagnostics{
		Enabled:                       rt.Enabled(),
		AcceleratorDetected:           rt.Capability().Resolved(),
		HostDetected:                  rt.HostDetected(),
		TransferCostPerByte:           transferCostPerByte,
		LaunchOverhead:                launchOverhead,
		MinBatchRows:                  minBatchRows,
		MeanTransferMicrosPerByte:     mean,
		TransferMicrosPerByteVariance: variance,
	}
}
