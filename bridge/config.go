package bridge

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config groups the three host-configurable tunables of spec §4.A, §6.
// Zero for either cost field means "use calibration or a conservative
// default", and zero min batch rows means "no row floor, defer to the cost
// model"; that convention is interpreted by Estimate, not by Config. Reads
// and writes are synchronized because the real host configuration
// subsystem (out of scope per spec §1) allows live updates from any
// worker at any time; Config stands in for that subsystem's atomicity
// guarantee.
type Config struct {
	mu sync.RWMutex

	transferCostPerByte float64
	launchOverhead      float64
	minBatchRows        int64
}

// NewConfig returns a Config with all tunables at their zero-value
// (calibrate-or-default) setting.
func NewConfig() *Config {
	return &Config{}
}

// Tunables returns the current tunable values.
func (c *Config) Tunables() (transferCostPerByte, launchOverhead float64, minBatchRows int64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.transferCostPerByte, c.launchOverhead, c.minBatchRows
}

// SetTunables live-updates the tunables, mirroring the host configuration
// system's ability to change them at any time (spec §5).
func (c *Config) SetTunables(transferCostPerByte, launchOverhead float64, minBatchRows int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transferCostPerByte = transferCostPerByte
	c.launchOverhead = launchOverhead
	c.minBatchRows = minBatchRows
}

// tunableDefaults is the on-disk shape of a tunable defaults file, loaded
// the way cmd/coefficients_config.go loads its YAML config in the teacher.
type tunableDefaults struct {
	TransferCostPerByte float64 `yaml:"transfer_cost_per_byte"`
	LaunchOverhead      float64 `yaml:"launch_overhead"`
	MinBatchRows        int64   `yaml:"min_batch_rows"`
}

// LoadConfig reads tunable defaults from a YAML file. A missing or empty
// file is not an error: NewConfig()'s zero defaults apply instead.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewConfig(), nil
		}
		return nil, fmt.Errorf("failed to read tunables file %s: %w", path, err)
	}
	var d tunableDefaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse tunables file %s: %w", path, err)
	}
	cfg := NewConfig()
	cfg.SetTunables(d.TransferCostPerByte, d.LaunchOverhead, d.MinBatchRows)
	return cfg, nil
}
