package bridge

import "sync"

// Symbol is an opaque resolved symbol value, asserted to a concrete
// function type by Discover. It is the same shape plugin.Plugin.Lookup
// returns, so the production SymbolLookup below is a thin wrapper over it.
type Symbol any

// SymbolLookup resolves a named symbol from the process's flat symbol
// table. Production code satisfies this with PluginSymbolLookup; tests use
// a map-based fake so bridge's own test suite never needs a real compiled
// accelerator plugin.
type SymbolLookup interface {
	Lookup(name string) (Symbol, bool)
}

// MapSymbolLookup is a fake SymbolLookup backed by a plain map, used by
// tests, and (empty) by kdsdiag diagnose when no accelerator plugin could
// be opened.
type MapSymbolLookup map[string]Symbol

func (m MapSymbolLookup) Lookup(name string) (Symbol, bool) {
	sym, ok := m[name]
	return sym, ok
}

// The four accelerator entry point names and the host sentinel, resolved
// from the process symbol table at init (spec §4.A, §6).
const (
	SymbolSubmit      = "kds_accel_submit"
	SymbolFuncOpcode  = "kds_accel_func_opcode"
	SymbolOpcodeCost  = "kds_accel_opcode_cost"
	SymbolParallelism = "kds_accel_parallelism"
	SymbolHostLoaded  = "tsdb_aggregation_engine_loaded"
)

// Runtime is the single process-wide capability record described in spec
// §4.A, §5, §9: the resolved Capability, the monomorphic enabled flag, the
// tunables, and the calibration state. The host creates exactly one
// Runtime at process init and shares it with every worker for the process
// lifetime; Discover runs its resolution exactly once regardless of how
// many times it is called, matching "once false at init, stays false;
// once true, the four function pointers are non-null for the process
// lifetime" (spec §3 invariants).
type Runtime struct {
	once sync.Once

	cap          Capability
	enabled      bool
	hostDetected bool

	cfg   *Config
	calib *CalibrationState
}

// NewRuntime creates a Runtime around the given tunables. If cfg is nil, a
// fresh Config with all-zero (calibrate-or-default) tunables is used.
func NewRuntime(cfg *Config) *Runtime {
	if cfg == nil {
		cfg = NewConfig()
	}
	return &Runtime{cfg: cfg, calib: NewCalibrationState()}
}

// Discover resolves the four accelerator entry points and the host
// sentinel via lookup, setting the enabled flag iff all five resolve.
// Safe to call more than once; only the first call has any effect.
func (r *Runtime) Discover(lookup SymbolLookup) {
	r.once.Do(func() {
		var cap Capability

		if sym, ok := lookup.Lookup(SymbolSubmit); ok {
			if fn, ok := sym.(func([]byte, []byte) int32); ok {
				cap.Submit = fn
			}
		}
		if sym, ok := lookup.Lookup(SymbolFuncOpcode); ok {
			if fn, ok := sym.(func(int64) int32); ok {
				cap.FuncOpcode = fn
			}
		}
		if sym, ok := lookup.Lookup(SymbolOpcodeCost); ok {
			if fn, ok := sym.(func(int32) float64); ok {
				cap.OpcodeCost = fn
			}
		}
		if sym, ok := lookup.Lookup(SymbolParallelism); ok {
			if fn, ok := sym.(func() int32); ok {
				cap.Parallelism = fn
			}
		}
		_, hostOK := lookup.Lookup(SymbolHostLoaded)

		r.cap = cap
		r.hostDetected = hostOK
		r.enabled = cap.Resolved() && hostOK
	})
}

// Enabled reports the monomorphic enabled flag (spec §3, §4.A). Every
// public operation of B, C, D, E must guard on this before doing anything
// else — no tunable access, no allocation, no per-row overhead when false.
func (r *Runtime) Enabled() bool { return r.enabled }

// Capability returns the resolved entry points. Zero-valued (all nil)
// until Discover has run, or if any entry point failed to resolve.
func (r *Runtime) Capability() Capability { return r.cap }

// HostDetected reports whether the aggregation-engine sentinel symbol was
// found, independent of accelerator resolution (spec §6 diagnostic query).
func (r *Runtime) HostDetected() bool { return r.hostDetected }

// Config returns the tunables shared by this Runtime.
func (r *Runtime) Config() *Config { return r.cfg }

// Calibration returns the process-wide calibration state shared by this
// Runtime's cost estimates.
func (r *Runtime) Calibration() *CalibrationState { return r.calib }
