package bridge

// Capability is the set of four accelerator entry points resolved by late
// binding (spec §6). The bridge is a total no-op unless all four are
// non-nil; Resolved reports that condition in one place so every
// component guards on it the same way.
type Capability struct {
	// Submit executes one KDS batch and writes into resultBuf, returning 0
	// on success and a nonzero accelerator-defined code otherwise.
	Submit func(kdsBuf, resultBuf []byte) int32

	// FuncOpcode translates a function identity to an opcode; 0 means
	// unsupported, a positive value is a supported opcode.
	FuncOpcode func(funcID int64) int32

	// OpcodeCost returns the non-negative per-row cost weight for an opcode.
	OpcodeCost func(opcode int32) float64

	// Parallelism returns the accelerator's effective parallel width.
	Parallelism func() int32
}

// Resolved reports whether every entry point is present.
func (c Capability) Resolved() bool {
	return c.Submit != nil && c.FuncOpcode != nil && c.OpcodeCost != nil && c.Parallelism != nil
}
