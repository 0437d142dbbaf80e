package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscover_AllFiveSymbolsResolveEnablesRuntime(t *testing.T) {
	rt := enabledRuntime(t, fullCapability(map[int64]int32{1: 1}, map[int32]float64{1: 1.0}))
	assert.True(t, rt.Enabled())
	assert.True(t, rt.Capability().Resolved())
	assert.True(t, rt.HostDetected())
}

func TestDiscover_MissingHostSentinelDisablesEvenWithAllFourResolved(t *testing.T) {
	rt := NewRuntime(NewConfig())
	lookup := MapSymbolLookup{
		SymbolSubmit:      func(a, b []byte) int32 { return 0 },
		SymbolFuncOpcode:  func(fn int64) int32 { return 1 },
		SymbolOpcodeCost:  func(op int32) float64 { return 1.0 },
		SymbolParallelism: func() int32 { return 1 },
		// SymbolHostLoaded deliberately absent.
	}
	rt.Discover(lookup)
	assert.False(t, rt.Enabled())
	assert.False(t, rt.HostDetected())
}

func TestDiscover_WrongSymbolTypeIsTreatedAsUnresolved(t *testing.T) {
	rt := NewRuntime(NewConfig())
	lookup := MapSymbolLookup{
		SymbolSubmit:      "not a function", // wrong type
		SymbolFuncOpcode:  func(fn int64) int32 { return 1 },
		SymbolOpcodeCost:  func(op int32) float64 { return 1.0 },
		SymbolParallelism: func() int32 { return 1 },
		SymbolHostLoaded:  struct{}{},
	}
	rt.Discover(lookup)
	assert.False(t, rt.Enabled())
	assert.Nil(t, rt.Capability().Submit)
}

func TestDiscover_IsIdempotentAfterFirstCall(t *testing.T) {
	rt := NewRuntime(NewConfig())
	rt.Discover(MapSymbolLookup{}) // first call: disabled
	assert.False(t, rt.Enabled())

	// A second call with a fully-resolving lookup must have no effect;
	// Discover runs its resolution exactly once (spec §4.A, §9).
	rt.Discover(MapSymbolLookup{
		SymbolSubmit:      func(a, b []byte) int32 { return 0 },
		SymbolFuncOpcode:  func(fn int64) int32 { return 1 },
		SymbolOpcodeCost:  func(op int32) float64 { return 1.0 },
		SymbolParallelism: func() int32 { return 1 },
		SymbolHostLoaded:  struct{}{},
	})
	assert.False(t, rt.Enabled())
}
