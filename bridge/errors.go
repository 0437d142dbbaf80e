package bridge

import "errors"

// The five error kinds of spec §7. Unavailable and CostedOut are silent by
// design (no log above debug anywhere in their path); Ineligible, Encoding
// and Dispatch failures log at logrus.DebugLevel only, per §7's
// propagation policy, before the caller falls back to CPU.
var (
	ErrUnavailable = errors.New("bridge: accelerator unavailable")
	ErrIneligible  = errors.New("bridge: batch ineligible for acceleration")
	ErrCostedOut   = errors.New("bridge: cost model rejected acceleration")
	ErrEncoding    = errors.New("bridge: KDS encoding failed")
	ErrDispatch    = errors.New("bridge: accelerator dispatch failed")
)
