package bridge

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/irongatelabs/kds-bridge/bridge/kds"
)

// Outcome is the result of one Dispatch call (spec §4.E): OK with a zero
// Code, or a fallback carrying the accelerator's nonzero return code. Err
// wraps one of the spec §7 error kinds via %w, so callers that care can
// test it with errors.Is; ProcessBatch itself only logs Err before
// falling back, since a fallback is expected behavior, not a failure to
// report upward.
type Outcome struct {
	OK   bool
	Code int32
	Err  error
}

// Dispatch invokes the accelerator's submit entry point over kdsBuf,
// writing into resultBuf. A disabled runtime or nil Submit entry point
// is an immediate, silent fallback wrapping ErrUnavailable (spec §7); any
// nonzero return code is a fallback wrapping ErrDispatch, logged at debug
// level naming the code.
func Dispatch(rt *Runtime, kdsBuf, resultBuf []byte) Outcome {
	if !rt.Enabled() {
		return Outcome{Err: fmt.Errorf("bridge: runtime disabled: %w", ErrUnavailable)}
	}
	cap := rt.Capability()
	if cap.Submit == nil {
		return Outcome{Err: fmt.Errorf("bridge: no submit entry point: %w", ErrUnavailable)}
	}
	code := cap.Submit(kdsBuf, resultBuf)
	if code != 0 {
		err := fmt.Errorf("bridge: accelerator returned code %d: %w", code, ErrDispatch)
		logrus.Debugf("bridge: dispatch failed: %v", err)
		return Outcome{OK: false, Code: code, Err: err}
	}
	return Outcome{OK: true}
}

// PartialAggregate is the decoded per-group result shape GroupingPolicy
// implementations exchange, matching what the accelerator and the CPU
// grouping policy both ultimately produce (spec §4.D reverse operation).
type PartialAggregate struct {
	Values []float64
	Nulls  []bool
}

// GroupingPolicy is the minimal interface the bridge needs from the
// aggregation engine's grouping policy, declared exactly at the width
// Wrap consumes and no wider (the full host interface is out of scope).
type GroupingPolicy interface {
	ProcessBatch(ctx context.Context, arrays []kds.Array, descs []kds.ColumnDesc, nrows int32) (PartialAggregate, error)
}

// acceleratedPolicy is the policy wrapper installed by Wrap, implementing
// the seven-step protocol of spec §4.E.
type acceleratedPolicy struct {
	cpu GroupingPolicy
	rt  *Runtime

	exprs    []Expr
	nAggs    int
	rowWidth int64
}

// Wrap installs the accelerator policy wrapper around cpu. exprs is the
// query's fixed aggregate expression tree, nAggs the number of aggregates
// the result buffer carries, and rowWidth the per-row byte width used by
// the cost model; all three are constant for the lifetime of one query
// plan, unlike the per-batch arrays Wrap's ProcessBatch receives.
func Wrap(cpu GroupingPolicy, rt *Runtime, exprs []Expr, nAggs int, rowWidth int64) GroupingPolicy {
	return &acceleratedPolicy{cpu: cpu, rt: rt, exprs: exprs, nAggs: nAggs, rowWidth: rowWidth}
}

func (p *acceleratedPolicy) ProcessBatch(ctx context.Context, arrays []kds.Array, descs []kds.ColumnDesc, nrows int32) (PartialAggregate, error) {
	// (1) eligibility; (2) delegate if ineligible.
	if !Check(p.rt, p.exprs) {
		logrus.Debugf("bridge: %v", fmt.Errorf("expression tree ineligible: %w", ErrIneligible))
		return p.cpu.ProcessBatch(ctx, arrays, descs, nrows)
	}

	// (3) cost model; delegate if invalid or CPU-preferred.
	est := Estimate(p.rt, p.exprs, int64(nrows), p.rowWidth)
	if !est.Valid {
		logrus.Debugf("bridge: %v", fmt.Errorf("cost estimate unavailable: %w", ErrUnavailable))
		return p.cpu.ProcessBatch(ctx, arrays, descs, nrows)
	}
	if !est.Preferred {
		logrus.Debugf("bridge: %v", fmt.Errorf("cost model rejected acceleration: %w", ErrCostedOut))
		return p.cpu.ProcessBatch(ctx, arrays, descs, nrows)
	}

	if err := ctx.Err(); err != nil {
		return PartialAggregate{}, err
	}

	// (4) encode.
	buf, err := kds.Encode(arrays, descs, nrows)
	if err != nil {
		wrapped := fmt.Errorf("bridge: encoding failed: %w: %w", ErrEncoding, err)
		logrus.Debugf("bridge: %v", wrapped)
		return p.cpu.ProcessBatch(ctx, arrays, descs, nrows)
	}

	resultBuf := make([]byte, p.nAggs*(8+1))

	// (5) dispatch.
	start := time.Now()
	outcome := Dispatch(p.rt, buf.Bytes, resultBuf)
	elapsed := time.Since(start)

	// (7) on fallback, delegate the unmodified batch.
	if !outcome.OK {
		if outcome.Err != nil {
			logrus.Debugf("bridge: dispatch fallback: %v", outcome.Err)
		}
		return p.cpu.ProcessBatch(ctx, arrays, descs, nrows)
	}

	p.rt.Calibration().Calibrate(int64(len(buf.Bytes)+len(resultBuf)), float64(elapsed.Microseconds()), est.Compute)

	// (6) on ok, decode into partial-aggregate form.
	values, nulls := kds.Decode(resultBuf, p.nAggs)
	return PartialAggregate{Values: values, Nulls: nulls}, nil
}
