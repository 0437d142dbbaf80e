package bridge

// Conservative defaults used until the corresponding tunable is set
// explicitly or calibration has completed (spec §4.C "effective-value
// resolution"). defaultTransferCostPerByte is deliberately large relative
// to a calibrated value on real hardware, so that before the first
// successful dispatch the cost model favors the CPU path (spec §4.C:
// "default transfer cost favors CPU").
const (
	defaultTransferCostPerByte = 1e-2
	defaultLaunchOverhead      = 50000.0
	defaultParallelism         = 1
)

// CostEstimate is the result of a cost estimation call (spec §4.C).
// CPUReference and Preferred are only meaningful when Valid is true.
type CostEstimate struct {
	Valid bool

	Total    float64
	Transfer float64
	Launch   float64
	Compute  float64

	// CPUReference is nrows * opcode_cost_sum, the CPU-path cost the
	// bridge compares Total against when deciding which path to prefer
	// (spec §4.C scenario S3 names this comparison explicitly).
	CPUReference float64
	// Preferred is Total < CPUReference.
	Preferred bool
}

// Estimate computes the accelerator cost estimate for exprs over a batch
// of nrows rows of rowWidth bytes each, per the formula in spec §4.C.
func Estimate(rt *Runtime, exprs []Expr, nrows int64, rowWidth int64) CostEstimate {
	if !rt.Enabled() {
		return CostEstimate{}
	}
	if nrows <= 0 {
		return CostEstimate{}
	}
	transferCostPerByte, launchOverhead, minBatchRows := rt.Config().Tunables()
	if minBatchRows > 0 && nrows < minBatchRows {
		return CostEstimate{}
	}

	cap := rt.Capability()
	opcodeCostSum := sumOpcodeCost(exprs, cap)
	if opcodeCostSum <= 0 {
		return CostEstimate{}
	}

	snap := rt.Calibration().Snapshot()

	effTransfer := transferCostPerByte
	if effTransfer <= 0 {
		if snap.Calibrated && snap.TransferCostPerByte > 0 {
			effTransfer = snap.TransferCostPerByte
		} else {
			effTransfer = defaultTransferCostPerByte
		}
	}

	effLaunch := launchOverhead
	if effLaunch <= 0 {
		if snap.Calibrated && snap.LaunchOverhead > 0 {
			effLaunch = snap.LaunchOverhead
		} else {
			effLaunch = defaultLaunchOverhead
		}
	}

	parallelism := int64(defaultParallelism)
	if cap.Parallelism != nil {
		if p := cap.Parallelism(); p > 0 {
			parallelism = int64(p)
		}
	}

	transferBytes := float64(nrows) * float64(rowWidth) * 2
	transferCost := transferBytes * effTransfer
	launchCost := effLaunch
	computeCost := float64(nrows) * opcodeCostSum / float64(parallelism)
	total := transferCost + launchCost + computeCost

	cpuReference := float64(nrows) * opcodeCostSum

	return CostEstimate{
		Valid:        true,
		Total:        total,
		Transfer:     transferCost,
		Launch:       launchCost,
		Compute:      computeCost,
		CPUReference: cpuReference,
		Preferred:    total < cpuReference,
	}
}

// sumOpcodeCost is the recursive opcode-cost sum of spec §4.C: constants,
// column refs, and aggregate wrappers contribute zero; function/operator
// applications contribute cost(opcode(fn)); aggregate argument
// expressions are descended into.
func sumOpcodeCost(exprs []Expr, cap Capability) float64 {
	var sum float64
	for _, e := range exprs {
		sum += nodeOpcodeCostSum(e, cap)
	}
	return sum
}

func nodeOpcodeCostSum(e Expr, cap Capability) float64 {
	switch n := e.(type) {
	case ConstExpr, ColumnRefExpr:
		return 0
	case FuncExpr:
		var sum float64
		if opcode := cap.FuncOpcode(n.FuncID); opcode > 0 {
			sum += cap.OpcodeCost(opcode)
		}
		for _, arg := range n.Args {
			sum += nodeOpcodeCostSum(arg, cap)
		}
		return sum
	case AggExpr:
		var sum float64
		for _, arg := range n.Args {
			sum += nodeOpcodeCostSum(arg, cap)
		}
		if n.Filter != nil {
			sum += nodeOpcodeCostSum(n.Filter, cap)
		}
		return sum
	default:
		return 0
	}
}
