package bridge

import "github.com/sirupsen/logrus"

// Check decides batch eligibility: the conjunction over every aggregate
// expression in exprs (spec §4.B). An empty expression list is ineligible.
// If the Runtime is disabled or the registry lookup function pointer is
// absent, the result is always ineligible. Check is pure and read-only; it
// produces only debug-level diagnostics on rejection, and nothing at all
// when it rejects because the bridge is simply unavailable.
func Check(rt *Runtime, exprs []Expr) bool {
	if !rt.Enabled() {
		return false
	}
	cap := rt.Capability()
	if cap.FuncOpcode == nil {
		return false
	}
	if len(exprs) == 0 {
		return false
	}
	for _, e := range exprs {
		if !checkNode(cap, e) {
			return false
		}
	}
	return true
}

func checkNode(cap Capability, e Expr) bool {
	switch n := e.(type) {
	case ConstExpr:
		return true
	case ColumnRefExpr:
		return true
	case FuncExpr:
		opcode := cap.FuncOpcode(n.FuncID)
		if opcode <= 0 {
			logrus.Debugf("bridge: ineligible, function %d has no registered opcode", n.FuncID)
			return false
		}
		for _, arg := range n.Args {
			if !checkNode(cap, arg) {
				return false
			}
		}
		return true
	case AggExpr:
		for _, arg := range n.Args {
			if !checkNode(cap, arg) {
				return false
			}
		}
		if n.Filter != nil && !checkNode(cap, n.Filter) {
			return false
		}
		return true
	default:
		logrus.Debugf("bridge: ineligible, unrecognized expression node %T", e)
		return false
	}
}
