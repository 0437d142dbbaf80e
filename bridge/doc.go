// Package bridge decides, per incoming aggregation batch, whether an
// accelerator is cheaper than the CPU path, transcodes eligible batches
// into the accelerator's binary layout, dispatches them, and falls back to
// CPU on any failure.
//
// # Reading Guide
//
// Start with these three files to understand the bridge:
//   - discovery.go: Runtime, the process-wide capability record and enabled flag
//   - eligibility.go: Check, the recursive eligibility decision over expression trees
//   - dispatcher.go: Wrap, the policy wrapper that ties eligibility, cost, encoding
//     and dispatch together with CPU fallback on every non-ok path
//
// # Architecture
//
// bridge defines the expression-tree data model, the cost model, and the
// dispatch/fallback protocol. The byte-exact Arrow->KDS binary layout lives
// in the sibling package bridge/kds, since it is a self-contained external
// ABI concern with no dependency on expression trees or cost.
//
// # Key Types
//
//   - Runtime: the single process-wide capability record (§4.A, §9)
//   - Expr / ConstExpr / ColumnRefExpr / FuncExpr / AggExpr: the expression tree (§3)
//   - Registry-shaped function pointers live on Capability, resolved by Runtime.Discover
//   - GroupingPolicy: the minimal surface the bridge wraps (§4.E)
package bridge
