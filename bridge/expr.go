package bridge

// Expr is a node of the expression tree fed to the eligibility analyzer and
// cost model (spec §3). The tree is a closed set of four concrete node
// kinds; any other implementation is ineligible by construction.
type Expr interface {
	isExpr()
}

// ConstExpr is a literal value leaf. Always eligible.
type ConstExpr struct {
	// Value is opaque to the bridge; it never inspects or evaluates it.
	Value any
}

func (ConstExpr) isExpr() {}

// ColumnRefExpr is a reference to a source column by attribute index.
// Always eligible.
type ColumnRefExpr struct {
	AttrIndex int
}

func (ColumnRefExpr) isExpr() {}

// FuncExpr is a function or operator application. FuncID is the stable,
// opaque function identity the opcode registry translates to an opcode.
type FuncExpr struct {
	FuncID int64
	Args   []Expr
}

func (FuncExpr) isExpr() {}

// AggExpr is an aggregate application. The aggregate identity itself is
// never checked against the registry: the bridge assumes the aggregation
// engine finalizes the aggregate on CPU after the accelerator computes
// per-row argument values (spec §4.B).
type AggExpr struct {
	AggID  int64
	Args   []Expr
	Filter Expr // nil when the aggregate has no FILTER clause
}

func (AggExpr) isExpr() {}
