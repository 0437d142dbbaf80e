package bridge

// ExplainLabel returns the query-plan display label for a path decision
// (spec §4.E EXPLAIN-time annotation). Advisory only: nothing in Dispatch
// or Wrap consults this, and it must not influence execution.
func ExplainLabel(eligible bool) string {
	if eligible {
		return "accelerated"
	}
	return ""
}
