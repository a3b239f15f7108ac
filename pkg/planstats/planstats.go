// Package planstats adapts pkg/plan/analyzer.go's bottleneck-detection
// shape to the logical plan: it counts node kinds and flags structurally
// suspicious shapes (a join with no predicate, a filter sitting directly
// on a scan) without ever estimating cost or cardinality — there is no
// cost-based optimizer here, so nothing here changes a planning decision.
package planstats

import "github.com/chahine-labs/relquery/pkg/planner"

// Stats summarizes the shape of a logical plan.
type Stats struct {
	ScanNodes   int
	FilterNodes int
	JoinNodes   int
	MaxDepth    int
	Issues      []Issue
}

// Issue is one advisory finding about the plan's shape.
type Issue struct {
	Description string
	Severity    string // INFO, WARNING
}

// Analyze walks node and reports Stats. It never mutates node and never
// feeds back into planning.
func Analyze(node planner.PlanNode) Stats {
	var s Stats
	walk(node, &s, 1, false)
	return s
}

func walk(node planner.PlanNode, s *Stats, depth int, parentIsScan bool) {
	if node == nil {
		return
	}
	if depth > s.MaxDepth {
		s.MaxDepth = depth
	}

	switch n := node.(type) {
	case *planner.ScanNode:
		s.ScanNodes++
	case *planner.FilterNode:
		s.FilterNodes++
		if isScan(n.Input) {
			s.Issues = append(s.Issues, Issue{
				Description: "filter applied directly over a scan with no intervening projection",
				Severity:    "INFO",
			})
		}
		walk(n.Input, s, depth+1, isScan(n.Input))
	case *planner.JoinNode:
		s.JoinNodes++
		if n.Predicate == nil {
			s.Issues = append(s.Issues, Issue{
				Description: n.JoinType + " join has no predicate: result is a cartesian product",
				Severity:    "WARNING",
			})
		}
		walk(n.Left, s, depth+1, isScan(n.Left))
		walk(n.Right, s, depth+1, isScan(n.Right))
	case *planner.ProjectionNode:
		walk(n.Input, s, depth+1, isScan(n.Input))
	case *planner.SortNode:
		walk(n.Input, s, depth+1, isScan(n.Input))
	case *planner.AggregationNode:
		walk(n.Input, s, depth+1, isScan(n.Input))
	case *planner.LimitNode:
		walk(n.Input, s, depth+1, isScan(n.Input))
	}
}

func isScan(node planner.PlanNode) bool {
	_, ok := node.(*planner.ScanNode)
	return ok
}
