// Package explainfmt renders the logical planner.PlanNode tree using the
// teacher's physical plan.PlanNode vocabulary, so `-explain` output keeps
// the same shape a vendor-style EXPLAIN would have without pretending this
// module has a cost-based optimizer behind it. Cost and Rows are always
// nil: there is no execution engine here to have measured either.
package explainfmt

import (
	"github.com/chahine-labs/relquery/pkg/plan"
	"github.com/chahine-labs/relquery/pkg/planner"
)

// Render walks a logical plan and produces the physical-shaped tree
// pkg/plan already knows how to marshal to JSON or print as a table.
func Render(node planner.PlanNode) *plan.PlanNode {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *planner.ScanNode:
		return &plan.PlanNode{
			NodeType:  plan.NodeTypeSeqScan,
			Operation: "Scan",
			Table:     n.TableName,
			Condition: exprString(n.Predicates),
		}
	case *planner.FilterNode:
		return &plan.PlanNode{
			NodeType:  plan.NodeTypeFilter,
			Operation: "Filter",
			Condition: exprString(n.Predicate),
			Children:  []*plan.PlanNode{Render(n.Input)},
		}
	case *planner.JoinNode:
		return &plan.PlanNode{
			NodeType:  plan.NodeTypeNestedLoop,
			Operation: n.JoinType + " Join",
			Condition: exprString(n.Predicate),
			Children:  []*plan.PlanNode{Render(n.Left), Render(n.Right)},
		}
	case *planner.ProjectionNode:
		cols := make([]string, 0, len(n.Exprs))
		for _, e := range n.Exprs {
			if e.Alias != "" {
				cols = append(cols, e.Expr.String()+" AS "+e.Alias)
			} else {
				cols = append(cols, e.Expr.String())
			}
		}
		return &plan.PlanNode{
			NodeType:      "PROJECTION",
			Operation:     "Projection",
			OutputColumns: cols,
			Children:      []*plan.PlanNode{Render(n.Input)},
		}
	case *planner.SortNode:
		cols := make([]string, 0, len(n.By))
		for _, s := range n.By {
			cols = append(cols, s.Expr.String()+" "+s.Direction)
		}
		return &plan.PlanNode{
			NodeType:      plan.NodeTypeSort,
			Operation:     "Sort",
			OutputColumns: cols,
			Children:      []*plan.PlanNode{Render(n.Input)},
		}
	case *planner.AggregationNode:
		return &plan.PlanNode{
			NodeType:      plan.NodeTypeAggregate,
			Operation:     "Aggregation",
			OutputColumns: n.Schema,
			Children:      []*plan.PlanNode{Render(n.Input)},
		}
	case *planner.LimitNode:
		return &plan.PlanNode{
			NodeType:  plan.NodeTypeLimit,
			Operation: "Limit",
			Children:  []*plan.PlanNode{Render(n.Input)},
		}
	case planner.NullNode, *planner.NullNode:
		return &plan.PlanNode{NodeType: "NULL", Operation: "Null"}
	case *planner.CreateTableNode:
		return &plan.PlanNode{NodeType: "CREATE_TABLE", Operation: "CreateTable", Table: n.TableName}
	default:
		return &plan.PlanNode{Operation: "Unknown"}
	}
}

func exprString(e planner.Expr) string {
	if e == nil {
		return ""
	}
	return e.String()
}
