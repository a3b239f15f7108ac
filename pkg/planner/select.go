package planner

import (
	"fmt"
	"strings"

	qerrors "github.com/chahine-labs/relquery/pkg/errors"
	"github.com/chahine-labs/relquery/pkg/parser"
)

func (pl *Planner) planSelect(stmt *parser.SelectStatement) (PlanNode, error) {
	if len(stmt.Columns) == 0 {
		return nil, qerrors.NewPlanError("can't select empty")
	}

	node, err := pl.planFrom(stmt)
	if err != nil {
		return nil, err
	}

	if stmt.Where != nil {
		pred, err := pl.planExpression(stmt.Where)
		if err != nil {
			return nil, err
		}
		node = &FilterNode{Input: node, Predicate: pred}
	}

	hasAgg := len(stmt.GroupBy) > 0
	if !hasAgg {
		for _, col := range stmt.Columns {
			if containsAggregation(col) {
				hasAgg = true
				break
			}
		}
	}
	if hasAgg {
		node, err = pl.planAggregation(stmt, node)
		if err != nil {
			return nil, err
		}
	}

	node, err = pl.planProjection(stmt, node)
	if err != nil {
		return nil, err
	}

	if len(stmt.OrderBy) > 0 {
		by := make([]SortItem, 0, len(stmt.OrderBy))
		for _, ob := range stmt.OrderBy {
			e, err := pl.planExpression(ob.Expression)
			if err != nil {
				return nil, err
			}
			dir := ob.Direction
			if dir == "" {
				dir = "ASC"
			}
			by = append(by, SortItem{Expr: e, Direction: dir})
		}
		node = &SortNode{Input: node, By: by}
	}

	if stmt.Limit != nil {
		limit := stmt.Limit.Count
		offset := stmt.Limit.Offset
		node = &LimitNode{Input: node, Limit: &limit, Offset: &offset}
	}

	return node, nil
}

// planFrom translates the FROM tree. Unlike a single recursive join-tree
// shape, this AST keeps comma-separated tables and explicit JOIN clauses in
// two flat lists off the same SelectStatement; planFrom folds them into the
// same left-deep PlanNode chain a recursive tree would have produced.
func (pl *Planner) planFrom(stmt *parser.SelectStatement) (PlanNode, error) {
	if stmt.From == nil || len(stmt.From.Tables) == 0 {
		return NullNode{}, nil
	}

	var node PlanNode
	for i, tbl := range stmt.From.Tables {
		scan, err := pl.planTableReference(tbl)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			node = scan
			continue
		}
		// Comma-separated FROM tables with no join keyword are a cross
		// join: no predicate is possible or required.
		node = &JoinNode{Left: node, Right: scan, JoinType: "CROSS"}
	}

	for _, j := range stmt.Joins {
		right, err := pl.planTableReference(j.Table)
		if err != nil {
			return nil, err
		}

		var pred Expr
		if j.Condition != nil {
			pred, err = pl.planExpression(j.Condition)
			if err != nil {
				return nil, err
			}
		} else if !isOuterJoin(j.JoinType) {
			return nil, qerrors.NewPlanError("join must take with condition expression")
		}

		node = &JoinNode{Left: node, Right: right, JoinType: j.JoinType, Predicate: pred}
	}

	return node, nil
}

func isOuterJoin(joinType string) bool {
	switch strings.ToUpper(joinType) {
	case "LEFT", "RIGHT", "FULL":
		return true
	default:
		return false
	}
}

func (pl *Planner) planTableReference(tr parser.TableReference) (*ScanNode, error) {
	info, ok := pl.catalog.TableByName(tr.Name)
	if !ok {
		return nil, qerrors.NewPlanError("table: %s is not exist", tr.Name)
	}

	var alias *string
	if tr.Alias != "" {
		alias = &tr.Alias
	}
	if err := pl.context.insertTableInfo(tr.Name, alias, info); err != nil {
		return nil, err
	}

	return &ScanNode{TableName: tr.Name, TableID: info.ID}, nil
}

func (pl *Planner) planProjection(stmt *parser.SelectStatement, input PlanNode) (PlanNode, error) {
	exprs := make([]ProjectionItem, 0, len(stmt.Columns))
	for _, col := range stmt.Columns {
		item, err := pl.planProjectionItem(col)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, item)
	}
	return &ProjectionNode{Input: input, Exprs: exprs}, nil
}

func (pl *Planner) planProjectionItem(col parser.Expression) (ProjectionItem, error) {
	if aliased, ok := col.(*parser.AliasedExpression); ok {
		inner, err := pl.planExpression(aliased.Expression)
		if err != nil {
			return ProjectionItem{}, err
		}
		return ProjectionItem{Expr: inner, Alias: aliased.Alias}, nil
	}
	inner, err := pl.planExpression(col)
	if err != nil {
		return ProjectionItem{}, err
	}
	return ProjectionItem{Expr: inner}, nil
}

// planAggregation scans the select list and HAVING clause for aggregate
// calls, emits an Aggregation node carrying the group-by expressions and
// the distinct aggregate calls, and wraps a further Filter for HAVING.
func (pl *Planner) planAggregation(stmt *parser.SelectStatement, input PlanNode) (PlanNode, error) {
	groupBy := make([]Expr, 0, len(stmt.GroupBy))
	for _, g := range stmt.GroupBy {
		e, err := pl.planExpression(g)
		if err != nil {
			return nil, err
		}
		groupBy = append(groupBy, e)
	}

	seen := make(map[string]bool)
	var aggregates []Expr
	schema := make([]string, 0, len(groupBy))
	for _, g := range stmt.GroupBy {
		schema = append(schema, exprKey(g))
	}

	collect := func(e parser.Expression) error {
		for _, call := range gatherAggregateCalls(e) {
			key := exprKey(call)
			if seen[key] {
				continue
			}
			seen[key] = true
			agg, err := pl.planExpression(call)
			if err != nil {
				return err
			}
			aggregates = append(aggregates, agg)
			schema = append(schema, key)
		}
		return nil
	}

	for _, col := range stmt.Columns {
		if err := collect(col); err != nil {
			return nil, err
		}
	}
	if stmt.Having != nil {
		if err := collect(stmt.Having); err != nil {
			return nil, err
		}
	}

	node := PlanNode(&AggregationNode{
		Input:      input,
		GroupBy:    groupBy,
		Aggregates: aggregates,
		Schema:     schema,
	})

	if stmt.Having != nil {
		pred, err := pl.planExpression(stmt.Having)
		if err != nil {
			return nil, err
		}
		node = &FilterNode{Input: node, Predicate: pred}
	}

	return node, nil
}

var supportedAggNames = map[string]AggKind{
	"MIN":   Min,
	"MAX":   Max,
	"COUNT": Count,
	"SUM":   Sum,
}

// gatherAggregateCalls walks expr looking for FunctionCall nodes naming a
// supported aggregate, the same recursive descent the source planner's
// has_aggregation() performs before deciding whether a select needs an
// Aggregation node at all.
func gatherAggregateCalls(expr parser.Expression) []*parser.FunctionCall {
	var calls []*parser.FunctionCall
	switch e := expr.(type) {
	case *parser.FunctionCall:
		if _, ok := supportedAggNames[strings.ToUpper(e.Name)]; ok {
			calls = append(calls, e)
		}
		for _, arg := range e.Arguments {
			calls = append(calls, gatherAggregateCalls(arg)...)
		}
	case *parser.BinaryExpression:
		calls = append(calls, gatherAggregateCalls(e.Left)...)
		calls = append(calls, gatherAggregateCalls(e.Right)...)
	case *parser.UnaryExpression:
		calls = append(calls, gatherAggregateCalls(e.Operand)...)
	case *parser.AliasedExpression:
		calls = append(calls, gatherAggregateCalls(e.Expression)...)
	}
	return calls
}

func containsAggregation(expr parser.Expression) bool {
	return len(gatherAggregateCalls(expr)) > 0
}

// exprKey renders an AST expression into a stable textual key, used to
// dedupe repeated aggregate calls and to name synthesized Aggregation
// output columns. parser.Expression.String() is too lossy for this
// (FunctionCall.String() drops its arguments), so this descends by hand.
func exprKey(expr parser.Expression) string {
	switch e := expr.(type) {
	case *parser.ColumnReference:
		if e.Table != "" {
			return e.Table + "." + e.Column
		}
		return e.Column
	case *parser.Literal:
		return exprLiteralKey(e.Value)
	case *parser.StarExpression:
		if e.Table != "" {
			return e.Table + ".*"
		}
		return "*"
	case *parser.FunctionCall:
		args := make([]string, 0, len(e.Arguments))
		for _, a := range e.Arguments {
			args = append(args, exprKey(a))
		}
		return strings.ToUpper(e.Name) + "(" + strings.Join(args, ", ") + ")"
	case *parser.BinaryExpression:
		return "(" + exprKey(e.Left) + " " + e.Operator + " " + exprKey(e.Right) + ")"
	case *parser.UnaryExpression:
		return e.Operator + "(" + exprKey(e.Operand) + ")"
	case *parser.AliasedExpression:
		return exprKey(e.Expression)
	default:
		return expr.String()
	}
}

func exprLiteralKey(v interface{}) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}
