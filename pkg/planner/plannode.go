package planner

import "fmt"

// PlanNode is the logical plan tree the planner emits: a typed, catalog-
// bound description of what a query means, with no notion of how it would
// be executed. This is distinct from, and not to be confused with, the
// physical EXPLAIN-output tree consumed by pkg/explainfmt/pkg/planstats.
type PlanNode interface {
	planNode()
	String() string
}

// ScanNode reads one catalog table, optionally pre-filtered. Predicates is
// nil unless a future optimization pass pushes a Filter down into the scan;
// the planner itself never populates it.
type ScanNode struct {
	TableName  string
	TableID    int32
	Predicates Expr
}

func (*ScanNode) planNode() {}
func (s *ScanNode) String() string { return fmt.Sprintf("Scan(%s)", s.TableName) }

// FilterNode keeps only rows of Input matching Predicate.
type FilterNode struct {
	Input     PlanNode
	Predicate Expr
}

func (*FilterNode) planNode() {}
func (f *FilterNode) String() string { return fmt.Sprintf("Filter(%s)", f.Predicate) }

// JoinNode combines Left and Right according to JoinType. Predicate is nil
// only for an implicit comma-join (CROSS) or for an OUTER join whose source
// omitted ON; every INNER/CROSS-less join requires one.
type JoinNode struct {
	Left      PlanNode
	Right     PlanNode
	JoinType  string
	Predicate Expr
}

func (*JoinNode) planNode() {}
func (j *JoinNode) String() string { return fmt.Sprintf("Join(%s)", j.JoinType) }

// ProjectionItem pairs a resolved expression with its optional output alias.
type ProjectionItem struct {
	Expr  Expr
	Alias string
}

// ProjectionNode narrows Input down to the select list.
type ProjectionNode struct {
	Input PlanNode
	Exprs []ProjectionItem
}

func (*ProjectionNode) planNode() {}
func (p *ProjectionNode) String() string { return fmt.Sprintf("Projection(%d)", len(p.Exprs)) }

// SortItem pairs a resolved expression with its sort direction ("ASC"/"DESC").
type SortItem struct {
	Expr      Expr
	Direction string
}

// SortNode orders the rows of Input.
type SortNode struct {
	Input PlanNode
	By    []SortItem
}

func (*SortNode) planNode() {}
func (s *SortNode) String() string { return fmt.Sprintf("Sort(%d)", len(s.By)) }

// AggregationNode groups Input by GroupBy and evaluates the distinct
// aggregate calls found in the select list and HAVING clause. Schema names
// the synthesized output columns (group-by expressions first, then
// aggregates in discovery order) for a downstream Projection to reference.
type AggregationNode struct {
	Input      PlanNode
	GroupBy    []Expr
	Aggregates []Expr
	Schema     []string
}

func (*AggregationNode) planNode() {}
func (a *AggregationNode) String() string {
	return fmt.Sprintf("Aggregation(groupBy=%d,aggs=%d)", len(a.GroupBy), len(a.Aggregates))
}

// LimitNode bounds Input's row count. The planner always sets both bounds,
// copied from the integer count and offset of the statement's LIMIT clause.
type LimitNode struct {
	Input  PlanNode
	Limit  *int
	Offset *int
}

func (*LimitNode) planNode() {}
func (l *LimitNode) String() string { return "Limit" }

// NullNode is the sentinel plan for a SELECT with no FROM clause.
type NullNode struct{}

func (NullNode) planNode() {}
func (NullNode) String() string { return "Null" }

// CreateTableNode carries a validated column list for a downstream executor
// to install into the catalog; the planner itself never mutates it.
type CreateTableNode struct {
	TableName string
	Columns   []ColumnDef
}

func (*CreateTableNode) planNode() {}
func (c *CreateTableNode) String() string { return fmt.Sprintf("CreateTable(%s)", c.TableName) }

// ColumnDef is the planner's validated view of one CREATE TABLE column,
// independent of catalog.ColumnInfo so the planner doesn't need a live
// catalog reference to describe a table it hasn't created yet.
type ColumnDef struct {
	Name       string
	LogicalType string
	PrimaryKey bool
}
