package planner

import (
	"testing"

	"github.com/chahine-labs/relquery/pkg/catalog"
	"github.com/chahine-labs/relquery/pkg/parser"
)

func usersOrdersCatalog() catalog.Catalog {
	cat := catalog.NewMemCatalog()
	cat.CreateTable("users", []catalog.ColumnInfo{
		{Name: "id", LogicalType: catalog.Int, PrimaryKey: true},
		{Name: "name", LogicalType: catalog.String},
	})
	cat.CreateTable("orders", []catalog.ColumnInfo{
		{Name: "id", LogicalType: catalog.Int, PrimaryKey: true},
		{Name: "user_id", LogicalType: catalog.Int},
		{Name: "total", LogicalType: catalog.Float},
	})
	return cat
}

func mustPlan(t *testing.T, sql string, cat catalog.Catalog) PlanNode {
	t.Helper()
	p := parser.New(sql)
	stmt, err := p.ParseStatement()
	if err != nil {
		t.Fatalf("parse error for %q: %v", sql, err)
	}
	node, err := New(cat).Plan(stmt)
	if err != nil {
		t.Fatalf("plan error for %q: %v", sql, err)
	}
	return node
}

func TestPlanSimpleSelect(t *testing.T) {
	node := mustPlan(t, "SELECT id, name FROM users", usersOrdersCatalog())

	proj, ok := node.(*ProjectionNode)
	if !ok {
		t.Fatalf("root node = %T, want *ProjectionNode", node)
	}
	if len(proj.Exprs) != 2 {
		t.Fatalf("expected 2 projected columns, got %d", len(proj.Exprs))
	}
	scan, ok := proj.Input.(*ScanNode)
	if !ok {
		t.Fatalf("projection input = %T, want *ScanNode", proj.Input)
	}
	if scan.TableName != "users" {
		t.Errorf("scan table = %q, want users", scan.TableName)
	}
}

func TestPlanSelectWithWhere(t *testing.T) {
	node := mustPlan(t, "SELECT id FROM users WHERE name = 'bob'", usersOrdersCatalog())

	proj := node.(*ProjectionNode)
	filter, ok := proj.Input.(*FilterNode)
	if !ok {
		t.Fatalf("projection input = %T, want *FilterNode", proj.Input)
	}
	be, ok := filter.Predicate.(BinaryExpr)
	if !ok {
		t.Fatalf("predicate = %T, want BinaryExpr", filter.Predicate)
	}
	if be.Op != Eq {
		t.Errorf("operator = %s, want =", be.Op)
	}
}

func TestPlanSelectNoFromYieldsNullNode(t *testing.T) {
	node := mustPlan(t, "SELECT 1", usersOrdersCatalog())
	proj := node.(*ProjectionNode)
	if _, ok := proj.Input.(NullNode); !ok {
		t.Fatalf("projection input = %T, want NullNode", proj.Input)
	}
}

func TestPlanInnerJoinWithCondition(t *testing.T) {
	_, err := New(usersOrdersCatalog()).Plan(parseStmt(t, "SELECT u.id FROM users u JOIN orders o ON u.id = o.user_id"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPlanCommaJoinIsCross(t *testing.T) {
	node := mustPlan(t, "SELECT u.id FROM users u, orders o", usersOrdersCatalog())
	proj := node.(*ProjectionNode)
	join, ok := proj.Input.(*JoinNode)
	if !ok {
		t.Fatalf("projection input = %T, want *JoinNode", proj.Input)
	}
	if join.JoinType != "CROSS" {
		t.Errorf("join type = %q, want CROSS", join.JoinType)
	}
	if join.Predicate != nil {
		t.Errorf("expected nil predicate on a comma join, got %v", join.Predicate)
	}
}

func TestPlanOuterJoinWithoutConditionAllowed(t *testing.T) {
	node := mustPlan(t, "SELECT u.id FROM users u LEFT JOIN orders o", usersOrdersCatalog())
	proj := node.(*ProjectionNode)
	join := proj.Input.(*JoinNode)
	if join.JoinType != "LEFT" {
		t.Errorf("join type = %q, want LEFT", join.JoinType)
	}
	if join.Predicate != nil {
		t.Errorf("expected nil predicate, got %v", join.Predicate)
	}
}

func TestPlanAmbiguousColumnRejected(t *testing.T) {
	cat := catalog.NewMemCatalog()
	cat.CreateTable("a", []catalog.ColumnInfo{{Name: "x", LogicalType: catalog.Int}})
	cat.CreateTable("b", []catalog.ColumnInfo{{Name: "x", LogicalType: catalog.Int}})

	_, err := New(cat).Plan(parseStmt(t, "SELECT x FROM a, b"))
	if err == nil {
		t.Fatal("expected an ambiguous-column error")
	}
}

func TestPlanUnknownTableRejected(t *testing.T) {
	_, err := New(usersOrdersCatalog()).Plan(parseStmt(t, "SELECT * FROM missing_table"))
	if err == nil {
		t.Fatal("expected a table-does-not-exist error")
	}
}

func TestPlanAggregationDedupesRepeatedCalls(t *testing.T) {
	node := mustPlan(t, "SELECT user_id, SUM(total), SUM(total) FROM orders GROUP BY user_id", usersOrdersCatalog())
	proj := node.(*ProjectionNode)
	agg, ok := proj.Input.(*AggregationNode)
	if !ok {
		t.Fatalf("projection input = %T, want *AggregationNode", proj.Input)
	}
	if len(agg.Aggregates) != 1 {
		t.Fatalf("expected 1 deduplicated aggregate call, got %d", len(agg.Aggregates))
	}
	if len(agg.GroupBy) != 1 {
		t.Fatalf("expected 1 group-by expression, got %d", len(agg.GroupBy))
	}
}

func TestPlanHavingWrapsAggregationInFilter(t *testing.T) {
	node := mustPlan(t, "SELECT user_id, SUM(total) FROM orders GROUP BY user_id HAVING SUM(total) > 100", usersOrdersCatalog())
	proj := node.(*ProjectionNode)
	filter, ok := proj.Input.(*FilterNode)
	if !ok {
		t.Fatalf("projection input = %T, want *FilterNode", proj.Input)
	}
	if _, ok := filter.Input.(*AggregationNode); !ok {
		t.Fatalf("filter input = %T, want *AggregationNode", filter.Input)
	}
}

func TestPlanOrderByAndLimit(t *testing.T) {
	node := mustPlan(t, "SELECT id FROM users ORDER BY id DESC LIMIT 10 OFFSET 5", usersOrdersCatalog())
	limit, ok := node.(*LimitNode)
	if !ok {
		t.Fatalf("root node = %T, want *LimitNode", node)
	}
	if *limit.Limit != 10 || *limit.Offset != 5 {
		t.Errorf("limit/offset = %d/%d, want 10/5", *limit.Limit, *limit.Offset)
	}
	sort, ok := limit.Input.(*SortNode)
	if !ok {
		t.Fatalf("limit input = %T, want *SortNode", limit.Input)
	}
	if sort.By[0].Direction != "DESC" {
		t.Errorf("sort direction = %q, want DESC", sort.By[0].Direction)
	}
}

func TestPlanIsNullBecomesUnaryExpr(t *testing.T) {
	node := mustPlan(t, "SELECT id FROM users WHERE name IS NULL", usersOrdersCatalog())
	proj := node.(*ProjectionNode)
	filter := proj.Input.(*FilterNode)
	u, ok := filter.Predicate.(UnaryExpr)
	if !ok {
		t.Fatalf("predicate = %T, want UnaryExpr", filter.Predicate)
	}
	if u.Op != IsNull {
		t.Errorf("unary op = %s, want IS NULL", u.Op)
	}
}

func parseStmt(t *testing.T, sql string) parser.Statement {
	t.Helper()
	p := parser.New(sql)
	stmt, err := p.ParseStatement()
	if err != nil {
		t.Fatalf("parse error for %q: %v", sql, err)
	}
	return stmt
}
