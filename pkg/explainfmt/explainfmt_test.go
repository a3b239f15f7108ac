package explainfmt

import (
	"testing"

	"github.com/chahine-labs/relquery/pkg/catalog"
	"github.com/chahine-labs/relquery/pkg/parser"
	"github.com/chahine-labs/relquery/pkg/planner"
)

func plan(t *testing.T, sql string) planner.PlanNode {
	t.Helper()
	cat := catalog.NewMemCatalog()
	cat.CreateTable("t", []catalog.ColumnInfo{{Name: "a", LogicalType: catalog.Int}})

	p := parser.New(sql)
	stmt, err := p.ParseStatement()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	node, err := planner.New(cat).Plan(stmt)
	if err != nil {
		t.Fatalf("plan error: %v", err)
	}
	return node
}

func TestRenderScanCarriesTableName(t *testing.T) {
	node := plan(t, "SELECT a FROM t")
	rendered := Render(node)
	if rendered.Operation != "Projection" {
		t.Fatalf("root operation = %q, want Projection", rendered.Operation)
	}
	scan := rendered.Children[0]
	if scan.Operation != "Scan" || scan.Table != "t" {
		t.Errorf("scan = %+v, want Operation=Scan Table=t", scan)
	}
}

func TestRenderNilNode(t *testing.T) {
	if got := Render(nil); got != nil {
		t.Errorf("Render(nil) = %v, want nil", got)
	}
}
