package planstats

import (
	"testing"

	"github.com/chahine-labs/relquery/pkg/catalog"
	"github.com/chahine-labs/relquery/pkg/parser"
	"github.com/chahine-labs/relquery/pkg/planner"
)

func plan(t *testing.T, sql string) planner.PlanNode {
	t.Helper()
	cat := catalog.NewMemCatalog()
	cat.CreateTable("a", []catalog.ColumnInfo{{Name: "x", LogicalType: catalog.Int}})
	cat.CreateTable("b", []catalog.ColumnInfo{{Name: "y", LogicalType: catalog.Int}})

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

func TestAnalyzeCountsScansAndFilters(t *testing.T) {
	stats := Analyze(plan(t, "SELECT x FROM a WHERE x = 1"))
	if stats.ScanNodes != 1 {
		t.Errorf("ScanNodes = %d, want 1", stats.ScanNodes)
	}
	if stats.FilterNodes != 1 {
		t.Errorf("FilterNodes = %d, want 1", stats.FilterNodes)
	}
}

func TestAnalyzeFlagsPredicateLessJoin(t *testing.T) {
	stats := Analyze(plan(t, "SELECT x FROM a, b"))
	if stats.JoinNodes != 1 {
		t.Errorf("JoinNodes = %d, want 1", stats.JoinNodes)
	}
	found := false
	for _, issue := range stats.Issues {
		if issue.Severity == "WARNING" {
			found = true
		}
	}
	if !found {
		t.Error("expected a WARNING issue for a predicate-less join")
	}
}

func TestAnalyzeFlagsFilterDirectlyOverScan(t *testing.T) {
	stats := Analyze(plan(t, "SELECT x FROM a WHERE x = 1"))
	found := false
	for _, issue := range stats.Issues {
		if issue.Severity == "INFO" {
			found = true
		}
	}
	if !found {
		t.Error("expected an INFO issue for filter directly over scan")
	}
}
