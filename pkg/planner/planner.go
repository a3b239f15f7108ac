// Package planner walks a parsed statement against a read-only catalog and
// produces a logical PlanNode tree: every identifier bound to a concrete
// (table, column), every operator reduced to a keyword-free tag, and
// semantic constraints (no duplicate columns, exactly one primary key,
// unambiguous column names across joined tables) enforced along the way.
package planner

import (
	"github.com/chahine-labs/relquery/pkg/catalog"
	qerrors "github.com/chahine-labs/relquery/pkg/errors"
	"github.com/chahine-labs/relquery/pkg/parser"
)

// Planner captures a shared reference to a read-only catalog. A Planner is
// reusable across many Plan calls; each call installs a fresh PlanContext
// so no state leaks between plans.
type Planner struct {
	catalog catalog.Catalog
	context *PlanContext
}

// New returns a Planner bound to cat. The planner never mutates cat except
// through the validated Create-table path, which leaves actual catalog
// installation to a downstream executor.
func New(cat catalog.Catalog) *Planner {
	return &Planner{catalog: cat}
}

// Plan translates stmt into a logical plan tree, or returns a Plan-kind
// *errors.QueryError describing why it could not.
func (pl *Planner) Plan(stmt parser.Statement) (PlanNode, error) {
	pl.context = newPlanContext()

	switch s := stmt.(type) {
	case *parser.SelectStatement:
		return pl.planSelect(s)
	case *parser.CreateTableStatement:
		return pl.planCreateTable(s)
	default:
		return nil, qerrors.NewPlanError("%s is not supported by the planner", stmt.Type())
	}
}
