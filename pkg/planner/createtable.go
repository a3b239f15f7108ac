package planner

import (
	qerrors "github.com/chahine-labs/relquery/pkg/errors"
	"github.com/chahine-labs/relquery/pkg/parser"
)

// planCreateTable validates a CREATE TABLE statement against the catalog
// and the statement's own column list. It never installs anything into the
// catalog itself; a downstream executor does that using the validated
// column list carried on the returned CreateTableNode.
func (pl *Planner) planCreateTable(stmt *parser.CreateTableStatement) (PlanNode, error) {
	if pl.catalog.IsTableExist(stmt.Table.Name) {
		return nil, qerrors.NewPlanError("%s is already exist in database", stmt.Table.Name)
	}

	seen := make(map[string]bool, len(stmt.Columns))
	primaryKeys := 0
	columns := make([]ColumnDef, 0, len(stmt.Columns))

	for _, col := range stmt.Columns {
		if seen[col.Name] {
			return nil, qerrors.NewPlanError("%s is fuzzy in your SQL", col.Name)
		}
		seen[col.Name] = true

		isPK := col.PrimaryKey
		columns = append(columns, ColumnDef{
			Name:        col.Name,
			LogicalType: col.DataType,
			PrimaryKey:  isPK,
		})
	}

	for _, c := range columns {
		if c.PrimaryKey {
			primaryKeys++
		}
	}
	// A table-level PRIMARY KEY(col, ...) constraint marks its columns too,
	// the same way the source checker counts primary keys regardless of
	// whether they were declared inline or at the table level.
	for _, constraint := range stmt.Constraints {
		if constraint.ConstraintType != "PRIMARY_KEY" {
			continue
		}
		for i := range columns {
			for _, name := range constraint.Columns {
				if columns[i].Name == name && !columns[i].PrimaryKey {
					columns[i].PrimaryKey = true
					primaryKeys++
				}
			}
		}
	}

	if primaryKeys != 1 {
		return nil, qerrors.NewPlanError("table %s only support one primary key", stmt.Table.Name)
	}

	return &CreateTableNode{TableName: stmt.Table.Name, Columns: columns}, nil
}
