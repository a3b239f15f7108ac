package planner

import (
	"github.com/chahine-labs/relquery/pkg/catalog"
	qerrors "github.com/chahine-labs/relquery/pkg/errors"
)

// PlanContext is the per-plan() resolution state built while translating
// the FROM tree: which names (real or aliased) are in scope, and which
// tables a bare column name could belong to. It lives for exactly one
// plan() call and is discarded, success or failure, at the end of it.
type PlanContext struct {
	tableMap  map[string]*catalog.TableInfo
	columnMap map[string][]string
}

func newPlanContext() *PlanContext {
	return &PlanContext{
		tableMap:  make(map[string]*catalog.TableInfo),
		columnMap: make(map[string][]string),
	}
}

// infoByName returns the TableInfo bound to name, whether name is the
// table's real name or one of its aliases.
func (c *PlanContext) infoByName(name string) (*catalog.TableInfo, bool) {
	info, ok := c.tableMap[name]
	return info, ok
}

// tableNamesByColumnName returns every bound table that exposes a column
// named columnName, for resolving an unqualified reference.
func (c *PlanContext) tableNamesByColumnName(columnName string) ([]string, bool) {
	names, ok := c.columnMap[columnName]
	return names, ok
}

func (c *PlanContext) insertColumnInfo(info *catalog.TableInfo) {
	for _, col := range info.Columns {
		c.columnMap[col.Name] = append(c.columnMap[col.Name], info.Name)
	}
}

// insertTableInfo binds tableName (and alias, if any) to info. Aliases
// occupy the same namespace as real table names: binding either one twice
// is an error, matching the source planner's "X is exist" diagnostics.
func (c *PlanContext) insertTableInfo(tableName string, alias *string, info *catalog.TableInfo) error {
	if alias != nil {
		_, tableTaken := c.tableMap[tableName]
		_, aliasTaken := c.tableMap[*alias]
		if tableTaken || aliasTaken {
			return qerrors.NewPlanError("%s %s is exist", tableName, *alias)
		}
		c.tableMap[tableName] = info
		c.tableMap[*alias] = info
		c.insertColumnInfo(info)
		return nil
	}

	if _, exists := c.tableMap[tableName]; exists {
		return qerrors.NewPlanError("%s is exist", tableName)
	}
	c.tableMap[tableName] = info
	c.insertColumnInfo(info)
	return nil
}
