package catalog

import "github.com/chahine-labs/relquery/pkg/schema"

// FromSchema builds a MemCatalog from a schema.Schema loaded by
// pkg/catalogfile. The two packages model overlapping but distinct concerns:
// schema.Schema is a dialect-aware description used by the validator and
// type checker (lengths, precision, foreign keys, indexes), while
// catalog.Catalog is the narrower, closed-vocabulary view the planner binds
// against. Rather than teach the planner the wider schema representation,
// this adapter projects one onto the other once, at load time.
func FromSchema(s *schema.Schema) Catalog {
	cat := NewMemCatalog()
	for _, table := range s.Tables {
		columns := make([]ColumnInfo, 0, len(table.Columns))
		for _, col := range table.Columns {
			columns = append(columns, ColumnInfo{
				Name:        col.Name,
				LogicalType: ParseDataType(col.DataType.Name),
				PrimaryKey:  col.IsPrimaryKey,
			})
		}
		// CreateTable allocates ids sequentially; schema.Schema has no
		// notion of table id, and s.Tables is a map, so which id a table
		// receives follows map iteration order and can differ between loads.
		if _, err := cat.CreateTable(table.Name, columns); err != nil {
			// Schema.Tables keys are already unique by construction
			// (map keyed on lower-cased name), so this cannot happen.
			panic(err)
		}
	}
	return cat
}
