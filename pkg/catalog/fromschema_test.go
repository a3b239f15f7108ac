package catalog

import (
	"testing"

	"github.com/chahine-labs/relquery/pkg/schema"
)

func TestFromSchemaProjectsTablesAndColumns(t *testing.T) {
	s := schema.NewSchema("testdb")

	users := schema.NewTable("users")
	users.AddColumn(&schema.Column{Name: "id", DataType: &schema.DataType{Name: "INT"}, IsPrimaryKey: true})
	users.AddColumn(&schema.Column{Name: "email", DataType: &schema.DataType{Name: "VARCHAR", Length: 255}})
	s.AddTable(users)

	cat := FromSchema(s)

	if !cat.IsTableExist("users") {
		t.Fatal("expected users table to be present in the projected catalog")
	}

	info, ok := cat.TableByName("users")
	if !ok {
		t.Fatal("TableByName(users) failed")
	}
	if len(info.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(info.Columns))
	}

	_, idCol, ok := info.ColumnByName("id")
	if !ok || idCol.LogicalType != Int || !idCol.PrimaryKey {
		t.Errorf("id column = %+v, ok=%v, want Int primary key", idCol, ok)
	}

	_, emailCol, ok := info.ColumnByName("email")
	if !ok || emailCol.LogicalType != String || emailCol.PrimaryKey {
		t.Errorf("email column = %+v, ok=%v, want String non-primary-key", emailCol, ok)
	}
}
