package planner

import (
	"testing"

	"github.com/chahine-labs/relquery/pkg/catalog"
)

func TestPlanCreateTableBasic(t *testing.T) {
	cat := catalog.NewMemCatalog()
	node, err := New(cat).Plan(parseStmt(t, "CREATE TABLE users (id INT PRIMARY KEY, name VARCHAR(100))"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ct, ok := node.(*CreateTableNode)
	if !ok {
		t.Fatalf("node = %T, want *CreateTableNode", node)
	}
	if ct.TableName != "users" {
		t.Errorf("table name = %q, want users", ct.TableName)
	}
	if len(ct.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(ct.Columns))
	}
	if !ct.Columns[0].PrimaryKey {
		t.Error("expected id to be marked primary key")
	}
}

func TestPlanCreateTableAlreadyExists(t *testing.T) {
	cat := catalog.NewMemCatalog()
	cat.CreateTable("users", nil)

	_, err := New(cat).Plan(parseStmt(t, "CREATE TABLE users (id INT PRIMARY KEY)"))
	if err == nil {
		t.Fatal("expected an already-exists error")
	}
}

func TestPlanCreateTableDuplicateColumn(t *testing.T) {
	cat := catalog.NewMemCatalog()
	_, err := New(cat).Plan(parseStmt(t, "CREATE TABLE t (id INT PRIMARY KEY, id INT)"))
	if err == nil {
		t.Fatal("expected a duplicate-column error")
	}
}

func TestPlanCreateTableRequiresExactlyOnePrimaryKey(t *testing.T) {
	cat := catalog.NewMemCatalog()
	_, err := New(cat).Plan(parseStmt(t, "CREATE TABLE t (id INT, name VARCHAR(50))"))
	if err == nil {
		t.Fatal("expected an error: no primary key declared")
	}
}

func TestPlanCreateTableTwoPrimaryKeysRejected(t *testing.T) {
	cat := catalog.NewMemCatalog()
	_, err := New(cat).Plan(parseStmt(t, "CREATE TABLE t (id INT PRIMARY KEY, code INT PRIMARY KEY)"))
	if err == nil {
		t.Fatal("expected an error: more than one primary key")
	}
}

func TestPlanCreateTableTableLevelPrimaryKeyConstraint(t *testing.T) {
	cat := catalog.NewMemCatalog()
	node, err := New(cat).Plan(parseStmt(t, "CREATE TABLE t (a INT, b INT, PRIMARY KEY (a))"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ct := node.(*CreateTableNode)
	if !ct.Columns[0].PrimaryKey {
		t.Error("expected column a to be marked primary key via table-level constraint")
	}
}
