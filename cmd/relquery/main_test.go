package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chahine-labs/relquery/internal/config"
	"github.com/chahine-labs/relquery/pkg/logger"
)

func TestLoadCatalogEmptyPathIsEmptyMemCatalog(t *testing.T) {
	cat, sch, err := loadCatalog("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sch != nil {
		t.Error("expected a nil schema when no catalog file is given")
	}
	if cat.IsTableExist("anything") {
		t.Error("expected an empty catalog")
	}
}

func TestLoadCatalogFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db.json")
	data := `{"name":"testdb","tables":[{"name":"users","columns":[{"name":"id","type":"INT","primary_key":true}]}]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cat, sch, err := loadCatalog(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sch == nil || !sch.HasTable("users") {
		t.Error("expected the loaded schema to carry the users table")
	}
	if !cat.IsTableExist("users") {
		t.Error("expected the projected catalog to carry the users table")
	}
}

func TestRunPlansAgainstEmptyCatalog(t *testing.T) {
	cat, sch, err := loadCatalog("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = run("SELECT 1", config.DefaultConfig(), cat, sch, false, true, logger.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunRejectsUnknownTable(t *testing.T) {
	cat, sch, err := loadCatalog("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = run("SELECT * FROM missing", config.DefaultConfig(), cat, sch, false, true, logger.Default())
	if err == nil {
		t.Fatal("expected a plan error for an unknown table")
	}
}

func TestRunExplainAgainstCatalogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db.json")
	data := `{"name":"testdb","tables":[{"name":"users","columns":[{"name":"id","type":"INT","primary_key":true},{"name":"name","type":"VARCHAR","length":50}]}]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cat, sch, err := loadCatalog(path)
	if err != nil {
		t.Fatalf("unexpected error loading catalog: %v", err)
	}
	if err := run("SELECT id, name FROM users WHERE id = 1", config.DefaultConfig(), cat, sch, true, true, logger.Default()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
