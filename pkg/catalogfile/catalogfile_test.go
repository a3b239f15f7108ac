package catalogfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromJSONFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db.json")
	data := `{
		"name": "testdb",
		"tables": [
			{
				"name": "users",
				"columns": [
					{"name": "id", "type": "INT", "primary_key": true},
					{"name": "name", "type": "VARCHAR", "length": 100}
				]
			}
		]
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cat, sch, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cat.IsTableExist("users") {
		t.Error("expected users table to be loaded")
	}
	if !sch.HasTable("users") {
		t.Error("expected the underlying schema.Schema to also carry users")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error loading a nonexistent catalog file")
	}
}
