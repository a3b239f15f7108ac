// Package catalogfile adapts pkg/schema's dual-format (JSON/YAML) loader to
// build the narrower catalog.Catalog the planner binds against, so the
// file-parsing concern stays in one place instead of being reimplemented
// for the new catalog shape.
package catalogfile

import (
	"fmt"

	"github.com/chahine-labs/relquery/pkg/catalog"
	"github.com/chahine-labs/relquery/pkg/schema"
)

// Load reads a table schema description (JSON or YAML, auto-detected by
// extension exactly as schema.SchemaLoader.LoadFromFile does) and returns a
// ready-to-use Catalog alongside the underlying schema.Schema, so a caller
// that wants to run the teacher's own validator/type checker against a
// statement before planning doesn't need to reload the file a second time.
func Load(path string) (catalog.Catalog, *schema.Schema, error) {
	loader := schema.NewSchemaLoader()
	s, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog file: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid catalog file: %w", err)
	}
	return catalog.FromSchema(s), s, nil
}
