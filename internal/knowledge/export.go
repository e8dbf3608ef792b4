// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/blog-engine/pkg/types"
)

const exportFile = "export.yaml"

// exportDoc is the on-disk shape of an index export.
type exportDoc struct {
	Passages []types.Passage `yaml:"passages"`
}

// ExportYAML writes the full passage index to indexDir/export.yaml so the
// notes corpus can be inspected or diffed without SQLite tooling.
func (s *Store) ExportYAML(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT content, source FROM passages ORDER BY source, seq`)
	if err != nil {
		return fmt.Errorf("reading passages: %w", err)
	}
	defer rows.Close()

	var doc exportDoc
	for rows.Next() {
		var p types.Passage
		if err := rows.Scan(&p.Content, &p.Source); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
		doc.Passages = append(doc.Passages, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshaling export: %w", err)
	}
	path := filepath.Join(s.indexDir, exportFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
