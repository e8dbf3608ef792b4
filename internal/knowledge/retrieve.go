// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/blog-engine/pkg/types"
)

// Retrieve returns the passages best matching the query, ranked by FTS5
// relevance. A query that matches nothing returns an empty slice, not an
// error; limit <= 0 uses the store default.
func (s *Store) Retrieve(ctx context.Context, query string, limit int) ([]types.Passage, error) {
	match := ftsQuery(query)
	if match == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT p.content, p.source, passages_fts.rank
		 FROM passages_fts
		 JOIN passages p ON p.rowid = passages_fts.rowid
		 WHERE passages_fts MATCH ?
		 ORDER BY passages_fts.rank
		 LIMIT ?`,
		match, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var out []types.Passage
	for rows.Next() {
		var (
			p    types.Passage
			rank float64
		)
		if err := rows.Scan(&p.Content, &p.Source, &rank); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		// FTS5 rank is more negative for better matches.
		p.Score = -rank
		out = append(out, p)
	}
	return out, rows.Err()
}

// ftsQuery turns free text into an FTS5 OR-query of quoted tokens, so
// punctuation in topics cannot break the MATCH syntax.
func ftsQuery(query string) string {
	fields := strings.Fields(query)
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ReplaceAll(f, `"`, "")
		if f == "" {
			continue
		}
		terms = append(terms, `"`+f+`"`)
	}
	return strings.Join(terms, " OR ")
}
