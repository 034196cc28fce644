package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"regexp"

	_ "modernc.org/sqlite"

	"github.com/medalt/backend/internal/domain"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteSource reads the corpus from one table of a SQLite database.
// Column names play the role of the CSV header row.
type SQLiteSource struct {
	path  string
	table string
}

// NewSQLiteSource creates a SQLite dataset source
func NewSQLiteSource(path, table string) *SQLiteSource {
	return &SQLiteSource{path: path, table: table}
}

// Load reads every row of the table
func (s *SQLiteSource) Load(ctx context.Context) (*domain.Corpus, error) {
	if !tableNamePattern.MatchString(s.table) {
		return nil, unavailable("invalid table name %q", s.table)
	}

	// sql.Open would silently create a fresh database
	if _, err := os.Stat(s.path); err != nil {
		return nil, unavailable("sqlite path %s: %v", s.path, err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, unavailable("open sqlite %s: %v", s.path, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM "%s"`, s.table))
	if err != nil {
		return nil, unavailable("query %s: %v", s.table, err)
	}
	defer rows.Close()

	headers, err := rows.Columns()
	if err != nil {
		return nil, unavailable("columns of %s: %v", s.table, err)
	}

	var data [][]string
	for rows.Next() {
		cells := make([]sql.NullString, len(headers))
		dest := make([]any, len(headers))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, unavailable("scan %s: %v", s.table, err)
		}

		row := make([]string, len(headers))
		for i, c := range cells {
			if c.Valid {
				row[i] = c.String
			}
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate %s: %v", s.table, err)
	}

	return buildCorpus(headers, data), nil
}
