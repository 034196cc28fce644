package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/medalt/backend/internal/domain"
)

// utf8BOM is stripped from the first header when present
const utf8BOM = "\ufeff"

// CSVSource reads the corpus from a CSV file with a header row
type CSVSource struct {
	path string
}

// NewCSVSource creates a CSV dataset source
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Load reads every row of the file
func (s *CSVSource) Load(ctx context.Context) (*domain.Corpus, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, unavailable("open %s: %v", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	headers, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, unavailable("%s has no header row", s.path)
	}
	if err != nil {
		return nil, unavailable("read header of %s: %v", s.path, err)
	}
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], utf8BOM)
	}

	var rows [][]string
	for {
		if len(rows)%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, unavailable("read %s: %v", s.path, err)
		}
		rows = append(rows, row)
	}

	return buildCorpus(headers, rows), nil
}
