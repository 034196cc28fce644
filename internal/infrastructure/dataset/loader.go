package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/medalt/backend/internal/domain"
)

// NewSource picks a dataset source from the file extension.
// .db, .sqlite and .sqlite3 files are read as SQLite; everything else as CSV.
func NewSource(path, table string) domain.DatasetSource {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteSource(path, table)
	default:
		return NewCSVSource(path)
	}
}

// LoadOrEmpty loads the corpus, substituting an empty corpus on any failure.
// A missing or corrupt dataset is never fatal to startup.
func LoadOrEmpty(ctx context.Context, src domain.DatasetSource, logger *zap.Logger) *domain.Corpus {
	corpus, err := src.Load(ctx)
	if err != nil {
		logger.Warn("Failed to load dataset, continuing with empty corpus", zap.Error(err))
		return domain.EmptyCorpus()
	}

	logger.Info("Dataset loaded",
		zap.Int("records", corpus.Len()),
		zap.String("name_column", corpus.NameColumn),
		zap.String("composition_column", corpus.CompositionColumn),
	)
	return corpus
}

// buildCorpus maps raw rows onto records using the resolved columns.
// Cells missing from short rows are treated as empty.
func buildCorpus(headers []string, rows [][]string) *domain.Corpus {
	nameCol, compCol := ResolveColumns(headers)
	nameIdx := indexOf(headers, nameCol)
	compIdx := indexOf(headers, compCol)
	priceIdx := indexOf(headers, PriceColumn)

	records := make([]domain.Medicine, 0, len(rows))
	for _, row := range rows {
		rec := domain.Medicine{
			Name:        cell(row, nameIdx),
			Composition: cell(row, compIdx),
		}
		if price := cell(row, priceIdx); price != "" {
			rec.Price = &price
		}
		records = append(records, rec)
	}

	return &domain.Corpus{
		Records:           records,
		NameColumn:        nameCol,
		CompositionColumn: compCol,
	}
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func unavailable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrDatasetUnavailable, fmt.Sprintf(format, args...))
}
