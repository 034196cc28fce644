package usecase

import (
	"context"
	"math"
	"slices"
	"strconv"

	"go.uber.org/zap"

	"github.com/medalt/backend/internal/domain"
)

// DefaultTopN is the number of alternatives returned when the caller passes none
const DefaultTopN = 5

// IndexConfig holds configuration for the similarity index
type IndexConfig struct {
	TopN   int
	Cutoff float64
}

// Index is the fitted, read-only search structure built once at startup.
// It is safe for concurrent use.
type Index struct {
	records    []domain.Medicine
	vectors    []SparseVector
	resolver   *NameResolver
	firstIndex map[string]int
	topN       int
	logger     *zap.Logger
}

// NewIndex preprocesses the corpus and fits the TF-IDF model over it.
// An empty corpus fits nothing and every lookup reports ErrDatasetEmpty.
func NewIndex(corpus *domain.Corpus, config IndexConfig, logger *zap.Logger) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}

	topN := config.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	idx := &Index{topN: topN, logger: logger}
	if corpus.IsEmpty() {
		logger.Warn("Building index over empty corpus")
		return idx
	}

	records, features := NewFeaturePreprocessor(logger).Preprocess(corpus.Records)
	vectorizer := FitTfidf(features)

	names := make([]string, len(records))
	firstIndex := make(map[string]int, len(records))
	for i, rec := range records {
		names[i] = rec.Name
		if _, ok := firstIndex[rec.Name]; !ok {
			firstIndex[rec.Name] = i
		}
	}

	idx.records = records
	idx.vectors = vectorizer.TransformAll(features)
	idx.resolver = NewNameResolver(names, config.Cutoff)
	idx.firstIndex = firstIndex

	logger.Info("Index built",
		zap.Int("records", len(records)),
		zap.Int("vocabulary", vectorizer.VocabularySize()),
	)
	return idx
}

// Size returns the number of indexed records
func (ix *Index) Size() int {
	return len(ix.records)
}

// FindAlternatives resolves queryName to a known brand and returns up to topN
// records with the most similar composition, excluding the brand itself.
// topN <= 0 uses the configured default.
func (ix *Index) FindAlternatives(ctx context.Context, queryName string, topN int) (*domain.MatchResult, error) {
	if len(ix.records) == 0 {
		return nil, domain.ErrDatasetEmpty
	}
	if topN <= 0 {
		topN = ix.topN
	}

	brand, ok := ix.resolver.Resolve(queryName)
	if !ok {
		ix.logger.Debug("No brand match", zap.String("query", queryName))
		return nil, domain.ErrNoMatch
	}
	target := ix.firstIndex[brand]

	scores, err := ix.scoreAgainst(ctx, target)
	if err != nil {
		return nil, err
	}

	candidates := make([]int, 0, len(scores)-1)
	for i := range scores {
		if i != target {
			candidates = append(candidates, i)
		}
	}
	slices.SortStableFunc(candidates, func(a, b int) int {
		switch {
		case scores[a] > scores[b]:
			return -1
		case scores[a] < scores[b]:
			return 1
		default:
			return 0
		}
	})
	if len(candidates) > topN {
		candidates = candidates[:topN]
	}

	alternatives := make([]domain.Alternative, 0, len(candidates))
	for _, i := range candidates {
		rec := ix.records[i]
		alternatives = append(alternatives, domain.Alternative{
			BrandName:  rec.Name,
			Formula:    rec.Composition,
			Price:      rec.DisplayPrice(),
			MatchScore: formatScore(scores[i]),
		})
	}

	ix.logger.Debug("Brand matched",
		zap.String("query", queryName),
		zap.String("brand", brand),
		zap.Int("alternatives", len(alternatives)),
	)
	return &domain.MatchResult{TargetBrand: brand, Alternatives: alternatives}, nil
}

// scoreAgainst returns the cosine similarity of every record to the target, clamped to [0, 1]
func (ix *Index) scoreAgainst(ctx context.Context, target int) ([]float64, error) {
	query := ix.vectors[target]
	scores := make([]float64, len(ix.vectors))
	for i, v := range ix.vectors {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		scores[i] = math.Min(1, math.Max(0, query.Dot(v)))
	}
	return scores, nil
}

// formatScore renders a similarity as a percentage with one decimal, e.g. "87.3%"
func formatScore(score float64) string {
	return formatPercent(score * 100)
}

// formatPercent rounds pct to one decimal from its exact binary value,
// so exact halves go to the even digit.
func formatPercent(pct float64) string {
	return strconv.FormatFloat(pct, 'f', 1, 64) + "%"
}
