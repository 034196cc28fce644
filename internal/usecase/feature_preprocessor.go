package usecase

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/medalt/backend/internal/domain"
)

// tokenPattern matches runs of two or more word characters
var tokenPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]{2,}`)

// FeaturePreprocessor turns corpus records into the text that gets vectorised
type FeaturePreprocessor struct {
	logger *zap.Logger
}

// NewFeaturePreprocessor creates a new feature preprocessor
func NewFeaturePreprocessor(logger *zap.Logger) *FeaturePreprocessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeaturePreprocessor{logger: logger}
}

// Preprocess fills missing compositions and returns the records alongside one
// search-features string per record, aligned by index.
func (p *FeaturePreprocessor) Preprocess(records []domain.Medicine) ([]domain.Medicine, []string) {
	prepared := make([]domain.Medicine, len(records))
	features := make([]string, len(records))

	filled := 0
	for i, rec := range records {
		if rec.Composition == "" {
			rec.Composition = domain.GenericMedicine
			filled++
		}
		prepared[i] = rec
		features[i] = SearchFeatures(rec.Composition)
	}

	p.logger.Debug("Preprocessed compositions",
		zap.Int("records", len(records)),
		zap.Int("generic_filled", filled),
	)
	return prepared, features
}

// SearchFeatures normalises a composition for vectorisation
func SearchFeatures(composition string) string {
	if composition == "" {
		composition = domain.GenericMedicine
	}
	return strings.ToLower(composition)
}

// tokenize splits text into lowercase tokens, dropping English stop words
func tokenize(text string) []string {
	words := tokenPattern.FindAllString(strings.ToLower(text), -1)

	tokens := words[:0]
	for _, w := range words {
		if englishStopWords[w] {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}
