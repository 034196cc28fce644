package domain

import "context"

// MedicineMatcher resolves a brand name and ranks its alternatives
type MedicineMatcher interface {
	FindAlternatives(ctx context.Context, queryName string, topN int) (*MatchResult, error)
	Size() int
}

// DatasetSource loads the corpus from a tabular source
type DatasetSource interface {
	Load(ctx context.Context) (*Corpus, error)
}
