package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medalt/backend/internal/domain"
)

func strPtr(s string) *string { return &s }

func painkillers() *domain.Corpus {
	return &domain.Corpus{
		Records: []domain.Medicine{
			{Name: "Panadol", Composition: "Paracetamol 500mg", Price: strPtr("35")},
			{Name: "Calpol", Composition: "Paracetamol 500mg"},
			{Name: "Brufen", Composition: "Ibuprofen 400mg", Price: strPtr("60")},
		},
		NameColumn:        "Name",
		CompositionColumn: "Composition",
	}
}

func pharmacy() *domain.Corpus {
	return &domain.Corpus{
		Records: []domain.Medicine{
			{Name: "Panadol", Composition: "Paracetamol 500mg"},
			{Name: "Panadol Extra", Composition: "Paracetamol 500mg Caffeine 65mg"},
			{Name: "Calpol", Composition: "Paracetamol 120mg/5ml"},
			{Name: "Brufen", Composition: "Ibuprofen 400mg"},
			{Name: "Brufen Forte", Composition: "Ibuprofen 600mg"},
			{Name: "Augmentin", Composition: "Amoxicillin 500mg Clavulanic Acid 125mg"},
			{Name: "Amoxil", Composition: "Amoxicillin 500mg"},
			{Name: "Flagyl", Composition: "Metronidazole 400mg"},
			{Name: "Disprin", Composition: "Aspirin 300mg"},
			{Name: "Loprin", Composition: "Aspirin 75mg"},
			{Name: "Unknown"},
		},
	}
}

func TestNewIndex(t *testing.T) {
	t.Run("defaults top n", func(t *testing.T) {
		ix := NewIndex(painkillers(), IndexConfig{}, nil)
		assert.Equal(t, DefaultTopN, ix.topN)
		assert.Equal(t, 3, ix.Size())
	})

	t.Run("empty corpus", func(t *testing.T) {
		ix := NewIndex(domain.EmptyCorpus(), IndexConfig{TopN: 5, Cutoff: 0.6}, nil)
		assert.Equal(t, 0, ix.Size())
	})

	t.Run("nil corpus", func(t *testing.T) {
		ix := NewIndex(nil, IndexConfig{}, nil)
		assert.Equal(t, 0, ix.Size())
	})

	t.Run("fills missing compositions", func(t *testing.T) {
		ix := NewIndex(pharmacy(), IndexConfig{}, nil)
		assert.Equal(t, domain.GenericMedicine, ix.records[10].Composition)
	})
}

func TestFindAlternatives_Scenarios(t *testing.T) {
	ctx := context.Background()

	t.Run("exact brand ranks identical composition first", func(t *testing.T) {
		ix := NewIndex(painkillers(), IndexConfig{TopN: 5, Cutoff: 0.6}, nil)

		result, err := ix.FindAlternatives(ctx, "Panadol", 5)
		require.NoError(t, err)

		assert.Equal(t, "Panadol", result.TargetBrand)
		require.Len(t, result.Alternatives, 2)

		top := result.Alternatives[0]
		assert.Equal(t, "Calpol", top.BrandName)
		assert.Equal(t, "Paracetamol 500mg", top.Formula)
		assert.Equal(t, domain.PriceUnavailable, top.Price)
		assert.Equal(t, "100.0%", top.MatchScore)

		assert.Equal(t, "Brufen", result.Alternatives[1].BrandName)
		assert.Equal(t, "60", result.Alternatives[1].Price)
		assert.Equal(t, "0.0%", result.Alternatives[1].MatchScore)
	})

	t.Run("empty dataset", func(t *testing.T) {
		ix := NewIndex(domain.EmptyCorpus(), IndexConfig{}, nil)

		result, err := ix.FindAlternatives(ctx, "Anything", 5)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrDatasetEmpty)

		msg, ok := domain.NoMatchMessage(err)
		assert.True(t, ok)
		assert.Equal(t, "Dataset is empty.", msg)
	})

	t.Run("implausible query", func(t *testing.T) {
		ix := NewIndex(painkillers(), IndexConfig{}, nil)

		result, err := ix.FindAlternatives(ctx, "Xyzzyxx123", 5)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrNoMatch)

		msg, ok := domain.NoMatchMessage(err)
		assert.True(t, ok)
		assert.Equal(t, "No similar medicine found.", msg)
	})

	t.Run("misspelled query resolves", func(t *testing.T) {
		ix := NewIndex(pharmacy(), IndexConfig{}, nil)

		result, err := ix.FindAlternatives(ctx, "Augmentn", 3)
		require.NoError(t, err)
		assert.Equal(t, "Augmentin", result.TargetBrand)
		assert.Equal(t, "Amoxil", result.Alternatives[0].BrandName)
	})
}

func TestFindAlternatives_Properties(t *testing.T) {
	ctx := context.Background()
	corpus := pharmacy()
	ix := NewIndex(corpus, IndexConfig{}, nil)

	for _, topN := range []int{1, 3, 5, 20} {
		for _, rec := range corpus.Records {
			t.Run(fmt.Sprintf("%s/top%d", rec.Name, topN), func(t *testing.T) {
				result, err := ix.FindAlternatives(ctx, rec.Name, topN)
				require.NoError(t, err)

				assert.Equal(t, rec.Name, result.TargetBrand, "exact name must match itself")
				assert.LessOrEqual(t, len(result.Alternatives), topN)
				assert.LessOrEqual(t, len(result.Alternatives), ix.Size()-1)

				prev := 101.0
				for _, alt := range result.Alternatives {
					assert.NotEqual(t, rec.Name, alt.BrandName, "target must be excluded")

					require.True(t, strings.HasSuffix(alt.MatchScore, "%"), alt.MatchScore)
					score, err := strconv.ParseFloat(strings.TrimSuffix(alt.MatchScore, "%"), 64)
					require.NoError(t, err)
					assert.GreaterOrEqual(t, score, 0.0)
					assert.LessOrEqual(t, score, 100.0)
					assert.LessOrEqual(t, score, prev, "scores must be descending")
					prev = score
				}
			})
		}
	}
}

func TestFindAlternatives_Idempotent(t *testing.T) {
	ix := NewIndex(pharmacy(), IndexConfig{}, nil)
	ctx := context.Background()

	first, err := ix.FindAlternatives(ctx, "Brufen", 4)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := ix.FindAlternatives(ctx, "Brufen", 4)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestFindAlternatives_DefaultTopN(t *testing.T) {
	ix := NewIndex(pharmacy(), IndexConfig{TopN: 2}, nil)

	for _, topN := range []int{0, -3} {
		result, err := ix.FindAlternatives(context.Background(), "Panadol", topN)
		require.NoError(t, err)
		assert.Len(t, result.Alternatives, 2)
	}
}

func TestFindAlternatives_DuplicateNames(t *testing.T) {
	corpus := &domain.Corpus{
		Records: []domain.Medicine{
			{Name: "Rigix", Composition: "Cetirizine 10mg"},
			{Name: "Zyrtec", Composition: "Cetirizine 10mg"},
			{Name: "Rigix", Composition: "Cetirizine 10mg"},
			{Name: "Brufen", Composition: "Ibuprofen 400mg"},
		},
	}
	ix := NewIndex(corpus, IndexConfig{}, nil)

	result, err := ix.FindAlternatives(context.Background(), "Rigix", 5)
	require.NoError(t, err)

	require.Len(t, result.Alternatives, 3)
	// first occurrence is the target; the later duplicate stays a candidate
	assert.Equal(t, "Zyrtec", result.Alternatives[0].BrandName)
	assert.Equal(t, "Rigix", result.Alternatives[1].BrandName)
	assert.Equal(t, "100.0%", result.Alternatives[1].MatchScore)
	assert.Equal(t, "Brufen", result.Alternatives[2].BrandName)
}

func TestFindAlternatives_TiesKeepCorpusOrder(t *testing.T) {
	corpus := &domain.Corpus{
		Records: []domain.Medicine{
			{Name: "Delta", Composition: "Loratadine 10mg"},
			{Name: "Alpha", Composition: "Loratadine 10mg"},
			{Name: "Charlie", Composition: "Loratadine 10mg"},
			{Name: "Bravo", Composition: "Loratadine 10mg"},
		},
	}
	ix := NewIndex(corpus, IndexConfig{}, nil)

	result, err := ix.FindAlternatives(context.Background(), "Charlie", 5)
	require.NoError(t, err)

	names := make([]string, 0, len(result.Alternatives))
	for _, alt := range result.Alternatives {
		names = append(names, alt.BrandName)
	}
	assert.Equal(t, []string{"Delta", "Alpha", "Bravo"}, names)
}

func TestFindAlternatives_SingleRecord(t *testing.T) {
	corpus := &domain.Corpus{Records: []domain.Medicine{{Name: "Panadol", Composition: "Paracetamol"}}}
	ix := NewIndex(corpus, IndexConfig{}, nil)

	result, err := ix.FindAlternatives(context.Background(), "Panadol", 5)
	require.NoError(t, err)
	assert.Equal(t, "Panadol", result.TargetBrand)
	assert.NotNil(t, result.Alternatives)
	assert.Empty(t, result.Alternatives)
}

func TestFindAlternatives_ContextCancelled(t *testing.T) {
	ix := NewIndex(painkillers(), IndexConfig{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ix.FindAlternatives(ctx, "Panadol", 5)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestFormatScore(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{1, "100.0%"},
		{0, "0.0%"},
		{0.87345, "87.3%"},
		{0.99999999, "100.0%"},
		{0.5, "50.0%"},
		{0.0004, "0.0%"},
	}

	for _, tt := range tests {
		if got := formatScore(tt.score); got != tt.want {
			t.Errorf("formatScore(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestFormatPercent_HalvesToEven(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{0.25, "0.2%"},
		{0.75, "0.8%"},
		{12.25, "12.2%"},
		{12.75, "12.8%"},
		{99.95, "100.0%"},
		{50.05, "50.0%"},
	}

	for _, tt := range tests {
		if got := formatPercent(tt.pct); got != tt.want {
			t.Errorf("formatPercent(%v) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}
