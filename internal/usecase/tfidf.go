package usecase

import (
	"math"
	"sort"
)

// termWeight is one non-zero entry of a sparse vector
type termWeight struct {
	term   int
	weight float64
}

// SparseVector is an L2-normalised TF-IDF row with entries sorted by term id
type SparseVector []termWeight

// Dot returns the dot product of two sparse vectors.
// For L2-normalised vectors this is their cosine similarity.
func (v SparseVector) Dot(o SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v) && j < len(o) {
		switch {
		case v[i].term == o[j].term:
			sum += v[i].weight * o[j].weight
			i++
			j++
		case v[i].term < o[j].term:
			i++
		default:
			j++
		}
	}
	return sum
}

// TfidfVectorizer holds a vocabulary and smoothed IDF weights fitted once over a corpus
type TfidfVectorizer struct {
	vocabulary map[string]int
	idf        []float64
}

// FitTfidf builds the vocabulary from docs and computes idf(t) = ln((1+n)/(1+df)) + 1
func FitTfidf(docs []string) *TfidfVectorizer {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, tok := range tokenize(doc) {
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	n := float64(len(docs))
	v := &TfidfVectorizer{
		vocabulary: make(map[string]int, len(terms)),
		idf:        make([]float64, len(terms)),
	}
	for i, t := range terms {
		v.vocabulary[t] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}
	return v
}

// Transform weights raw term counts by idf and L2-normalises the result.
// Documents with no in-vocabulary terms yield an empty vector.
func (v *TfidfVectorizer) Transform(doc string) SparseVector {
	counts := make(map[int]int)
	for _, tok := range tokenize(doc) {
		if id, ok := v.vocabulary[tok]; ok {
			counts[id]++
		}
	}

	vec := make(SparseVector, 0, len(counts))
	var norm float64
	for id, c := range counts {
		w := float64(c) * v.idf[id]
		vec = append(vec, termWeight{term: id, weight: w})
		norm += w * w
	}
	if norm == 0 {
		return SparseVector{}
	}

	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i].weight /= norm
	}
	sort.Slice(vec, func(i, j int) bool { return vec[i].term < vec[j].term })
	return vec
}

// TransformAll transforms every document, preserving order
func (v *TfidfVectorizer) TransformAll(docs []string) []SparseVector {
	out := make([]SparseVector, len(docs))
	for i, d := range docs {
		out[i] = v.Transform(d)
	}
	return out
}

// VocabularySize returns the number of distinct terms
func (v *TfidfVectorizer) VocabularySize() int {
	return len(v.vocabulary)
}

// idfOf returns the weight of term, if it is in the vocabulary
func (v *TfidfVectorizer) idfOf(term string) (float64, bool) {
	id, ok := v.vocabulary[term]
	if !ok {
		return 0, false
	}
	return v.idf[id], true
}
