// Package tfidf provides a bounded-vocabulary TF-IDF vectorizer. It is fit
// once over the combined-text corpus of a dataset snapshot; queries are then
// projected into the same space for cosine-similarity scoring.
package tfidf

import (
	"errors"
	"math"
	"sort"
)

// ErrNotFitted is returned by Transform when the vectorizer has not been fit.
// Hitting it indicates an initialization-order bug, not a bad request.
var ErrNotFitted = errors.New("tfidf: vectorizer not fitted")

// Vectorizer maps texts to L2-normalized TF-IDF vectors over a vocabulary
// learned from a corpus. Fit must be called exactly once per dataset
// snapshot; refitting changes the vector space and invalidates any vectors
// produced earlier. After Fit the vectorizer is read-only and safe for
// concurrent Transform calls.
type Vectorizer struct {
	maxFeatures int
	vocab       map[string]int
	terms       []string
	idf         []float64
	docCount    int
	fitted      bool
}

// NewVectorizer creates a vectorizer whose vocabulary is capped at
// maxFeatures terms. maxFeatures <= 0 means no cap.
func NewVectorizer(maxFeatures int) *Vectorizer {
	return &Vectorizer{maxFeatures: maxFeatures}
}

// Fit learns the vocabulary and inverse document frequencies from corpus.
// When the corpus has more distinct terms than the cap, the most frequent
// terms by total occurrence are kept; ties break lexicographically so the
// vocabulary is deterministic for a given corpus.
func (v *Vectorizer) Fit(corpus []string) {
	df := make(map[string]int)
	total := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]bool)
		for _, term := range Tokenize(text) {
			total[term]++
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}

	terms := make([]string, 0, len(total))
	for term := range total {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if total[terms[i]] != total[terms[j]] {
			return total[terms[i]] > total[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if v.maxFeatures > 0 && len(terms) > v.maxFeatures {
		terms = terms[:v.maxFeatures]
	}
	sort.Strings(terms)

	v.terms = terms
	v.vocab = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	v.docCount = len(corpus)
	for i, term := range terms {
		v.vocab[term] = i
		// Smooth IDF: ln((1+N)/(1+df)) + 1. Keeps terms present in every
		// document at a positive weight instead of zeroing them out.
		v.idf[i] = math.Log(float64(1+v.docCount)/float64(1+df[term])) + 1
	}
	v.fitted = true
}

// FitTransform fits on corpus and returns its projection.
func (v *Vectorizer) FitTransform(corpus []string) [][]float64 {
	v.Fit(corpus)
	matrix, _ := v.Transform(corpus)
	return matrix
}

// Transform projects texts into the fitted vector space without altering the
// vocabulary. Terms outside the vocabulary are ignored. Rows are
// L2-normalized, so the inner product of two rows is their cosine similarity.
// Returns ErrNotFitted when called before Fit.
func (v *Vectorizer) Transform(texts []string) ([][]float64, error) {
	if !v.fitted {
		return nil, ErrNotFitted
	}
	matrix := make([][]float64, len(texts))
	for i, text := range texts {
		row := make([]float64, len(v.terms))
		for _, term := range Tokenize(text) {
			if j, ok := v.vocab[term]; ok {
				row[j] += v.idf[j]
			}
		}
		normalizeL2(row)
		matrix[i] = row
	}
	return matrix, nil
}

// VocabularySize returns the number of terms in the fitted vocabulary.
func (v *Vectorizer) VocabularySize() int {
	return len(v.terms)
}

// Fitted reports whether Fit has been called.
func (v *Vectorizer) Fitted() bool {
	return v.fitted
}

func normalizeL2(row []float64) {
	var sum float64
	for _, x := range row {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range row {
		row[i] /= norm
	}
}

// Cosine returns the cosine similarity of a and b. Zero-length or zero-norm
// inputs score 0.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
