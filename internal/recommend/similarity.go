// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package recommend

import (
	"math"
	"sort"

	"github.com/airtime-analytics/airtime/internal/schedule"
)

// Segmenter tokenizes a title into words. Installing one (SetSegmenter)
// switches the vectorizer to word-level TF-IDF; without one it silently
// falls back to character bigrams/trigrams, which need no dictionary and
// work for CJK titles.
type Segmenter func(string) []string

var segmenter Segmenter

// SetSegmenter installs an optional word segmenter. Pass nil to restore the
// character n-gram fallback.
func SetSegmenter(s Segmenter) { segmenter = s }

// CatalogEntry is one distinct series with its occurrence count.
type CatalogEntry struct {
	Series string `json:"series"`
	N      int    `json:"n"`
}

// Vectorizer is a fitted TF-IDF model over the series catalog.
type Vectorizer struct {
	analyze     func(string) []string
	vocab       map[string]int
	idf         []float64
	maxFeatures int
}

// NewVectorizer selects the best available analyzer: the installed segmenter
// when present, character 2/3-grams otherwise. The fallback is silent; both
// backends expose the same interface.
func NewVectorizer(maxFeatures int) *Vectorizer {
	analyze := charNGrams
	if seg := segmenter; seg != nil {
		analyze = func(doc string) []string { return seg(doc) }
	}
	return &Vectorizer{
		analyze:     analyze,
		maxFeatures: maxFeatures,
	}
}

// charNGrams emits character bigrams and trigrams over the runes of doc.
func charNGrams(doc string) []string {
	runes := []rune(doc)
	var grams []string
	for n := 2; n <= 3; n++ {
		for i := 0; i+n <= len(runes); i++ {
			grams = append(grams, string(runes[i:i+n]))
		}
	}
	return grams
}

// Fit learns the vocabulary and inverse document frequencies from the
// catalog titles. When the vocabulary exceeds maxFeatures, the most frequent
// terms across the corpus are kept.
func (v *Vectorizer) Fit(docs []string) {
	df := make(map[string]int)
	tf := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range v.analyze(doc) {
			tf[term]++
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				df[term]++
			}
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if tf[terms[i]] != tf[terms[j]] {
			return tf[terms[i]] > tf[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if v.maxFeatures > 0 && len(terms) > v.maxFeatures {
		terms = terms[:v.maxFeatures]
	}

	v.vocab = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	n := float64(len(docs))
	for i, term := range terms {
		v.vocab[term] = i
		// Smoothed IDF, so terms present in every document keep a small
		// positive weight instead of vanishing.
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
}

// Transform maps a document to its L2-normalized sparse TF-IDF vector.
func (v *Vectorizer) Transform(doc string) map[int]float64 {
	counts := make(map[int]float64)
	for _, term := range v.analyze(doc) {
		if idx, ok := v.vocab[term]; ok {
			counts[idx]++
		}
	}

	var norm float64
	for idx, c := range counts {
		w := c * v.idf[idx]
		counts[idx] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range counts {
			counts[idx] /= norm
		}
	}
	return counts
}

// SimilarityIndex answers top-K cosine similarity queries over the series
// catalog. It is rebuilt per dataset, never persisted.
type SimilarityIndex struct {
	catalog []CatalogEntry
	rows    []map[int]float64
	lookup  map[string]int
}

// BuildSimilarityIndex vectorizes the distinct series of the full schedule,
// unwindowed. Occurrence counts ride along for diagnostics.
func BuildSimilarityIndex(slots []schedule.Slot, maxFeatures int) *SimilarityIndex {
	counts := make(map[string]int)
	for _, s := range slots {
		counts[s.Series]++
	}
	catalog := make([]CatalogEntry, 0, len(counts))
	for series, n := range counts {
		catalog = append(catalog, CatalogEntry{Series: series, N: n})
	}
	sort.Slice(catalog, func(i, j int) bool { return catalog[i].Series < catalog[j].Series })

	docs := make([]string, len(catalog))
	for i, e := range catalog {
		docs[i] = e.Series
	}

	vec := NewVectorizer(maxFeatures)
	vec.Fit(docs)

	idx := &SimilarityIndex{
		catalog: catalog,
		rows:    make([]map[int]float64, len(docs)),
		lookup:  make(map[string]int, len(docs)),
	}
	for i, doc := range docs {
		idx.rows[i] = vec.Transform(doc)
		idx.lookup[doc] = i
	}
	return idx
}

// Catalog returns the distinct series with their occurrence counts.
func (idx *SimilarityIndex) Catalog() []CatalogEntry {
	return idx.catalog
}

// Similar returns up to topK catalog series most similar to seed, excluding
// the seed itself. An unknown seed yields an empty result, not an error.
func (idx *SimilarityIndex) Similar(seed string, topK int) []SimilarEntry {
	i, ok := idx.lookup[seed]
	if !ok {
		return nil
	}
	seedVec := idx.rows[i]

	results := make([]SimilarEntry, 0, len(idx.catalog))
	for j, row := range idx.rows {
		if j == i {
			continue
		}
		results = append(results, SimilarEntry{
			Series: idx.catalog[j].Series,
			Score:  dotSparse(seedVec, row),
		})
	}
	sort.SliceStable(results, func(a, b int) bool {
		if results[a].Score != results[b].Score {
			return results[a].Score > results[b].Score
		}
		return results[a].Series < results[b].Series
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

// dotSparse is the cosine similarity of two L2-normalized sparse vectors.
func dotSparse(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for idx, av := range a {
		if bv, ok := b[idx]; ok {
			sum += av * bv
		}
	}
	return sum
}
