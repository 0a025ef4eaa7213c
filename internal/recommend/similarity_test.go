// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package recommend

import (
	"math"
	"strings"
	"testing"

	"github.com/airtime-analytics/airtime/internal/schedule"
)

func buildTestSimIndex(titles ...string) *SimilarityIndex {
	slots := make([]schedule.Slot, len(titles))
	for i, title := range titles {
		slots[i] = mkSlot("2024-03-04", 19, title)
	}
	return BuildSimilarityIndex(slots, 8000)
}

func TestSimilarPrefersSharedCharacters(t *testing.T) {
	idx := buildTestSimIndex("戲說台灣", "戲說人生", "晨間新聞")

	results := idx.Similar("戲說台灣", 10)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Series != "戲說人生" {
		t.Errorf("top result = %q, want 戲說人生", results[0].Series)
	}
	if results[0].Score <= results[1].Score {
		t.Errorf("shared-prefix score %f not above disjoint score %f", results[0].Score, results[1].Score)
	}
}

func TestSimilarExcludesSeed(t *testing.T) {
	idx := buildTestSimIndex("戲說台灣", "戲說人生")
	for _, r := range idx.Similar("戲說台灣", 10) {
		if r.Series == "戲說台灣" {
			t.Error("seed series present in its own results")
		}
	}
}

func TestSimilarUnknownSeed(t *testing.T) {
	idx := buildTestSimIndex("戲說台灣")
	if got := idx.Similar("不存在", 10); got != nil {
		t.Errorf("unknown seed results = %v, want nil", got)
	}
}

// Cosine is symmetric, so A's score for B must equal B's for A.
func TestSimilarSymmetry(t *testing.T) {
	idx := buildTestSimIndex("戲說台灣", "戲說人生", "晨間新聞")

	scoreFor := func(seed, other string) float64 {
		for _, r := range idx.Similar(seed, 10) {
			if r.Series == other {
				return r.Score
			}
		}
		t.Fatalf("%s missing from %s's results", other, seed)
		return 0
	}

	ab := scoreFor("戲說台灣", "戲說人生")
	ba := scoreFor("戲說人生", "戲說台灣")
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("similarity asymmetric: %f vs %f", ab, ba)
	}
}

func TestSimilarTopK(t *testing.T) {
	idx := buildTestSimIndex("節目甲", "節目乙", "節目丙", "節目丁")
	if got := idx.Similar("節目甲", 2); len(got) != 2 {
		t.Errorf("got %d results, want 2", len(got))
	}
}

func TestTransformL2Normalized(t *testing.T) {
	v := NewVectorizer(8000)
	v.Fit([]string{"戲說台灣", "晨間新聞"})

	vec := v.Transform("戲說台灣")
	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	if math.Abs(norm-1.0) > 1e-9 {
		t.Errorf("squared norm = %f, want 1", norm)
	}
}

func TestVectorizerMaxFeatures(t *testing.T) {
	v := NewVectorizer(3)
	v.Fit([]string{"abcdef", "bcdefg", "cdefgh"})
	if len(v.vocab) != 3 {
		t.Errorf("vocab size = %d, want 3", len(v.vocab))
	}
}

func TestSegmenterHook(t *testing.T) {
	SetSegmenter(func(doc string) []string { return strings.Split(doc, " ") })
	defer SetSegmenter(nil)

	v := NewVectorizer(8000)
	v.Fit([]string{"evening news", "morning news"})

	vec := v.Transform("evening news")
	if len(vec) != 2 {
		t.Errorf("word-segmented vector has %d terms, want 2", len(vec))
	}
}

func TestCharNGrams(t *testing.T) {
	grams := charNGrams("abc")
	// Bigrams: ab, bc. Trigrams: abc.
	want := map[string]bool{"ab": true, "bc": true, "abc": true}
	if len(grams) != 3 {
		t.Fatalf("got %d grams %v, want 3", len(grams), grams)
	}
	for _, g := range grams {
		if !want[g] {
			t.Errorf("unexpected gram %q", g)
		}
	}
}
