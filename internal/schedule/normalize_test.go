// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package schedule

import "testing"

func TestNormalizeSeries(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain title", "新聞龍捲風", "新聞龍捲風"},
		{"episode marker", "戲說台灣#12", "戲說台灣"},
		{"fullwidth marker", "戲說台灣＃12", "戲說台灣"},
		{"marker with space", "戲說台灣 #7", "戲說台灣"},
		{"ordinal episode", "風水世家第88集", "風水世家"},
		{"ordinal season", "超級夜總會第2季", "超級夜總會"},
		{"ordinal part", "大時代第3部", "大時代"},
		{"orphan hash", "炮仔聲#", "炮仔聲"},
		{"stacked markers", "炮仔聲#1#2", "炮仔聲"},
		{"marker then ordinal", "炮仔聲第5集#3", "炮仔聲"},
		{"surrounding space", "  炮仔聲#4  ", "炮仔聲"},
		{"empty", "", ""},
		{"latin title", "News at Nine #3", "News at Nine"},
		{"digits inside title kept", "2分之一強#10", "2分之一強"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSeries(tt.input); got != tt.want {
				t.Errorf("NormalizeSeries(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Normalizing twice must equal normalizing once, including for inputs
// that need several stripping rounds.
func TestNormalizeSeriesIdempotent(t *testing.T) {
	inputs := []string{
		"戲說台灣#12",
		"炮仔聲#1#2",
		"風水世家第88集#4",
		"超級夜總會 #",
		"大時代第3部第2集",
		"News #1 #2",
	}
	for _, in := range inputs {
		once := NormalizeSeries(in)
		twice := NormalizeSeries(once)
		if once != twice {
			t.Errorf("NormalizeSeries not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestDeriveSeries(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"戲說台灣 第 12 集", "戲說台灣"},
		{"風水世家 88", "風水世家"},
		{"炮仔聲#2", "炮仔聲"},
		{"新聞龍捲風", "新聞龍捲風"},
	}
	for _, tt := range tests {
		if got := DeriveSeries(tt.input); got != tt.want {
			t.Errorf("DeriveSeries(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
