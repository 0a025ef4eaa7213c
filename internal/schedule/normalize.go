// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package schedule

import (
	"regexp"
	"strings"
)

var (
	// episodeMarkerRe matches a trailing "#7" / "＃12" episode marker.
	episodeMarkerRe = regexp.MustCompile(`[#＃]\s*\d+$`)

	// ordinalSuffixRe matches trailing "第7集" / "第2季" / "第3部" suffixes.
	ordinalSuffixRe = regexp.MustCompile(`第\s*\d+\s*(集|季|部)$`)

	// trailingHashRe matches a single orphan "#" left at the end.
	trailingHashRe = regexp.MustCompile(`[#＃]$`)

	// episodeRunRe matches the trailing run of ordinal characters, digits
	// and whitespace that schedule vendors append to titles.
	episodeRunRe = regexp.MustCompile(`[第集季部\s\d]+$`)

	widthFold = strings.NewReplacer("＃", "#", "：", ":")
)

// NormalizeSeries strips episode markers, season/episode ordinal suffixes and
// trailing punctuation from a program title, yielding the series key used to
// join the schedule and ratings tables.
//
// The normalization is idempotent: stripping repeats until a fixed point, so
// titles carrying several stacked markers ("劇名#1#2") collapse the same way
// whether normalized once or twice.
func NormalizeSeries(s string) string {
	s = widthFold.Replace(strings.TrimSpace(s))
	for {
		next := normalizeOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

func normalizeOnce(s string) string {
	s = episodeMarkerRe.ReplaceAllString(s, "")
	s = ordinalSuffixRe.ReplaceAllString(s, "")
	s = trailingHashRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// DeriveSeries produces the series key for a raw program title. On top of
// NormalizeSeries it drops the trailing run of ordinal/digit characters that
// raw titles carry ("戲說台灣 第 12 集" -> "戲說台灣").
func DeriveSeries(title string) string {
	return NormalizeSeries(episodeRunRe.ReplaceAllString(title, ""))
}
