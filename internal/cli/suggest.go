// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// suggest.go - Typo correction for flags and config keys.
package cli

import (
	"strings"
)

// Suggest returns the candidate closest to input, or "" when nothing is
// close enough to be a likely typo.
func Suggest(input string, candidates []string) string {
	input = strings.ToLower(input)

	// Very short inputs are usually intentional.
	if len(input) < 2 {
		return ""
	}

	// Allow one edit for short names, two from four characters (catches
	// transpositions like "ponits") and three past eight.
	maxDistance := 1
	if len(input) >= 4 {
		maxDistance = 2
	}
	if len(input) > 8 {
		maxDistance = 3
	}

	bestMatch := ""
	bestDistance := -1
	for _, c := range candidates {
		distance := levenshteinDistance(input, strings.ToLower(c))
		if distance == 0 {
			return ""
		}
		if distance <= maxDistance && (bestDistance == -1 || distance < bestDistance) {
			bestDistance = distance
			bestMatch = c
		}
	}
	return bestMatch
}

// SuggestFlag suggests a known flag name for a mistyped one.
func SuggestFlag(name string) string {
	known := make([]string, 0, len(boolFlagNames)+len(stringFlagNames))
	known = append(known, boolFlagNames...)
	known = append(known, stringFlagNames...)
	return Suggest(name, known)
}

// levenshteinDistance is the minimum number of single-character insertions,
// deletions or substitutions that turn s1 into s2.
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	rows := len(s1) + 1
	cols := len(s2) + 1

	// Two rows instead of the full matrix.
	prev := make([]int, cols)
	curr := make([]int, cols)
	for j := 0; j < cols; j++ {
		prev[j] = j
	}

	for i := 1; i < rows; i++ {
		curr[0] = i
		for j := 1; j < cols; j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[cols-1]
}
