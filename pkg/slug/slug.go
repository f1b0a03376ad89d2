// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug canonicalizes free-form labels into ASCII tokens.
//
// Vocabulary labels arrive from clients and catalog rows in many spellings
// ("Off-Dry", "off dry", "OFF_DRY"). Token folds all of them to "off_dry" so
// lookups into the closed vocabulary tables are exact map hits.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// separators matches any run of characters that are not letters or digits.
var separators = regexp.MustCompile(`[^a-z0-9]+`)

// Token converts an arbitrary Unicode label into a lowercase ASCII token
// whose words are joined by underscores.
//
//	slug.Token("Off-Dry")      // "off_dry"
//	slug.Token(" Rosé ")       // "rose"
//	slug.Token("stone fruit")  // "stone_fruit"
func Token(s string) string {
	return join(s, "_")
}

func join(s, separator string) string {
	// Chained transformers hold state, so each call builds its own (é → e)
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(stripMarks, s)
	if err != nil {
		result = s
	}
	result = separators.ReplaceAllString(strings.ToLower(result), separator)
	return strings.Trim(result, separator)
}
