// Package guess implements name matching for collection claims.
//
// Matching is whole-word and case-folded: the guess text is split on
// whitespace and each piece is compared against the whitespace-delimited
// parts of the character's name and aliases. Pieces of length 2 or less
// never match, so guessing "a" against "Aria the Ancient" stays a miss.
package guess

import "strings"

// minWordLength is the shortest guess word eligible for matching.
const minWordLength = 3

// Matches reports whether the guess text names the character. name is the
// character's display name; aliases holds newline-separated alternate names
// and may be empty.
func Matches(guessText, name, aliases string) bool {
	parts := nameParts(name, aliases)
	if len(parts) == 0 {
		return false
	}

	for _, word := range strings.Fields(guessText) {
		if len(word) < minWordLength {
			continue
		}
		for _, part := range parts {
			if strings.EqualFold(word, part) {
				return true
			}
		}
	}

	return false
}

// nameParts splits the name and each alias line into whitespace-delimited
// words. Parts shorter than the minimum never match, so they are dropped
// up front.
func nameParts(name, aliases string) []string {
	var parts []string
	for _, word := range strings.Fields(name) {
		if len(word) >= minWordLength {
			parts = append(parts, word)
		}
	}

	if aliases != "" {
		for _, line := range strings.Split(aliases, "\n") {
			for _, word := range strings.Fields(line) {
				if len(word) >= minWordLength {
					parts = append(parts, word)
				}
			}
		}
	}

	return parts
}
