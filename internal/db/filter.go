package db

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/toeirei/contactbook/internal/model"
)

// maxTypoDistance is the largest edit distance at which a token still counts
// as a match for a word of the contact's name.
const maxTypoDistance = 2

// FilterContactsByTokens returns the subset of `contacts` that match all tokens.
// Matching is case-insensitive and tests name and phone for substring
// containment. A token of four or more characters also matches a word of the
// name within maxTypoDistance edits. If `tokens` is nil or empty, the
// original slice is returned.
func FilterContactsByTokens(contacts []model.Contact, tokens []string) []model.Contact {
	if len(tokens) == 0 {
		return contacts
	}
	out := make([]model.Contact, 0, len(contacts))
	for _, c := range contacts {
		name := strings.ToLower(c.Name)
		phone := strings.ToLower(c.Phone)
		words := strings.Fields(name)

		matchedAll := true
		for _, tok := range tokens {
			tok = strings.ToLower(strings.TrimSpace(tok))
			if tok == "" {
				continue
			}
			if strings.Contains(name, tok) || strings.Contains(phone, tok) {
				continue
			}
			if !fuzzyWordMatch(words, tok) {
				matchedAll = false
				break
			}
		}
		if matchedAll {
			out = append(out, c)
		}
	}
	return out
}

func fuzzyWordMatch(words []string, tok string) bool {
	if len([]rune(tok)) < 4 {
		return false
	}
	for _, w := range words {
		if levenshtein.ComputeDistance(w, tok) <= maxTypoDistance {
			return true
		}
	}
	return false
}
