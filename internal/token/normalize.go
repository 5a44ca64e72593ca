package token

import (
	"slices"
	"strings"
	"unicode"
)

// Normalize returns a new slice with the same length and order where each
// token is lowercased, unless foldCase is off or the token is exactly an
// emoticon (":D" must not become ":d").
func Normalize(tokens []string, foldCase bool) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		if foldCase && !IsEmoticon(tok) {
			out[i] = strings.ToLower(tok)
		} else {
			out[i] = tok
		}
	}
	return out
}

// FilterInvalid returns the tokens that carry no punctuation character.
// Emoticons pass even though their glyphs are punctuation. The input is
// never mutated: filtering walks a snapshot and builds a fresh slice, so
// adjacent invalid tokens are all dropped.
func FilterInvalid(tokens []string) []string {
	snap := slices.Clone(tokens)
	out := make([]string, 0, len(snap))
	for _, tok := range snap {
		if IsEmoticon(tok) || !containsPunct(tok) {
			out = append(out, tok)
		}
	}
	return out
}

func containsPunct(s string) bool {
	return strings.ContainsFunc(s, unicode.IsPunct)
}
