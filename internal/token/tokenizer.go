package token

import (
	"iter"
	"unicode"
	"unicode/utf8"
)

// Scan returns a lazy token sequence over s. The sequence is finite and
// restartable: every range over it rescans from the start of s. Whitespace
// between tokens is skipped; everything else is claimed by some rule (the
// final rule matches any single non-space rune), so the scan covers the
// whole input.
func (rs *RuleSet) Scan(s string) iter.Seq[string] {
	return func(yield func(string) bool) {
		i := 0
		for i < len(s) {
			r, size := utf8.DecodeRuneInString(s[i:])
			if unicode.IsSpace(r) {
				i += size
				continue
			}
			tok := rs.matchAt(s[i:])
			if tok == "" {
				tok = s[i : i+size]
			}
			if !yield(tok) {
				return
			}
			i += len(tok)
		}
	}
}

func (rs *RuleSet) matchAt(s string) string {
	for _, r := range rs.rules {
		if m := r.re.FindString(s); m != "" {
			return m
		}
	}
	return ""
}

// Tokenize collects the scan of s into a slice.
func (rs *RuleSet) Tokenize(s string) []string {
	var out []string
	for tok := range rs.Scan(s) {
		out = append(out, tok)
	}
	return out
}
