package token

import "regexp"

// Rule classifies the text at a scan position. Patterns are anchored and
// matched case-insensitively; the produced substring keeps its original
// casing.
type Rule struct {
	Name string
	re   *regexp.Regexp
}

// RuleSet is an ordered set of tokenization rules. Earlier rules win when
// more than one matches at the same position.
type RuleSet struct {
	rules []Rule
}

// emoticonExpr matches eyes, an optional nose, and a mouth glyph.
const emoticonExpr = `[:=;][oO\-]?[D\)\]\(/\\OpP]`

var (
	defaultRules = newRuleSet()
	emoticonRe   = regexp.MustCompile(`(?i)^(?:` + emoticonExpr + `)$`)
)

// Rules returns the shared rule set. It is built once at init and never
// mutated afterwards.
func Rules() *RuleSet { return defaultRules }

func newRuleSet() *RuleSet {
	mk := func(name, expr string) Rule {
		return Rule{Name: name, re: regexp.MustCompile(`(?i)^(?:` + expr + `)`)}
	}
	return &RuleSet{rules: []Rule{
		mk("emoticon", emoticonExpr),
		mk("tag", `<[^>]+>`),
		mk("mention", `@\w+`),
		mk("hashtag", `#+\w+[\w'\-]*\w+`),
		mk("url", `https?://(?:[a-z0-9]|[$-_@.&+]|[!*\(\),]|(?:%[0-9a-f][0-9a-f]))+`),
		mk("number", `(?:\d+,?)+(?:\.?\d+)?`),
		mk("word", `[a-z][a-z'\-_]+[a-z]`),
		mk("wordlike", `\w+`),
		mk("any", `[^\s]`),
	}}
}

// IsEmoticon reports whether tok is exactly one emoticon. Emoticons are
// exempt from case folding and punctuation filtering.
func IsEmoticon(tok string) bool { return emoticonRe.MatchString(tok) }
