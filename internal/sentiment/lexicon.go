package sentiment

import (
	"context"

	"tweetdig/internal/token"
)

// Lexicon scores polarity from small positive/negative word lists. It needs
// no network or credentials, which makes it the default concrete provider.
type Lexicon struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

var positiveWords = []string{
	"good", "great", "awesome", "amazing", "love", "loved", "like", "likes",
	"excellent", "happy", "best", "fantastic", "wonderful", "cool", "nice",
	"win", "winning", "beautiful", "fun", "brilliant", "perfect", "thanks",
	"thank", "glad", "excited", "enjoy", "enjoyed", "superb", "yay",
}

var negativeWords = []string{
	"bad", "terrible", "awful", "hate", "hated", "worst", "sad", "angry",
	"horrible", "poor", "fail", "failed", "failing", "broken", "ugly",
	"boring", "annoying", "disappointed", "disappointing", "wrong", "lose",
	"losing", "lost", "sucks", "suck", "crap", "mess", "scam", "ugh",
}

func NewLexicon() *Lexicon {
	l := &Lexicon{
		positive: make(map[string]struct{}, len(positiveWords)),
		negative: make(map[string]struct{}, len(negativeWords)),
	}
	for _, w := range positiveWords {
		l.positive[w] = struct{}{}
	}
	for _, w := range negativeWords {
		l.negative[w] = struct{}{}
	}
	return l
}

func (l *Lexicon) Name() string { return "lexicon" }

// Score counts polar words among case-folded tokens and returns
// (pos-neg)/(pos+neg). Text without polar words scores 0.
func (l *Lexicon) Score(_ context.Context, text string) (float64, error) {
	toks := token.Normalize(token.Rules().Tokenize(text), true)
	var pos, neg int
	for _, tok := range toks {
		if _, ok := l.positive[tok]; ok {
			pos++
		}
		if _, ok := l.negative[tok]; ok {
			neg++
		}
	}
	if pos+neg == 0 {
		return 0, nil
	}
	return clamp(float64(pos-neg) / float64(pos+neg)), nil
}
