package model

// Post is one search result from the provider. CreatedAt is passed through
// in the platform's own format (e.g. "Mon Jan 02 15:04:05 +0000 2006"); the
// store keeps it as text. Favorited/Retweeted are nil when the provider
// omitted them.
type Post struct {
	ID         int64
	ScreenName string
	CreatedAt  string
	Text       string
	Favorited  *bool
	Retweeted  *bool
}
