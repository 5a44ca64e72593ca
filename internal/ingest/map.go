// Package ingest converts provider posts into the row shape the store
// persists.
package ingest

import (
	"errors"
	"fmt"

	"tweetdig/internal/model"
	"tweetdig/internal/store/tweetdb"
)

// ErrMissingField is returned when a post lacks a field the schema marks
// NOT NULL.
var ErrMissingField = errors.New("missing required field")

// MapPost converts one post into a Record. Pure: no I/O, no mutation of p.
// Boolean flags are coerced to 0/1; unknown flags stay nil and persist as
// NULL.
func MapPost(p model.Post) (tweetdb.Record, error) {
	var rec tweetdb.Record
	switch {
	case p.ID == 0:
		return rec, fmt.Errorf("post id: %w", ErrMissingField)
	case p.ScreenName == "":
		return rec, fmt.Errorf("post %d: screen name: %w", p.ID, ErrMissingField)
	case p.CreatedAt == "":
		return rec, fmt.Errorf("post %d: created at: %w", p.ID, ErrMissingField)
	case p.Text == "":
		return rec, fmt.Errorf("post %d: text: %w", p.ID, ErrMissingField)
	}
	rec = tweetdb.Record{
		ID:         p.ID,
		User:       p.ScreenName,
		CreateDate: p.CreatedAt,
		Tweet:      p.Text,
		Favorite:   boolToInt(p.Favorited),
		Retweet:    boolToInt(p.Retweeted),
	}
	return rec, nil
}

func boolToInt(b *bool) *int64 {
	if b == nil {
		return nil
	}
	v := int64(0)
	if *b {
		v = 1
	}
	return &v
}
