package pipeline

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"tweetdig/internal/model"
	"tweetdig/internal/store/tweetdb"
)

type fakeProvider struct {
	posts   []model.Post
	authErr error
	findErr error
}

func (f *fakeProvider) Authenticate(ctx context.Context) error { return f.authErr }

func (f *fakeProvider) Search(ctx context.Context, query string, count int) ([]model.Post, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.posts, nil
}

func boolp(v bool) *bool { return &v }

func openStore(t *testing.T) *tweetdb.DB {
	t.Helper()
	db, err := tweetdb.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.EnsureSchema(context.Background()); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestRunEndToEnd(t *testing.T) {
	posts := []model.Post{
		{ID: 1, ScreenName: "a", CreatedAt: "d1", Text: "go go go", Favorited: boolp(true), Retweeted: boolp(false)},
		{ID: 2, ScreenName: "b", CreatedAt: "d2", Text: "hello world :D"},
		{ID: 3, ScreenName: "c", CreatedAt: "d3", Text: "numbers 1,000.5 here"},
	}
	db := openStore(t)
	var out bytes.Buffer
	d := &Driver{Provider: &fakeProvider{posts: posts}, Store: db, FoldCase: true, Out: &out}

	sum, err := d.Run(context.Background(), "q", 10)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Stage != StageDone {
		t.Fatalf("stage %s, want done", sum.Stage)
	}
	if sum.Fetched != 3 || sum.Mapped != 3 || sum.Stored != 3 || len(sum.Failed) != 0 {
		t.Fatalf("summary mismatch: %+v", sum)
	}

	rows, err := db.LoadAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	byID := map[int64]tweetdb.Record{}
	for _, r := range rows {
		byID[r.ID] = r
	}
	r1 := byID[1]
	if r1.User != "a" || r1.Tweet != "go go go" || r1.Favorite == nil || *r1.Favorite != 1 || r1.Retweet == nil || *r1.Retweet != 0 {
		t.Fatalf("row 1 mismatch: %+v", r1)
	}
	if byID[2].Favorite != nil {
		t.Fatalf("row 2 favorite should be NULL: %+v", byID[2])
	}

	report := out.String()
	for _, want := range []string{"@a", "most common: go", "hello world", ":D"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestRunProviderAuthFailureAborts(t *testing.T) {
	db := openStore(t)
	d := &Driver{
		Provider: &fakeProvider{authErr: model.ErrProvider},
		Store:    db,
		Out:      &bytes.Buffer{},
	}
	sum, err := d.Run(context.Background(), "q", 10)
	if !errors.Is(err, model.ErrProvider) {
		t.Fatalf("got %v, want ErrProvider", err)
	}
	if sum.Stage != StageIdle {
		t.Fatalf("stage %s, want idle", sum.Stage)
	}
	n, err := db.CountTweets(context.Background())
	if err != nil || n != 0 {
		t.Fatalf("nothing may be persisted after auth failure: %d, %v", n, err)
	}
}

func TestRunFetchFailureAborts(t *testing.T) {
	db := openStore(t)
	d := &Driver{
		Provider: &fakeProvider{findErr: model.ErrProvider},
		Store:    db,
		Out:      &bytes.Buffer{},
	}
	sum, err := d.Run(context.Background(), "q", 10)
	if !errors.Is(err, model.ErrProvider) {
		t.Fatalf("got %v, want ErrProvider", err)
	}
	if sum.Stage != StageAuthenticated {
		t.Fatalf("stage %s, want authenticated", sum.Stage)
	}
}

func TestRunSkipsBadPostsAndContinues(t *testing.T) {
	posts := []model.Post{
		{ID: 1, ScreenName: "", CreatedAt: "d", Text: "missing screen name"},
		{ID: 2, ScreenName: "ok", CreatedAt: "d", Text: "fine tweet"},
	}
	db := openStore(t)
	d := &Driver{Provider: &fakeProvider{posts: posts}, Store: db, FoldCase: true, Out: &bytes.Buffer{}}
	sum, err := d.Run(context.Background(), "q", 10)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Stored != 1 || len(sum.Failed) != 1 || sum.Failed[0].ID != 1 {
		t.Fatalf("summary mismatch: %+v", sum)
	}
	if ids := sum.FailedIDs(); len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("failed ids: %v", ids)
	}
}

func TestRunDuplicateIsPerRecord(t *testing.T) {
	db := openStore(t)
	if err := db.InsertOne(context.Background(), tweetdb.Record{ID: 5, User: "u", CreateDate: "d", Tweet: "old"}); err != nil {
		t.Fatal(err)
	}
	posts := []model.Post{
		{ID: 5, ScreenName: "u", CreatedAt: "d", Text: "dup"},
		{ID: 6, ScreenName: "u", CreatedAt: "d", Text: "new"},
	}
	d := &Driver{Provider: &fakeProvider{posts: posts}, Store: db, Out: &bytes.Buffer{}}
	sum, err := d.Run(context.Background(), "q", 10)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Stored != 1 {
		t.Fatalf("stored %d, want 1", sum.Stored)
	}
	if len(sum.Failed) != 1 || !errors.Is(sum.Failed[0].Err, tweetdb.ErrDuplicateKey) {
		t.Fatalf("failed: %+v, want one duplicate", sum.Failed)
	}
	if sum.HasFatal() {
		t.Fatal("duplicate must not count as fatal")
	}
}
