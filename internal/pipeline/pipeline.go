// Package pipeline orchestrates one search-and-ingest run:
// authenticate, fetch, map, tokenize/analyze, persist. Single pass, no
// retries; a stage failure stops the run at that stage.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"tweetdig/internal/analyze"
	"tweetdig/internal/ingest"
	"tweetdig/internal/logging"
	"tweetdig/internal/metrics"
	"tweetdig/internal/model"
	"tweetdig/internal/sentiment"
	"tweetdig/internal/store/tweetdb"
	"tweetdig/internal/token"
	"tweetdig/internal/xclient"
)

// Stage names the pipeline state reached so far.
type Stage string

const (
	StageIdle          Stage = "idle"
	StageAuthenticated Stage = "authenticated"
	StageFetched       Stage = "fetched"
	StageMapped        Stage = "mapped"
	StageAnalyzed      Stage = "analyzed"
	StagePersisted     Stage = "persisted"
	StageDone          Stage = "done"
)

// RecordError is a per-post failure that did not abort the batch.
type RecordError struct {
	ID  int64
	Err error
}

// Summary reports what one run did.
type Summary struct {
	Stage   Stage
	Fetched int
	Mapped  int
	Stored  int
	Failed  []RecordError
}

// Driver wires the run's collaborators. Store must be open with its schema
// ensured; the caller owns the handle and closes it on every exit path.
type Driver struct {
	Provider xclient.Provider
	Store    *tweetdb.DB
	// Scorer is optional; nil disables the sentiment stage.
	Scorer   sentiment.Scorer
	FoldCase bool
	// Out receives the per-post report; defaults to stdout.
	Out io.Writer
}

// Run executes the full pipeline for one query. Provider failures abort the
// run; per-post mapping and analysis failures are collected in the summary
// and the batch continues.
func (d *Driver) Run(ctx context.Context, query string, count int) (Summary, error) {
	sum := Summary{Stage: StageIdle}
	out := d.Out
	if out == nil {
		out = os.Stdout
	}
	start := time.Now()
	metrics.Runs.Inc()

	if err := d.Provider.Authenticate(ctx); err != nil {
		metrics.RunErrors.Inc()
		return sum, fmt.Errorf("authenticate: %w", err)
	}
	sum.Stage = StageAuthenticated

	posts, err := d.Provider.Search(ctx, query, count)
	if err != nil {
		metrics.RunErrors.Inc()
		return sum, fmt.Errorf("fetch %q: %w", query, err)
	}
	sum.Stage = StageFetched
	sum.Fetched = len(posts)
	metrics.PostsFetched.Add(float64(len(posts)))
	logging.Info("fetched", map[string]any{"query": query, "posts": len(posts)})

	mapped := make([]model.Post, 0, len(posts))
	records := make([]tweetdb.Record, 0, len(posts))
	for _, p := range posts {
		rec, err := ingest.MapPost(p)
		if err != nil {
			sum.Failed = append(sum.Failed, RecordError{ID: p.ID, Err: err})
			logging.Warn("map_post_failed", map[string]any{"id": p.ID, "error": err.Error()})
			continue
		}
		mapped = append(mapped, p)
		records = append(records, rec)
		sum.Mapped++
	}
	sum.Stage = StageMapped

	rules := token.Rules()
	for _, p := range mapped {
		normalized := token.Normalize(rules.Tokenize(p.Text), d.FoldCase)
		filtered := token.FilterInvalid(normalized)

		fmt.Fprintln(out, "==================================")
		fmt.Fprintf(out, "@%s\n", p.ScreenName)
		fmt.Fprintln(out, p.Text)
		fmt.Fprintf(out, "tokens: %q\n", normalized)
		fmt.Fprintf(out, "filtered: %s\n", strings.Join(filtered, " "))

		top, err := analyze.MostFrequent(filtered)
		if err != nil {
			// Empty sequence: reported against the post, batch continues.
			sum.Failed = append(sum.Failed, RecordError{ID: p.ID, Err: err})
			logging.Warn("analyze_failed", map[string]any{"id": p.ID, "error": err.Error()})
		} else {
			fmt.Fprintf(out, "most common: %s\n", top)
		}
		if d.Scorer != nil {
			score, err := d.Scorer.Score(ctx, p.Text)
			if err != nil {
				sum.Failed = append(sum.Failed, RecordError{ID: p.ID, Err: err})
				logging.Warn("sentiment_failed", map[string]any{"id": p.ID, "error": err.Error()})
			} else {
				fmt.Fprintf(out, "sentiment(%s): %+.2f\n", d.Scorer.Name(), score)
			}
		}
	}
	sum.Stage = StageAnalyzed

	results, err := d.Store.InsertMany(ctx, records)
	if err != nil {
		// Only a dead connection fails the call itself; record errors are
		// reported per record below.
		metrics.RunErrors.Inc()
		return sum, fmt.Errorf("persist: %w", err)
	}
	for _, r := range results {
		if r.Err != nil {
			sum.Failed = append(sum.Failed, RecordError{ID: r.ID, Err: r.Err})
			metrics.StoreFailures.Inc()
			logging.Warn("insert_failed", map[string]any{"id": r.ID, "error": r.Err.Error()})
			continue
		}
		sum.Stored++
	}
	metrics.PostsStored.Add(float64(sum.Stored))
	sum.Stage = StagePersisted

	sum.Stage = StageDone
	metrics.ObserveRunDuration(start)
	logging.Info("run_done", map[string]any{
		"query": query, "fetched": sum.Fetched, "stored": sum.Stored, "failed": len(sum.Failed),
	})
	return sum, nil
}

// FailedIDs lists the ids of posts that hit a per-record failure, handy for
// skip-and-continue callers.
func (s Summary) FailedIDs() []int64 {
	ids := make([]int64, 0, len(s.Failed))
	for _, f := range s.Failed {
		ids = append(ids, f.ID)
	}
	return ids
}

// HasFatal reports whether any per-record failure is one the caller should
// treat as fatal for the store handle.
func (s Summary) HasFatal() bool {
	for _, f := range s.Failed {
		if errors.Is(f.Err, tweetdb.ErrClosedConn) || errors.Is(f.Err, tweetdb.ErrStorageUnavailable) {
			return true
		}
	}
	return false
}
