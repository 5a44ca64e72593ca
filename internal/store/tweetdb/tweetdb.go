// Package tweetdb owns the tweets table in a local SQLite file. It is
// append-only: rows are written once and never updated or deleted, and a
// duplicate id is rejected rather than upserted.
package tweetdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqlite "modernc.org/sqlite"
)

var (
	// ErrStorageUnavailable wraps failures to open or prepare the backing file.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrClosedConn is returned by any operation after Close.
	ErrClosedConn = errors.New("connection closed")
	// ErrDuplicateKey is returned when an id already exists in the table.
	ErrDuplicateKey = errors.New("duplicate id")
	// ErrValidation is returned for null or oversized required fields.
	ErrValidation = errors.New("invalid record")
)

const maxUserLen = 50

// Record is one persisted row. Favorite/Retweet hold 0 or 1, or nil when
// the provider did not say (stored as NULL).
type Record struct {
	ID         int64
	User       string
	CreateDate string
	Tweet      string
	Favorite   *int64
	Retweet    *int64
}

// InsertResult reports the outcome of one record within a bulk insert.
type InsertResult struct {
	ID  int64
	Err error
}

// DB owns the schema and the connection; it is the sole writer.
type DB struct {
	sql    *sql.DB
	closed bool
}

// Open opens or creates the backing file (":memory:" works for tests).
func Open(path string) (*DB, error) {
	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrStorageUnavailable, path, err)
	}
	if _, err := d.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("%w: open %s: %v", ErrStorageUnavailable, path, err)
	}
	return &DB{sql: d}, nil
}

// Close releases the connection. Calling it twice is harmless; any other
// operation on a closed handle fails with ErrClosedConn.
func (d *DB) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return d.sql.Close()
}

// EnsureSchema creates the tweets table if absent. Safe to call every run.
func (d *DB) EnsureSchema(ctx context.Context) error {
	if d.closed {
		return ErrClosedConn
	}
	_, err := d.sql.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS tweets (
	  id INTEGER PRIMARY KEY,
	  user VARCHAR(50) NOT NULL,
	  create_date TEXT NOT NULL,
	  tweet TEXT NOT NULL,
	  favorite INTEGER NULL,
	  retweet INTEGER NULL
	);
	`)
	if err != nil {
		return fmt.Errorf("%w: create schema: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// InsertOne writes a single record. Required fields are validated before
// touching SQL so a bad record never reaches the driver.
func (d *DB) InsertOne(ctx context.Context, rec Record) error {
	if d.closed {
		return ErrClosedConn
	}
	if err := validate(rec); err != nil {
		return err
	}
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO tweets(id, user, create_date, tweet, favorite, retweet) VALUES(?,?,?,?,?,?)`,
		rec.ID, rec.User, rec.CreateDate, rec.Tweet, rec.Favorite, rec.Retweet)
	if err != nil {
		return mapSQLiteErr(rec.ID, err)
	}
	return nil
}

// InsertMany inserts records one at a time and reports a result per record.
// The batch is never rolled back: a duplicate or invalid record fails alone
// and the rest of the batch still lands.
func (d *DB) InsertMany(ctx context.Context, recs []Record) ([]InsertResult, error) {
	if d.closed {
		return nil, ErrClosedConn
	}
	out := make([]InsertResult, 0, len(recs))
	for _, r := range recs {
		out = append(out, InsertResult{ID: r.ID, Err: d.InsertOne(ctx, r)})
	}
	return out, nil
}

// CountTweets returns the number of stored rows.
func (d *DB) CountTweets(ctx context.Context) (int64, error) {
	if d.closed {
		return 0, ErrClosedConn
	}
	var n int64
	if err := d.sql.QueryRowContext(ctx, `SELECT COUNT(*) FROM tweets`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// LoadAll reads every stored row, in no guaranteed order.
func (d *DB) LoadAll(ctx context.Context) ([]Record, error) {
	if d.closed {
		return nil, ErrClosedConn
	}
	rows, err := d.sql.QueryContext(ctx, `SELECT id, user, create_date, tweet, favorite, retweet FROM tweets`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Record
	for rows.Next() {
		var r Record
		var fav, rt sql.NullInt64
		if err := rows.Scan(&r.ID, &r.User, &r.CreateDate, &r.Tweet, &fav, &rt); err != nil {
			return nil, err
		}
		if fav.Valid {
			r.Favorite = &fav.Int64
		}
		if rt.Valid {
			r.Retweet = &rt.Int64
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func validate(rec Record) error {
	switch {
	case rec.User == "":
		return fmt.Errorf("id %d: empty user: %w", rec.ID, ErrValidation)
	case len(rec.User) > maxUserLen:
		return fmt.Errorf("id %d: user longer than %d: %w", rec.ID, maxUserLen, ErrValidation)
	case rec.CreateDate == "":
		return fmt.Errorf("id %d: empty create_date: %w", rec.ID, ErrValidation)
	case rec.Tweet == "":
		return fmt.Errorf("id %d: empty tweet: %w", rec.ID, ErrValidation)
	}
	return nil
}

// SQLite primary result code 19 is SQLITE_CONSTRAINT; extended codes 1555
// and 2067 are the primary-key and unique flavors.
func mapSQLiteErr(id int64, err error) error {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return err
	}
	code := se.Code()
	switch {
	case code == 1555 || code == 2067:
		return fmt.Errorf("id %d: %w", id, ErrDuplicateKey)
	case code&0xff == 19:
		return fmt.Errorf("id %d: %w", id, ErrValidation)
	}
	return err
}
