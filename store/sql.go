// SPDX-License-Identifier: MIT

package store

import (
	"bytes"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver
)

// SQL driver names accepted by NewSQL.
const (
	SQLDriverSQLite   = "sqlite"
	SQLDriverPostgres = "pgx"

	defaultSQLitePath  = "decaychain.db"
	defaultPostgresDSN = "postgres://localhost/decaychain?sslmode=disable"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS decay_blobs (
	blob_key     TEXT PRIMARY KEY,
	content_type TEXT NOT NULL DEFAULT '',
	metadata     TEXT NOT NULL DEFAULT '',
	etag         TEXT NOT NULL,
	size         INTEGER NOT NULL,
	updated_at   INTEGER NOT NULL,
	data         BLOB NOT NULL
)`

const postgresSchema = `CREATE TABLE IF NOT EXISTS decay_blobs (
	blob_key     TEXT PRIMARY KEY,
	content_type TEXT NOT NULL DEFAULT '',
	metadata     TEXT NOT NULL DEFAULT '',
	etag         TEXT NOT NULL,
	size         BIGINT NOT NULL,
	updated_at   BIGINT NOT NULL,
	data         BYTEA NOT NULL
)`

// SQL keeps blobs in the decay_blobs table of a sqlite or postgres database.
type SQL struct {
	db     *sql.DB
	driver string
	opts   options
}

var _ Store = (*SQL)(nil)

// NewSQL opens dsn with driver (SQLDriverSQLite or SQLDriverPostgres),
// pings it and creates the table if missing. For sqlite, dsn is a file path.
func NewSQL(ctx context.Context, driver, dsn string, opts ...Option) (*SQL, error) {
	var schema string
	switch driver {
	case SQLDriverSQLite:
		if dsn == "" {
			dsn = defaultSQLitePath
		}
		if err := os.MkdirAll(filepath.Dir(dsn), 0o750); err != nil {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
		schema = sqliteSchema
	case SQLDriverPostgres:
		if dsn == "" {
			dsn = defaultPostgresDSN
		}
		schema = postgresSchema
	default:
		return nil, fmt.Errorf("%w: sql driver %q", ErrInvalidConfig, driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == SQLDriverSQLite {
		db.SetMaxOpenConns(1)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	if _, err = db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create decay_blobs table: %w", err)
	}

	return &SQL{db: db, driver: driver, opts: gatherOptions(opts...)}, nil
}

// Close releases the database handle.
func (s *SQL) Close() error { return s.db.Close() }

// Driver returns DriverSQL.
func (s *SQL) Driver() Driver { return DriverSQL }

// bind rewrites "?" placeholders to "$n" for postgres.
func (s *SQL) bind(query string) string {
	if s.driver != SQLDriverPostgres {
		return query
	}
	var (
		b strings.Builder
		n int
	)
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// Put inserts the blob; a conflicting key yields ErrExists.
func (s *SQL) Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return Info{}, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Info{}, err
	}
	md, err := encodeMetadata(opts.Metadata)
	if err != nil {
		return Info{}, err
	}
	sum := sha256.Sum256(data)
	info := Info{
		Key:          k,
		Size:         int64(len(data)),
		ContentType:  opts.ContentType,
		ETag:         hex.EncodeToString(sum[:]),
		Metadata:     cloneMetadata(opts.Metadata),
		LastModified: time.Now().UTC().Truncate(time.Microsecond),
	}

	res, err := s.db.ExecContext(ctx, s.bind(`INSERT INTO decay_blobs
		(blob_key, content_type, metadata, etag, size, updated_at, data)
		VALUES (?, ?, ?, ?, ?, ?, ?) ON CONFLICT (blob_key) DO NOTHING`),
		info.Key, info.ContentType, md, info.ETag, info.Size, info.LastModified.UnixMicro(), data)
	if err != nil {
		return Info{}, fmt.Errorf("insert %s: %w", k, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Info{}, err
	}
	if n == 0 {
		return Info{}, exists(key)
	}
	s.opts.logger.Printf("sql: put %s (%d bytes)", k, info.Size)

	return info, nil
}

// Get reads the whole blob into memory and returns a reader over it.
func (s *SQL) Get(ctx context.Context, key string) (Info, io.ReadCloser, error) {
	var data []byte
	info, err := s.scanOne(ctx, key, "data", &data)
	if err != nil {
		return Info{}, nil, err
	}

	return info, io.NopCloser(bytes.NewReader(data)), nil
}

// Head returns blob metadata only.
func (s *SQL) Head(ctx context.Context, key string) (Info, error) {
	return s.scanOne(ctx, key, "")
}

func (s *SQL) scanOne(ctx context.Context, key, extra string, dest ...any) (Info, error) {
	cols := "blob_key, content_type, metadata, etag, size, updated_at"
	if extra != "" {
		cols += ", " + extra
	}
	row := s.db.QueryRowContext(ctx, s.bind("SELECT "+cols+" FROM decay_blobs WHERE blob_key = ?"), key)
	info, err := scanInfo(row.Scan, dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return Info{}, notFound(key)
	}

	return info, err
}

// Delete removes the row, reporting whether it existed.
func (s *SQL) Delete(ctx context.Context, key string) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.bind("DELETE FROM decay_blobs WHERE blob_key = ?"), key)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		s.opts.logger.Printf("sql: delete %s", key)
	}

	return n > 0, nil
}

// List returns metadata of every blob whose key has prefix, sorted by key.
func (s *SQL) List(ctx context.Context, prefix string) ([]Info, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT blob_key, content_type, metadata, etag, size, updated_at FROM decay_blobs ORDER BY blob_key")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Info
	for rows.Next() {
		info, err := scanInfo(rows.Scan)
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(info.Key, prefix) {
			out = append(out, info)
		}
	}

	return out, rows.Err()
}

func scanInfo(scan func(dest ...any) error, extra ...any) (Info, error) {
	var (
		info    Info
		md      string
		updated int64
	)
	dest := append([]any{&info.Key, &info.ContentType, &md, &info.ETag, &info.Size, &updated}, extra...)
	if err := scan(dest...); err != nil {
		return Info{}, err
	}
	info.LastModified = time.UnixMicro(updated).UTC()
	if md != "" {
		if err := json.Unmarshal([]byte(md), &info.Metadata); err != nil {
			return Info{}, fmt.Errorf("decode metadata of %s: %w", info.Key, err)
		}
	}

	return info, nil
}

func encodeMetadata(md map[string]string) (string, error) {
	if len(md) == 0 {
		return "", nil
	}
	b, err := json.Marshal(md)

	return string(b), err
}
