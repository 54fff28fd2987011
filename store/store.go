// SPDX-License-Identifier: MIT

// Package store provides the blob-style persistence used for dataset bundles.
//
// A Store is a thin S3-like key/value abstraction: Put is create-only,
// Get streams content, Head/List return metadata. Backends:
//
//	fs      local directory with a JSON ".meta" sidecar per blob
//	memory  process memory (tests, one-shot CLI runs)
//	s3      S3 or MinIO compatible bucket (aws-sdk-go-v2)
//	sql     database/sql table, sqlite (modernc.org/sqlite) or postgres (pgx)
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"
)

// Driver identifies a concrete backend implementation.
type Driver string

const (
	// DriverFilesystem is the local filesystem backend (default).
	DriverFilesystem Driver = "fs"
	// DriverMemory is the in-process backend.
	DriverMemory Driver = "memory"
	// DriverS3 is the S3 / MinIO compatible backend.
	DriverS3 Driver = "s3"
	// DriverSQL is the database/sql backend.
	DriverSQL Driver = "sql"
)

var (
	// ErrNotFound is returned when a key does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrExists is returned by Put when the key is already taken.
	ErrExists = errors.New("store: already exists")

	// ErrInvalidKey is returned for empty, absolute or traversing keys.
	ErrInvalidKey = errors.New("store: invalid key")

	// ErrUnknownDriver is returned by Open for an unsupported driver name.
	ErrUnknownDriver = errors.New("store: unknown driver")

	// ErrInvalidConfig is returned when a backend is missing required settings.
	ErrInvalidConfig = errors.New("store: invalid config")
)

// PutOptions specifies optional parameters for Put.
type PutOptions struct {
	ContentType string            // MIME type, optional
	Metadata    map[string]string // user metadata (small, flat key-value)
}

// Info describes a stored blob.
type Info struct {
	Key          string            `json:"key"`
	Size         int64             `json:"size_bytes"`
	ContentType  string            `json:"content_type,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	LastModified time.Time         `json:"last_modified"`
}

// Store is implemented by every backend.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Head(ctx context.Context, key string) (Info, error)
	Delete(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]Info, error)
	Driver() Driver
}

// Option configures a backend constructor.
type Option func(*options)

type options struct {
	logger *log.Logger
}

// WithLogger makes the backend log writes and deletes to l.
// A nil logger keeps the default, which discards output.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func gatherOptions(user ...Option) options {
	o := options{logger: log.New(io.Discard, "", 0)}
	for _, fn := range user {
		fn(&o)
	}

	return o
}

// sanitizeKey forbids empty keys, absolute keys and path traversal.
func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	if strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q contains '..'", ErrInvalidKey, key)
	}
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("%w: %q is absolute", ErrInvalidKey, key)
	}

	return filepath.ToSlash(filepath.Clean(key)), nil
}

func notFound(key string) error { return fmt.Errorf("%w: %s", ErrNotFound, key) }

func exists(key string) error { return fmt.Errorf("%w: %s", ErrExists, key) }

func cloneMetadata(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}

	return out
}
