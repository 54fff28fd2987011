// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"fmt"
)

// Config selects and parameterizes a backend for Open.
type Config struct {
	Driver    Driver // fs|memory|s3|sql (default fs)
	FSRoot    string
	S3        S3Config
	SQLDriver string // sqlite|pgx
	SQLDSN    string
}

// Open returns the backend named by cfg.Driver.
func Open(ctx context.Context, cfg Config, opts ...Option) (Store, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverFilesystem
	}
	switch driver {
	case DriverFilesystem:
		return NewFS(cfg.FSRoot, opts...)
	case DriverMemory:
		return NewMemory(opts...), nil
	case DriverS3:
		return NewS3(ctx, cfg.S3, opts...)
	case DriverSQL:
		sqlDriver := cfg.SQLDriver
		if sqlDriver == "" {
			sqlDriver = SQLDriverSQLite
		}
		return NewSQL(ctx, sqlDriver, cfg.SQLDSN, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
