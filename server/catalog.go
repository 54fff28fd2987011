// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"sync"

	"github.com/katalvlaran/decaychain/dataset"
	"github.com/katalvlaran/decaychain/store"
)

// Datasets resolves dataset names for request handlers.
type Datasets interface {
	Dataset(ctx context.Context, name string) (*dataset.Dataset, error)
}

// Catalog loads datasets from a store on first use and keeps them.
// Datasets are immutable, so one loaded instance serves every request.
type Catalog struct {
	st   store.Store
	opts []dataset.LoadOption

	mu     sync.Mutex
	loaded map[string]*dataset.Dataset
}

// NewCatalog returns a catalog over st; opts are passed to dataset.Load.
func NewCatalog(st store.Store, opts ...dataset.LoadOption) *Catalog {
	return &Catalog{st: st, opts: opts, loaded: make(map[string]*dataset.Dataset)}
}

// Dataset returns the named dataset, loading it on first request.
func (c *Catalog) Dataset(ctx context.Context, name string) (*dataset.Dataset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ds, ok := c.loaded[name]; ok {
		return ds, nil
	}
	ds, err := dataset.Load(ctx, c.st, name, c.opts...)
	if err != nil {
		return nil, err
	}
	c.loaded[name] = ds

	return ds, nil
}

// Add registers an already built dataset under its name.
func (c *Catalog) Add(ds *dataset.Dataset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded[ds.Name()] = ds
}

var _ Datasets = (*Catalog)(nil)
