// SPDX-License-Identifier: MIT

package dataset

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"github.com/katalvlaran/decaychain/store"
)

const (
	stageLoad = "Load"

	contentTypeJSON = "application/json"
)

// LoadOption configures Load and Save.
type LoadOption func(*loadOptions)

type loadOptions struct {
	logger    *log.Logger
	skipExact bool
}

// WithLogger logs bundle reads and writes to l. Nil keeps the discard default.
func WithLogger(l *log.Logger) LoadOption {
	return func(o *loadOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithoutExact skips the exact part; the loaded dataset then has no exact
// counterpart and the exact engine reports precision as unavailable.
func WithoutExact() LoadOption {
	return func(o *loadOptions) { o.skipExact = true }
}

func gatherLoadOptions(user ...LoadOption) loadOptions {
	o := loadOptions{logger: log.New(io.Discard, "", 0)}
	for _, fn := range user {
		fn(&o)
	}

	return o
}

// Save writes d as a bundle named d.Name() into st. Parts are created, never
// overwritten: saving over an existing bundle fails with store.ErrExists.
// When a write fails, the parts already written by this call are deleted.
func Save(ctx context.Context, st store.Store, d *Dataset, opts ...LoadOption) error {
	o := gatherLoadOptions(opts...)
	parts, err := EncodeBundle(d)
	if err != nil {
		return err
	}
	md := map[string]string{"dataset": d.name, "version": d.version}
	var written []string
	// manifest last, so a bundle is only discoverable once complete
	for _, part := range []string{PartC, PartCInverse, PartExact, PartManifest} {
		raw, ok := parts[part]
		if !ok {
			continue
		}
		key := BundleKey(d.name, part)
		if _, err = st.Put(ctx, key, bytes.NewReader(raw),
			store.PutOptions{ContentType: contentTypeJSON, Metadata: md}); err != nil {
			rollback(ctx, st, written, o.logger)
			return err
		}
		written = append(written, key)
	}
	o.logger.Printf("saved dataset %s (%d nuclides) to %s store", d.name, d.Len(), st.Driver())

	return nil
}

// rollback deletes the parts of a partially written bundle. Failures are
// logged; the Put error is what Save reports.
func rollback(ctx context.Context, st store.Store, keys []string, logger *log.Logger) {
	ctx = context.WithoutCancel(ctx)
	for _, key := range keys {
		if _, err := st.Delete(ctx, key); err != nil {
			logger.Printf("rollback %s: %v", key, err)
		}
	}
}

// Load reads the bundle named name from st.
// Missing or malformed parts fail with ErrDatasetLoad.
func Load(ctx context.Context, st store.Store, name string, opts ...LoadOption) (*Dataset, error) {
	o := gatherLoadOptions(opts...)
	start := time.Now()

	wanted := []string{PartManifest, PartC, PartCInverse}
	if !o.skipExact {
		wanted = append(wanted, PartExact)
	}
	parts := make(map[string][]byte, len(wanted))
	for _, part := range wanted {
		raw, err := readPart(ctx, st, BundleKey(name, part))
		if errors.Is(err, store.ErrNotFound) && part == PartExact {
			continue
		}
		if err != nil {
			return nil, loadErrorf(stageLoad+": "+name, err)
		}
		parts[part] = raw
	}

	d, err := DecodeBundle(parts, o.skipExact)
	if err != nil {
		return nil, err
	}
	if d.name != name {
		return nil, loadError(stageLoad, "bundle %s holds dataset %s", name, d.name)
	}
	o.logger.Printf("loaded dataset %s (%d nuclides, exact=%t) in %s", d.name, d.Len(), d.exact != nil, time.Since(start))

	return d, nil
}

// List returns the names of the bundles stored in st.
func List(ctx context.Context, st store.Store) ([]string, error) {
	infos, err := st.List(ctx, "")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, in := range infos {
		dir, file := splitKey(in.Key)
		if file == PartManifest && dir != "" {
			names = append(names, dir)
		}
	}

	return names, nil
}

func splitKey(key string) (dir, file string) {
	i := strings.LastIndexByte(key, '/')
	if i < 0 {
		return "", key
	}

	return key[:i], key[i+1:]
}

func readPart(ctx context.Context, st store.Store, key string) ([]byte, error) {
	_, rc, err := st.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	return io.ReadAll(rc)
}
