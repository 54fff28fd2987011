// SPDX-License-Identifier: MIT

// Package cmd holds the decaychain command tree.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/decaychain/config"
	"github.com/katalvlaran/decaychain/dataset"
	"github.com/katalvlaran/decaychain/store"
)

var (
	cfgFile     string
	verbose     bool
	datasetName string
)

// errNoDataset is returned when neither --dataset nor the config names one.
var errNoDataset = errors.New("no dataset selected: pass --dataset or set dataset.name")

var rootCmd = &cobra.Command{
	Use:   "decaychain",
	Short: "Analytic radioactive decay chains",
	Long: `decaychain evolves inventories of radionuclides through their decay
chains with the Bateman solution.

Datasets are compiled once from a YAML nuclide table into a bundle holding
the decay constants and the eigenvector matrices, then stored in a
filesystem directory, an S3 bucket or a SQL table.

Commands:
  compile  - compile a YAML nuclide table into a dataset bundle
  list     - list stored datasets
  info     - half-life and decay branches of one nuclide
  decay    - evolve an inventory in fixed or exact arithmetic
  serve    - run the HTTP decay API`,
	SilenceUsage: true,
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $"+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log store and engine activity to stderr")
	rootCmd.PersistentFlags().StringVar(&datasetName, "dataset", "", "dataset name (overrides dataset.name)")
}

// env bundles what every command needs.
type env struct {
	cfg    *config.Config
	logger *log.Logger
	store  store.Store
}

// setup loads the configuration and opens the store. The returned close
// function releases the backend.
func setup(ctx context.Context) (*env, func(), error) {
	path := cfgFile
	if path == "" {
		path = os.Getenv(config.EnvConfigPath)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if datasetName != "" {
		cfg.Dataset.Name = datasetName
	}

	logger := log.New(io.Discard, "", 0)
	if verbose || cfg.Log.Verbose {
		logger = log.New(os.Stderr, "decaychain: ", log.LstdFlags)
	}

	st, err := store.Open(ctx, cfg.Backend(), store.WithLogger(logger))
	if err != nil {
		return nil, nil, fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	closer := func() {
		if c, ok := st.(io.Closer); ok {
			if err := c.Close(); err != nil {
				logger.Printf("close store: %v", err)
			}
		}
	}

	return &env{cfg: cfg, logger: logger, store: st}, closer, nil
}

// loadOptions returns the dataset load options implied by the config.
func (e *env) loadOptions() []dataset.LoadOption {
	opts := []dataset.LoadOption{dataset.WithLogger(e.logger)}
	if e.cfg.Dataset.SkipExact {
		opts = append(opts, dataset.WithoutExact())
	}

	return opts
}

// loadDataset loads the selected dataset.
func (e *env) loadDataset(ctx context.Context) (*dataset.Dataset, error) {
	if e.cfg.Dataset.Name == "" {
		return nil, errNoDataset
	}

	return dataset.Load(ctx, e.store, e.cfg.Dataset.Name, e.loadOptions()...)
}
