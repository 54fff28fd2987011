// SPDX-License-Identifier: MIT

package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/decaychain/engine"
	"github.com/katalvlaran/decaychain/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP decay API",
	Long: `Serve exposes decay evolution over HTTP until interrupted.

Routes:
  POST /v1/decay
  GET  /v1/datasets/{dataset}/nuclides/{nuclide}
  GET  /healthz
  GET  /metrics

When a dataset is configured it is loaded before the listener starts.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e, closeStore, err := setup(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	catalog := server.NewCatalog(e.store, e.loadOptions()...)
	if e.cfg.Dataset.Name != "" {
		if _, err = catalog.Dataset(ctx, e.cfg.Dataset.Name); err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	h := server.NewHandler(catalog,
		server.WithMetrics(engine.NewMetrics(reg)),
		server.WithWorkers(e.cfg.Engine.Workers),
		server.WithSignificantFigures(e.cfg.Engine.SignificantFigures),
		server.WithLogger(e.logger),
	)

	addr := e.cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	srv, err := server.New(server.Config{
		Addr:         addr,
		ReadTimeout:  e.cfg.Server.ReadTimeout.Duration,
		WriteTimeout: e.cfg.Server.WriteTimeout.Duration,
	}, h, reg, e.logger)
	if err != nil {
		return err
	}

	return srv.Serve(ctx)
}
