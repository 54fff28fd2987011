// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/decaychain/dataset"
)

var compileDryRun bool

var compileCmd = &cobra.Command{
	Use:   "compile <source.yaml>",
	Short: "Compile a nuclide table into a dataset bundle",
	Long: `Compile reads a YAML nuclide table, orders it topologically, computes
the decay constants and the exact eigenvector matrices C and C⁻¹, and saves
the bundle to the configured store under the table's name.

Example:
  decaychain compile icrp-107.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().BoolVar(&compileDryRun, "dry-run", false, "compile and report without saving")
}

func runCompile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, closeStore, err := setup(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	src, err := dataset.ParseSource(f)
	if err != nil {
		return err
	}
	ds, err := dataset.Compile(ctx, src)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "compiled %s\n", ds)
	if compileDryRun {
		return nil
	}
	if err = dataset.Save(ctx, e.store, ds, e.loadOptions()...); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %s to %s store\n", ds.Name(), e.store.Driver())

	return nil
}
