// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/decaychain/engine"
	"github.com/katalvlaran/decaychain/inventory"
	"github.com/katalvlaran/decaychain/nuclide"
	"github.com/katalvlaran/decaychain/numeric"
)

var (
	decayTime       string
	decayUnit       string
	decayInputUnit  string
	decayOutputUnit string
	decayExact      bool
	decaySig        int
	decayWorkers    int
)

var decayCmd = &cobra.Command{
	Use:   "decay NUCLIDE=ACTIVITY...",
	Short: "Evolve an inventory through its decay chains",
	Long: `Decay builds an inventory from NUCLIDE=ACTIVITY pairs and evolves it by
--time. Negative times evolve backwards.

Fixed mode uses float64. With --exact the activities and the time are read
as exact decimals and the result is correct to --sig significant figures.

Examples:
  decaychain decay --dataset icrp-107 --time 20 --unit h Tc-99m=2.3 I-123=5.8
  decaychain decay --dataset icrp-107 --time 1 --unit y --exact --sig 30 H3=10`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDecay,
}

func init() {
	rootCmd.AddCommand(decayCmd)
	decayCmd.Flags().StringVarP(&decayTime, "time", "t", "", "elapsed time (required)")
	decayCmd.Flags().StringVarP(&decayUnit, "unit", "u", "s", "time unit")
	decayCmd.Flags().StringVar(&decayInputUnit, "activity-unit", inventory.DefaultUnit, "unit of the given activities")
	decayCmd.Flags().StringVar(&decayOutputUnit, "output-unit", inventory.DefaultUnit, "unit of the printed activities")
	decayCmd.Flags().BoolVar(&decayExact, "exact", false, "use exact arithmetic")
	decayCmd.Flags().IntVar(&decaySig, "sig", 0, "significant figures for --exact (default: engine.significant_figures)")
	decayCmd.Flags().IntVar(&decayWorkers, "workers", 0, "matrix workers (default: engine.workers)")
	_ = decayCmd.MarkFlagRequired("time")
}

func runDecay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, closeStore, err := setup(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	ds, err := e.loadDataset(ctx)
	if err != nil {
		return err
	}
	contents, err := parseContents(args, decayExact)
	if err != nil {
		return err
	}
	inv, err := inventory.New(ds, contents, inventory.WithUnit(decayInputUnit))
	if err != nil {
		return err
	}
	elapsed, err := parseQuantity(decayTime, decayExact)
	if err != nil {
		return fmt.Errorf("%w: %w", engine.ErrInvalidTime, err)
	}

	workers := e.cfg.Engine.Workers
	if decayWorkers > 0 {
		workers = decayWorkers
	}
	sig := e.cfg.Engine.SignificantFigures
	if decaySig != 0 {
		sig = decaySig
	}
	opts := []engine.Option{engine.WithContext(ctx), engine.WithWorkers(workers)}

	var out *inventory.Inventory
	if decayExact {
		out, err = inv.DecayExact(elapsed, decayUnit, sig, opts...)
	} else {
		out, err = inv.Decay(elapsed, decayUnit, opts...)
	}
	if err != nil {
		return err
	}
	activities, err := out.Activities(decayOutputUnit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "NUCLIDE\tACTIVITY (%s)\n", decayOutputUnit)
	for _, name := range out.Nuclides() {
		v := activities[name]
		text := v.String()
		if decayExact {
			text = numeric.FormatValue(v, sig)
		}
		fmt.Fprintf(w, "%s\t%s\n", name, text)
	}

	return w.Flush()
}

// parseContents reads NUCLIDE=ACTIVITY arguments.
func parseContents(args []string, exact bool) (map[nuclide.Ref]numeric.Value, error) {
	contents := make(map[nuclide.Ref]numeric.Value, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q is not NUCLIDE=ACTIVITY", inventory.ErrInvalidActivity, arg)
		}
		v, err := parseQuantity(value, exact)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", inventory.ErrInvalidActivity, name, err)
		}
		contents[nuclide.Name(name)] = v
	}

	return contents, nil
}

// parseQuantity reads a decimal as an exact rational or a float64.
func parseQuantity(text string, exact bool) (numeric.Value, error) {
	if exact {
		return numeric.ParseExact(text)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return numeric.Value{}, err
	}

	return numeric.Fixed(f), nil
}
