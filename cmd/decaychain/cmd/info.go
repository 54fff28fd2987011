// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/decaychain/nuclide"
)

var infoCmd = &cobra.Command{
	Use:   "info NUCLIDE",
	Short: "Show half-life and decay branches of a nuclide",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

var infoEnergyUnit string

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().StringVar(&infoEnergyUnit, "energy-unit", "keV", "unit of the printed decay energies")
}

func runInfo(cmd *cobra.Command, args []string) error {
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
	i, err := ds.Resolve(nuclide.Name(args[0]))
	if err != nil {
		return err
	}
	name, _ := ds.NuclideAt(i)
	hl, _ := ds.HalfLife(i)
	branches, _ := ds.Progeny(i)
	descendants, err := ds.Descendants(i)
	if err != nil {
		return err
	}
	energies, err := ds.DecayEnergies(i, infoEnergyUnit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Nuclide:\t%s\n", name)
	fmt.Fprintf(w, "Dataset:\t%s\n", ds)
	fmt.Fprintf(w, "Half-life:\t%s\n", ds.TimeConverter().Readable(hl))
	for _, b := range branches {
		fmt.Fprintf(w, "  -> %s\t%s\t%s\n", b.Name, strconv.FormatFloat(b.Fraction, 'g', -1, 64), b.Mode)
	}
	if len(energies) > 0 {
		modes := make([]string, 0, len(energies))
		for mode := range energies {
			modes = append(modes, mode)
		}
		sort.Strings(modes)
		parts := make([]string, len(modes))
		for k, mode := range modes {
			parts[k] = fmt.Sprintf("%s %s %s", mode, strconv.FormatFloat(energies[mode], 'g', 6, 64), infoEnergyUnit)
		}
		fmt.Fprintf(w, "Decay energy:\t%s\n", strings.Join(parts, ", "))
	}
	if len(descendants) > 0 {
		fmt.Fprintf(w, "Descendants:\t%s\n", strings.Join(descendants, ", "))
	}

	return w.Flush()
}
