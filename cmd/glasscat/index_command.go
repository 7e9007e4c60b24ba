package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"glasscat/internal/material"
)

func newIndexCommand(ctx *commandContext) *cobra.Command {
	var temperature float64

	cmd := &cobra.Command{
		Use:   "index <name> <wavelength>...",
		Short: "Evaluate the refractive index of a material",
		Long: "Evaluate the refractive index at each wavelength, given in nanometers\n" +
			"or as a Fraunhofer line name (d, F, C, Fp, ...). With --temp the\n" +
			"thermal index change relative to the catalog reference temperature\n" +
			"is added for materials that carry thermal data.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			wavelengths := make([]float64, 0, len(args)-1)
			labels := make([]string, 0, len(args)-1)
			for _, arg := range args[1:] {
				w, line, err := parseWavelength(arg)
				if err != nil {
					return err
				}
				wavelengths = append(wavelengths, w)
				labels = append(labels, line)
			}

			lib, err := ctx.loadLibrary(cmd)
			if err != nil {
				return err
			}
			m, err := lib.Resolve(args[0])
			if err != nil {
				return err
			}

			withTemp := cmd.Flags().Changed("temp")
			headers := []string{"Line", "Wavelength (nm)", "n"}
			aligns := []columnAlignment{alignLeft, alignRight, alignRight}
			if withTemp {
				headers = append(headers, "dn", fmt.Sprintf("n @ %s C", formatShort(temperature)))
				aligns = append(aligns, alignRight, alignRight)
			}

			indices := m.Indices(wavelengths)
			rows := make([][]string, 0, len(wavelengths))
			for i, w := range wavelengths {
				row := []string{labels[i], formatFixed(w*1e9, 2), formatFixed(indices[i], 6)}
				if withTemp {
					dn, err := m.DnThermal(temperature, indices[i], w)
					if err != nil {
						if errors.Is(err, material.ErrNoThermalData) {
							return fmt.Errorf("--temp: %w", err)
						}
						return err
					}
					row = append(row, formatShort(dn), formatFixed(indices[i]+dn, 6))
				}
				rows = append(rows, row)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", m.Name, m.Kind)
			fmt.Fprintln(out, renderTable(out, headers, rows, aligns))
			if len(wavelengths) >= 2 {
				short, long := wavelengths[0], wavelengths[len(wavelengths)-1]
				fmt.Fprintf(out, "delta n (first - last): %s\n", formatShort(m.DeltaN(short, long)))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&temperature, "temp", 20, "Temperature in degrees Celsius for the thermal correction")
	return cmd
}
