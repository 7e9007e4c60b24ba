package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"glasscat/internal/material"
	"glasscat/internal/snapshot"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show one material record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.loadLibrary(cmd)
			if err != nil {
				return err
			}
			m, err := lib.Resolve(args[0])
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, snapshot.NewRecord(m))
			}
			printMaterial(cmd.OutOrStdout(), m)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func printMaterial(out io.Writer, m *material.Material) {
	rows := [][]string{
		{"Name", m.Name},
		{"Comment", m.Comment},
		{"Model", m.Kind.String()},
		{"Solid", yesNo(m.Solid)},
		{"Mirror", yesNo(m.Mirror)},
		{"Glass code", strconv.FormatFloat(m.GlassCode, 'f', -1, 64)},
		{"nd", formatFixed(m.ND, 6)},
		{"vd", formatFixed(m.VD, 3)},
		{"Density", formatShort(m.Density)},
		{"Alpha -30/70", formatShort(m.AlphaM3070)},
		{"Alpha 20/300", formatShort(m.Alpha20300)},
		{"Price", formatPrice(m.Price)},
		{"Chemical", formatList(m.Chemical)},
		{"Thermal", formatList(m.Thermal)},
		{"Transmission", fmt.Sprintf("%d samples", len(m.Transmission))},
	}
	for i, term := range m.Sellmeier {
		rows = append(rows, []string{
			fmt.Sprintf("Sellmeier %d", i+1),
			formatShort(term.Coefficient) + " / " + formatShort(term.Pole),
		})
	}
	fmt.Fprintln(out, renderTable(out, []string{"Field", "Value"}, rows, nil))

	lines := make([][]string, 0, len(material.Fraunhofer))
	for _, line := range material.Fraunhofer {
		lines = append(lines, []string{
			line.Name,
			formatFixed(line.Wavelength*1e9, 2),
			formatFixed(m.RefractiveIndex(line.Wavelength), 6),
		})
	}
	fmt.Fprintln(out, renderTable(out,
		[]string{"Line", "Wavelength (nm)", "n"},
		lines,
		[]columnAlignment{alignLeft, alignRight, alignRight},
	))

	if len(m.Transmission) > 0 {
		keys := make([]material.TransmissionKey, 0, len(m.Transmission))
		for key := range m.Transmission {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].Thickness != keys[j].Thickness {
				return keys[i].Thickness < keys[j].Thickness
			}
			return keys[i].Wavelength < keys[j].Wavelength
		})
		rows := make([][]string, 0, len(keys))
		for _, key := range keys {
			rows = append(rows, []string{
				formatShort(key.Wavelength),
				formatShort(key.Thickness),
				formatShort(m.Transmission[key]),
			})
		}
		fmt.Fprintln(out, renderTable(out,
			[]string{"Wavelength (um)", "Thickness (mm)", "Transmission"},
			rows,
			[]columnAlignment{alignRight, alignRight, alignRight},
		))
	}
}
