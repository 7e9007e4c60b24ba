package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"

	"glasscat/internal/material"
	"glasscat/internal/snapshot"
)

func newMaterialsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var solidOnly bool

	cmd := &cobra.Command{
		Use:   "materials [filter]",
		Short: "List the merged material catalog",
		Long: "List every material of the merged catalog, sorted by name.\n" +
			"An optional filter keeps names containing it, ignoring case.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.loadLibrary(cmd)
			if err != nil {
				return err
			}

			var filter string
			if len(args) == 1 {
				filter = args[0]
			}
			materials := filterMaterials(lib.Catalog.Materials(), filter, solidOnly)

			if jsonOutput {
				records := make([]snapshot.Record, 0, len(materials))
				for _, m := range materials {
					records = append(records, snapshot.NewRecord(m))
				}
				return writeJSON(cmd, records)
			}

			out := cmd.OutOrStdout()
			if len(materials) == 0 {
				fmt.Fprintln(out, "No materials match")
				return nil
			}
			rows := make([][]string, 0, len(materials))
			for _, m := range materials {
				rows = append(rows, []string{
					m.Name,
					formatFixed(m.ND, 5),
					formatFixed(m.VD, 2),
					m.Kind.String(),
					yesNo(m.Solid),
					yesNo(m.Mirror),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Name", "nd", "vd", "Model", "Solid", "Mirror"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d materials\n", len(materials))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&solidOnly, "solid", false, "Only list solid materials")
	return cmd
}

func filterMaterials(materials []*material.Material, filter string, solidOnly bool) []*material.Material {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(filter))
	out := make([]*material.Material, 0, len(materials))
	for _, m := range materials {
		if solidOnly && !m.Solid {
			continue
		}
		if needle != "" && !strings.Contains(fold.String(m.Name), needle) {
			continue
		}
		out = append(out, m)
	}
	return out
}
