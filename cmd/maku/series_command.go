package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newSeriesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "series",
		Short: "List dramas in the local catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := ctx.loadSeriesCatalog()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(catalog) == 0 {
				fmt.Fprintln(out, "Catalog is empty; add entries to the series file")
				return nil
			}
			rows := make([][]string, 0, len(catalog))
			for _, s := range catalog {
				rows = append(rows, []string{strconv.FormatInt(s.ID, 10), s.Name})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"ID", "Name"},
				rows,
				[]columnAlignment{alignRight, alignLeft},
			))
			return nil
		},
	}
}
