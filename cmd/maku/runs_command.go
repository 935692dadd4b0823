package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"maku/internal/store"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent analysis runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			st, err := store.Open(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				finished := "running"
				if run.FinishedAt != nil {
					finished = run.FinishedAt.Local().Format("2006-01-02 15:04")
				}
				rows = append(rows, []string{
					run.ID[:8],
					strconv.FormatInt(run.SeriesID, 10),
					run.MainCharacter,
					run.StartedAt.Local().Format("2006-01-02 15:04"),
					finished,
					strconv.Itoa(run.EpisodesProcessed),
					strconv.Itoa(run.EpisodesSkipped),
					strconv.Itoa(run.TotalMentions),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Run", "Series", "Main", "Started", "Finished", "Processed", "Skipped", "Mentions"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	return cmd
}
