package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"maku/internal/missevan"
	"maku/internal/registry"
	"maku/internal/store"
)

func newEpisodesCommand(ctx *commandContext) *cobra.Command {
	var refresh bool
	var csvOut string
	var csvIn string

	cmd := &cobra.Command{
		Use:   "episodes <series>",
		Short: "Show a drama's episode list",
		Long: "Fetches the episode list for a drama, caching it locally. " +
			"The cache is reused until it exceeds the configured maximum age.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			series, err := resolveSeries(ctx, args[0])
			if err != nil {
				return err
			}

			st, err := store.Open(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			var episodes []registry.Episode
			if csvIn != "" {
				episodes, err = registry.ReadEpisodeCSV(csvIn)
				if err != nil {
					return err
				}
				if err := st.SaveEpisodes(cmd.Context(), series.ID, episodes); err != nil {
					return err
				}
			} else {
				client := missevan.NewFromConfig(cfg)
				episodes, err = loadEpisodes(cmd.Context(), cfg, st, client, series, refresh)
				if err != nil {
					return fmt.Errorf("load episode list: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(episodes))
			for i, episode := range episodes {
				rows = append(rows, []string{strconv.Itoa(i + 1), episode.Name, episode.ID})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"#", "Episode", "Sound ID"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight},
			))

			if csvOut != "" {
				target := expandOutputPath(cfg.Paths.OutputDir, csvOut)
				if err := registry.WriteEpisodeCSV(target, episodes); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote %d episodes to %s\n", len(episodes), target)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Refetch the episode list even if the cache is fresh")
	cmd.Flags().StringVar(&csvOut, "csv", "", "Also write the list as CSV to the given file")
	cmd.Flags().StringVar(&csvIn, "import", "", "Seed the cache from an episode CSV instead of fetching")
	return cmd
}

// expandOutputPath places relative targets under the output directory.
func expandOutputPath(outputDir, target string) string {
	if filepath.IsAbs(target) {
		return target
	}
	return filepath.Join(outputDir, target)
}
