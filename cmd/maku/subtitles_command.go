package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"maku/internal/analysis"
	"maku/internal/danmaku"
	"maku/internal/logging"
	"maku/internal/missevan"
	"maku/internal/registry"
	"maku/internal/report"
	"maku/internal/store"
)

func newSubtitlesCommand(ctx *commandContext) *cobra.Command {
	var (
		selection string
		character string
		staffOnly bool
		threshold int
	)

	cmd := &cobra.Command{
		Use:   "subtitles <series>",
		Short: "Dump episode comment streams as timed text",
		Long: "Writes each selected episode's comments as a timed text file under the " +
			"output directory. With --staff, only staff-posted dialogue lines are kept; " +
			"with --character, only the lines attributed to that character are written.",
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

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}
			logger = logging.NewComponentLogger(logger, "subtitles")

			st, err := store.Open(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			client := missevan.NewFromConfig(cfg)
			episodes, err := loadEpisodes(cmd.Context(), cfg, st, client, series, false)
			if err != nil {
				return fmt.Errorf("load episode list: %w", err)
			}
			episodes, err = selectEpisodes(episodes, selection)
			if err != nil {
				return err
			}
			if len(episodes) == 0 {
				return errors.New("no episodes selected")
			}

			if threshold <= 0 {
				threshold = cfg.Analysis.StaffThreshold
			}

			dir := filepath.Join(cfg.Paths.OutputDir, report.SubtitleFileName(series.Name))
			dir = dir[:len(dir)-len(".txt")]

			out := cmd.OutOrStdout()
			written := 0
			for _, episode := range episodes {
				path, err := dumpEpisode(cmd, client, dir, episode, character, staffOnly, threshold)
				if err != nil {
					logger.Warn("episode dump failed",
						logging.String("episode", episode.Name),
						logging.Error(err))
					fmt.Fprintf(out, "%s: skipped (%v)\n", episode.Name, err)
					continue
				}
				fmt.Fprintf(out, "%s -> %s\n", episode.Name, path)
				written++
			}
			if written == 0 {
				return errors.New("no episodes could be dumped")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&selection, "episodes", "e", "", "Episode selection, e.g. 1,3-5 (default all)")
	cmd.Flags().StringVar(&character, "character", "", "Write only lines attributed to this character")
	cmd.Flags().BoolVar(&staffOnly, "staff", false, "Write only staff-posted dialogue lines")
	cmd.Flags().IntVar(&threshold, "threshold", 0, "Staff detection threshold (default from config)")
	return cmd
}

func dumpEpisode(cmd *cobra.Command, client *missevan.Client, dir string, episode registry.Episode, character string, staffOnly bool, threshold int) (string, error) {
	raw, err := client.CommentStream(cmd.Context(), episode.ID)
	if err != nil {
		return "", err
	}
	records, err := danmaku.ParseStream(raw)
	if err != nil {
		return "", err
	}
	danmaku.SortByTimestamp(records)

	if character == "" && !staffOnly {
		return report.WriteSubtitleFile(dir, episode, records)
	}

	staff := analysis.IdentifyStaff(records, nil, threshold)
	if len(staff) == 0 {
		return "", errors.New("no staff identified")
	}
	dialogues := analysis.DialoguesByAuthors(records, staff)
	if character == "" {
		return report.WriteSubtitleFile(dir, episode, dialogues)
	}
	lines := analysis.LinesFor(dialogues, character)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(dir, report.SubtitleFileName(episode.Name+"_"+character))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create line dump: %w", err)
	}
	defer file.Close()
	if err := report.WriteCharacterLines(file, character, lines); err != nil {
		return "", err
	}
	return path, nil
}
