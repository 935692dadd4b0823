package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"maku/internal/analysis"
	"maku/internal/logging"
	"maku/internal/missevan"
	"maku/internal/notifications"
	"maku/internal/report"
	"maku/internal/store"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var (
		mainCharacter string
		target        string
		selection     string
		refresh       bool
		evidence      bool
		exactMatch    bool
		threshold     int
	)

	cmd := &cobra.Command{
		Use:   "analyze <series>",
		Short: "Count character mentions in a drama's comment dialogue",
		Long: "Reconstructs staff-posted dialogue from each episode's comment stream, " +
			"attributes lines to the main character, and counts how often the other " +
			"catalog characters are mentioned. Episodes whose stream is unavailable " +
			"or yields no staff are skipped and the run continues.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if mainCharacter == "" {
				return errors.New("--main is required")
			}

			series, err := resolveSeries(ctx, args[0])
			if err != nil {
				return err
			}
			characters, err := ctx.loadCharacters()
			if err != nil {
				return err
			}
			if target != "" {
				known := false
				for _, name := range characters.Names() {
					if name == target {
						known = true
						break
					}
				}
				if !known {
					return fmt.Errorf("target character %q not in registry", target)
				}
			}

			lock := flock.New(filepath.Join(cfg.Paths.DataDir, "maku.lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return errors.New("another analysis run is already in progress")
			}
			defer func() { _ = lock.Unlock() }()

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}
			logger = logging.NewComponentLogger(logger, "analyze")

			st, err := store.Open(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			client := missevan.NewFromConfig(cfg)
			episodes, err := loadEpisodes(cmd.Context(), cfg, st, client, series, refresh)
			if err != nil {
				return fmt.Errorf("load episode list: %w", err)
			}
			episodes, err = selectEpisodes(episodes, selection)
			if err != nil {
				return err
			}
			if len(episodes) == 0 {
				return errors.New("no episodes to analyze")
			}

			notifier := notifications.NewService(cfg)
			runCtx := cmd.Context()
			if err := notifier.NotifyRunStarted(runCtx, series.Name, len(episodes)); err != nil {
				logger.Warn("run started notification failed", logging.Error(err))
			}

			runID, err := st.StartRun(runCtx, series.ID, mainCharacter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			progress := func(event analysis.ProgressEvent) {
				switch event.Outcome {
				case analysis.OutcomeSkipped:
					fmt.Fprintf(out, "[%d/%d] %s: skipped (%s)\n", event.Index+1, event.Total, event.Episode.Name, event.Reason)
					if err := notifier.NotifyEpisodeSkipped(runCtx, event.Episode.Name, event.Reason); err != nil {
						logger.Warn("skip notification failed", logging.Error(err))
					}
				default:
					fmt.Fprintf(out, "[%d/%d] %s: %d lines by %s\n", event.Index+1, event.Total, event.Episode.Name, event.MainCharacterLines, mainCharacter)
				}
			}

			if threshold <= 0 {
				threshold = cfg.Analysis.StaffThreshold
			}
			aggregator, err := analysis.NewAggregator(client, analysis.Options{
				MainCharacter:  mainCharacter,
				Characters:     characters,
				StaffThreshold: threshold,
				ExactMatch:     exactMatch || cfg.Analysis.ExactMatch,
				Pacer: analysis.NewRandomPacer(
					time.Duration(cfg.Analysis.PacingMinMs)*time.Millisecond,
					time.Duration(cfg.Analysis.PacingMaxMs)*time.Millisecond,
				),
				Progress: progress,
				Logger:   logger,
			})
			if err != nil {
				return err
			}

			started := time.Now()
			result, runErr := aggregator.Run(runCtx, episodes)
			processed := result.ProcessedEpisodes()
			skipped := result.SkippedEpisodes()
			totalMentions := result.TotalMentions.Total()

			if err := st.FinishRun(runCtx, runID, processed, skipped, totalMentions); err != nil {
				logger.Warn("record run outcome failed", logging.Error(err))
			}
			if runErr != nil {
				if notifyErr := notifier.NotifyError(runCtx, runErr, "analysis run"); notifyErr != nil {
					logger.Warn("error notification failed", logging.Error(notifyErr))
				}
				return runErr
			}

			mentionReport := &report.MentionReport{
				Result:          result,
				MainCharacter:   mainCharacter,
				Target:          target,
				Characters:      characters,
				IncludeEvidence: evidence,
			}
			textPath, csvPath, err := writeMentionReports(cfg.Paths.OutputDir, series.Name, mentionReport)
			if err != nil {
				return err
			}

			if err := notifier.NotifyRunCompleted(runCtx, processed, skipped, time.Since(started)); err != nil {
				logger.Warn("run completed notification failed", logging.Error(err))
			}

			fmt.Fprintf(out, "\nProcessed %d episodes (%d skipped), %d mentions total\n", processed, skipped, totalMentions)
			printTotals(out, mentionReport)
			fmt.Fprintf(out, "\nReports written to %s and %s\n", textPath, csvPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&mainCharacter, "main", "m", "", "Main character whose lines are mined for mentions")
	cmd.Flags().StringVarP(&target, "target", "t", "", "Restrict the report to one mentioned character")
	cmd.Flags().StringVarP(&selection, "episodes", "e", "", "Episode selection, e.g. 1,3-5 (default all)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Refetch the episode list even if the cache is fresh")
	cmd.Flags().BoolVar(&evidence, "evidence", false, "Include the comment lines backing each count in the text report")
	cmd.Flags().BoolVar(&exactMatch, "exact", false, "Use exact nickname matching")
	cmd.Flags().IntVar(&threshold, "threshold", 0, "Staff detection threshold (default from config)")
	return cmd
}

func writeMentionReports(outputDir, seriesName string, mentionReport *report.MentionReport) (string, string, error) {
	base := report.SubtitleFileName(seriesName)
	base = base[:len(base)-len(".txt")]

	textPath := filepath.Join(outputDir, base+"_mentions.txt")
	textFile, err := os.Create(textPath)
	if err != nil {
		return "", "", fmt.Errorf("create text report: %w", err)
	}
	if err := mentionReport.WriteText(textFile); err != nil {
		textFile.Close()
		return "", "", err
	}
	if err := textFile.Close(); err != nil {
		return "", "", fmt.Errorf("close text report: %w", err)
	}

	csvPath := filepath.Join(outputDir, base+"_mentions.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", "", fmt.Errorf("create csv report: %w", err)
	}
	if err := mentionReport.WriteCSV(csvFile); err != nil {
		csvFile.Close()
		return "", "", err
	}
	if err := csvFile.Close(); err != nil {
		return "", "", fmt.Errorf("close csv report: %w", err)
	}
	return textPath, csvPath, nil
}

func printTotals(out io.Writer, mentionReport *report.MentionReport) {
	var rows [][]string
	for _, character := range mentionReport.Characters.Names() {
		if mentionReport.Target != "" && mentionReport.Target != character {
			continue
		}
		total := mentionReport.Result.TotalMentions.TotalFor(character)
		if total == 0 {
			continue
		}
		rows = append(rows, []string{character, fmt.Sprintf("%d", total)})
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, "No mentions found")
		return
	}
	fmt.Fprintln(out, renderTable(out,
		[]string{"Character", "Mentions"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	))
}
