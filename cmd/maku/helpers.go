package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"maku/internal/config"
	"maku/internal/missevan"
	"maku/internal/registry"
	"maku/internal/store"
)

// resolveSeries accepts either a numeric drama id or a catalog name.
func resolveSeries(ctx *commandContext, arg string) (registry.Series, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return registry.Series{}, errors.New("series id or name is required")
	}

	catalog, err := ctx.loadSeriesCatalog()
	if err != nil {
		return registry.Series{}, err
	}

	if id, convErr := strconv.ParseInt(arg, 10, 64); convErr == nil {
		if found, ok := registry.FindSeries(catalog, id); ok {
			return found, nil
		}
		// Unlisted ids are still usable; episodes come straight from the
		// drama endpoint.
		return registry.Series{ID: id, Name: arg}, nil
	}

	if found, ok := registry.FindSeriesByName(catalog, arg); ok {
		return found, nil
	}
	return registry.Series{}, fmt.Errorf("series %q not found in catalog", arg)
}

// loadEpisodes returns the episode list for a series, preferring the local
// cache while it is fresh and refreshing it from the drama endpoint
// otherwise.
func loadEpisodes(ctx context.Context, cfg *config.Config, st *store.Store, client *missevan.Client, series registry.Series, refresh bool) ([]registry.Episode, error) {
	maxAge := time.Duration(cfg.Missevan.EpisodeListMaxAge) * time.Hour
	if !refresh {
		fresh, err := st.Fresh(ctx, series.ID, maxAge)
		if err != nil {
			return nil, err
		}
		if fresh {
			episodes, _, err := st.Episodes(ctx, series.ID)
			return episodes, err
		}
	}

	episodes, err := client.EpisodeList(ctx, series.ID)
	if err != nil {
		// A stale cache beats no episodes when the endpoint is down.
		if cached, _, cacheErr := st.Episodes(ctx, series.ID); cacheErr == nil {
			return cached, nil
		}
		return nil, err
	}
	if err := st.SaveEpisodes(ctx, series.ID, episodes); err != nil {
		return nil, err
	}
	return episodes, nil
}

// parseEpisodeSelection expands a selection like "1,3-5" into one-based
// episode numbers, deduplicated and in ascending order of first appearance.
func parseEpisodeSelection(selection string, total int) ([]int, error) {
	selection = strings.TrimSpace(selection)
	if selection == "" {
		return nil, nil
	}

	seen := make(map[int]struct{})
	var numbers []int
	add := func(n int) error {
		if n < 1 || n > total {
			return fmt.Errorf("episode %d out of range (series has %d episodes)", n, total)
		}
		if _, ok := seen[n]; ok {
			return nil
		}
		seen[n] = struct{}{}
		numbers = append(numbers, n)
		return nil
	}

	for _, part := range strings.Split(selection, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lo, hi, ok := strings.Cut(part, "-"); ok {
			start, err := strconv.Atoi(strings.TrimSpace(lo))
			if err != nil {
				return nil, fmt.Errorf("invalid episode range %q", part)
			}
			end, err := strconv.Atoi(strings.TrimSpace(hi))
			if err != nil {
				return nil, fmt.Errorf("invalid episode range %q", part)
			}
			if end < start {
				return nil, fmt.Errorf("descending episode range %q", part)
			}
			for n := start; n <= end; n++ {
				if err := add(n); err != nil {
					return nil, err
				}
			}
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid episode number %q", part)
		}
		if err := add(n); err != nil {
			return nil, err
		}
	}
	return numbers, nil
}

// selectEpisodes applies a parsed selection to the full episode list.
func selectEpisodes(episodes []registry.Episode, selection string) ([]registry.Episode, error) {
	numbers, err := parseEpisodeSelection(selection, len(episodes))
	if err != nil {
		return nil, err
	}
	if numbers == nil {
		return episodes, nil
	}
	selected := make([]registry.Episode, 0, len(numbers))
	for _, n := range numbers {
		selected = append(selected, episodes[n-1])
	}
	return selected, nil
}
