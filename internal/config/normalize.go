package config

import "strings"

// normalize expands path fields and fills blanks with defaults so the rest
// of the program never needs to re-check them.
func (c *Config) normalize() error {
	defaults := Default()

	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaults.Paths.DataDir
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaults.Paths.OutputDir
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaults.Paths.LogDir
	}
	if strings.TrimSpace(c.Paths.SeriesFile) == "" {
		c.Paths.SeriesFile = defaults.Paths.SeriesFile
	}
	if strings.TrimSpace(c.Paths.CharactersFile) == "" {
		c.Paths.CharactersFile = defaults.Paths.CharactersFile
	}

	for _, field := range []*string{
		&c.Paths.DataDir,
		&c.Paths.OutputDir,
		&c.Paths.LogDir,
		&c.Paths.SeriesFile,
		&c.Paths.CharactersFile,
	} {
		expanded, err := expandPath(strings.TrimSpace(*field))
		if err != nil {
			return err
		}
		*field = expanded
	}

	c.Missevan.BaseURL = strings.TrimRight(strings.TrimSpace(c.Missevan.BaseURL), "/")
	if c.Missevan.BaseURL == "" {
		c.Missevan.BaseURL = defaults.Missevan.BaseURL
	}
	if c.Missevan.RequestTimeout <= 0 {
		c.Missevan.RequestTimeout = defaults.Missevan.RequestTimeout
	}
	if c.Missevan.RetryAttempts <= 0 {
		c.Missevan.RetryAttempts = defaults.Missevan.RetryAttempts
	}
	if c.Missevan.RetryBaseDelay <= 0 {
		c.Missevan.RetryBaseDelay = defaults.Missevan.RetryBaseDelay
	}
	c.Missevan.UserAgent = strings.TrimSpace(c.Missevan.UserAgent)
	if c.Missevan.UserAgent == "" {
		c.Missevan.UserAgent = defaults.Missevan.UserAgent
	}
	if c.Missevan.EpisodeListMaxAge <= 0 {
		c.Missevan.EpisodeListMaxAge = defaults.Missevan.EpisodeListMaxAge
	}

	if c.Analysis.StaffThreshold <= 0 {
		c.Analysis.StaffThreshold = defaults.Analysis.StaffThreshold
	}
	if c.Analysis.PacingMinMs < 0 {
		c.Analysis.PacingMinMs = 0
	}
	if c.Analysis.PacingMaxMs < c.Analysis.PacingMinMs {
		c.Analysis.PacingMaxMs = c.Analysis.PacingMinMs
	}

	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaults.Notifications.RequestTimeout
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaults.Logging.Format
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}

	return nil
}
