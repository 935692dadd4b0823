package config

const (
	defaultDataDir        = "~/.local/share/maku"
	defaultOutputDir      = "~/.local/share/maku/output"
	defaultLogDir         = "~/.local/share/maku/logs"
	defaultSeriesFile     = "~/.config/maku/drama.json"
	defaultCharactersFile = "~/.config/maku/characters.json"

	defaultMissevanBaseURL    = "https://www.missevan.com"
	defaultRequestTimeout     = 30
	defaultRetryAttempts      = 5
	defaultRetryBaseDelay     = 2
	defaultUserAgent          = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	defaultEpisodeListMaxAge  = 24
	defaultStaffThreshold     = 5
	defaultPacingMinMs        = 1000
	defaultPacingMaxMs        = 2500
	defaultNotifyTimeout      = 10
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:        defaultDataDir,
			OutputDir:      defaultOutputDir,
			LogDir:         defaultLogDir,
			SeriesFile:     defaultSeriesFile,
			CharactersFile: defaultCharactersFile,
		},
		Missevan: Missevan{
			BaseURL:           defaultMissevanBaseURL,
			RequestTimeout:    defaultRequestTimeout,
			RetryAttempts:     defaultRetryAttempts,
			RetryBaseDelay:    defaultRetryBaseDelay,
			UserAgent:         defaultUserAgent,
			EpisodeListMaxAge: defaultEpisodeListMaxAge,
		},
		Analysis: Analysis{
			StaffThreshold: defaultStaffThreshold,
			ExactMatch:     false,
			PacingMinMs:    defaultPacingMinMs,
			PacingMaxMs:    defaultPacingMaxMs,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			RunStarted:     true,
			EpisodeSkipped: true,
			RunCompleted:   true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
