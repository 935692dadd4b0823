// Package config loads and validates the maku configuration file.
//
// Configuration lives in TOML at ~/.config/maku/config.toml, with a
// project-local maku.toml as fallback. Load applies defaults, expands ~ in
// path fields, and validates the result so the rest of the program can
// trust every field. CreateSample writes the embedded annotated sample for
// `maku config init`.
package config
