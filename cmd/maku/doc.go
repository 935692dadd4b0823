// Package main hosts the maku CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the series catalog, episode list
// retrieval and caching, the mention analysis run itself, subtitle dumps,
// and run history. It centralizes configuration resolution and structured
// logging setup so subcommands can focus on user experience.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
