// Package analysis reconstructs per-character dialogue from anonymous comment
// streams and aggregates nickname mentions across episodes.
//
// The pipeline per episode: identify staff authors by dialogue-line shape,
// keep only their comments sorted by timestamp, attribute lines to the main
// character via the color heuristic, extract that character's utterance from
// multi-speaker lines, then count nickname occurrences with leftmost-wins
// overlap resolution. The aggregator folds episode tallies into run totals
// and tolerates per-episode retrieval or classification failure.
//
// Everything here is best-effort heuristic classification over noisy
// crowd-sourced data, not verified transcript extraction.
package analysis
