// Package registry loads the read-only configuration inputs for analysis
// runs: the series catalog (drama.json), the character registry
// (characters.json), and cached episode lists in CSV form.
//
// The character registry preserves declaration order. Nickname matching
// resolves length ties by discovery order, so iteration over characters and
// nicknames has to be deterministic across runs; a plain map would not be.
//
// Episode CSV files follow the layout written by earlier tooling: a
// name,id header row, UTF-8 with an optional byte order mark. The BOM is
// tolerated on read and emitted on write so spreadsheet applications keep
// working with the files.
package registry
