// Package report renders analysis artifacts: per-episode subtitle dumps,
// per-character line dumps, and mention reports in grouped text and tabular
// CSV form.
//
// Iteration over characters and nicknames follows registry declaration
// order so repeated runs over identical data produce byte-identical files.
// CSV output is prefixed with a UTF-8 byte order mark because the files are
// routinely opened in spreadsheet applications that need it to detect the
// encoding.
package report
