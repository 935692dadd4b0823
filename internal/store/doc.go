// Package store persists cached episode lists and run history in a local
// SQLite database.
//
// The episode cache avoids refetching a series' episode list on every run;
// entries carry a fetch timestamp so callers can enforce a maximum age. The
// runs table records each aggregation run's outcome for later inspection.
//
// The schema is versioned via the schema_version table. To add tables or
// columns, update schema.sql and bump schemaVersion; existing databases must
// be deleted after a bump.
package store
