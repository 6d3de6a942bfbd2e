// Package store persists soundings and inversion runs in a single
// SQLite file, so a survey's data and every interpretation attempt
// against it stay together and queryable.
//
// Soundings are keyed by name and upsert on save. Runs are immutable,
// identified by UUID and listed newest-first per sounding. Payloads
// travel as JSON blobs next to indexed scalar columns (misfit, RMS,
// convergence) so the interesting numbers stay visible to plain SQL.
//
// The driver is modernc.org/sqlite: pure Go, no cgo, nothing to
// install.
package store
