// Package store provides SQLite-backed storage for service records.
//
// Three tables are kept in one database file:
//   - users: operators offered by the record form
//   - records: service tickets
//   - logs: audit trail, one row per committed mutation
//
// # Write Discipline
//
// Every mutating method runs in its own transaction and commits before
// returning. The audit log row is written inside that same transaction, so
// a mutation and its log line land together or not at all. InsertRecords
// commits once for the whole batch; one bad row rolls back every row.
//
// Updates and deletes do not check for existence first. An absent id is a
// silent no-op and leaves no log row.
//
// # Query Safety
//
// FindRecordsByField only accepts record.Field values and maps them to
// column names through a fixed table. Caller text is always bound as a
// parameter, never spliced into SQL.
//
// # Database Configuration
//
//   - WAL mode
//   - busy_timeout=5000
//   - one open connection; the store assumes a single active user
package store
