// Package sqlite provides SQLite-backed persistence for documents,
// chunks and comparisons. A single Store owns the database connection
// and hands out typed store interfaces through wrapper types.
package sqlite
