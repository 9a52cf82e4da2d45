// SPDX-License-Identifier: MIT
// Package library keeps a catalog of named automata in a SQLite database.
//
// Each entry stores the model's JSON document (the jsoncodec layout) next
// to a few summary columns, so listings never decode documents. Entries
// have a stable UUID that survives replacement under the same name.
//
// The database is opened with the pure-Go modernc.org/sqlite driver; a
// Store is safe for concurrent use through database/sql.
package library
