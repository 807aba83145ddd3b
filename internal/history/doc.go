// Package history keeps a SQLite ledger of generated render scripts.
//
// Every completed run records its identifier, the script it wrote, and how
// many demos, spans and skipped logs it saw, plus one row per demo. The
// ledger is informational: callers treat write failures as warnings so a
// broken database never blocks script generation.
package history
