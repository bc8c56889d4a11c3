// Package sqlerr specifically handles database driver errors.
//
// It parses cryptic SQLSTATE codes from the PostgreSQL driver and
// converts them into the typed error kinds of the errs package
// (e.g. converting a "unique violation" into a conflict error).
package sqlerr
