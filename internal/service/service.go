// Package service contains the operations that span more than one table.
//
// It sits on top of the repository layer. Single-statement operations go
// straight to the repositories; the one genuinely multi-table, transactional
// operation (removing a user while unlinking its dependent rows) lives
// here so the transaction boundary is owned in exactly one place.
package service
