// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist, or update
// data, abstracting SQL logic away from the service layer.
//
// Every repository runs against a DBTX, satisfied by both *pgxpool.Pool and
// pgx.Tx. Pool-backed repositories borrow a connection per statement and
// release it immediately; a WithTx copy runs every statement on the single
// connection held by the transaction.
package repository

import (
	"context"

	"github.com/JaedenTYY/justrsvp/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the minimal querier the repositories need.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories is a container for all repository instances, wired once at
// startup and handed to the service layer.
type Repositories struct {
	Categories *CategoryRepository
	Users      *UserRepository
	Events     *EventRepository
	Orders     *OrderRepository
}

// NewRepositories constructs the repository container on the shared pool.
func NewRepositories(db *database.Database) *Repositories {
	return &Repositories{
		Categories: NewCategoryRepository(db.Pool),
		Users:      NewUserRepository(db.Pool),
		Events:     NewEventRepository(db.Pool),
		Orders:     NewOrderRepository(db.Pool),
	}
}
