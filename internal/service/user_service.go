package service

import (
	"context"

	"github.com/JaedenTYY/justrsvp/internal/database"
	"github.com/JaedenTYY/justrsvp/internal/errs"
	"github.com/JaedenTYY/justrsvp/internal/models"
	"github.com/JaedenTYY/justrsvp/internal/repository"
	"github.com/rs/zerolog"
)

// UserService coordinates user removal across the users, events, and
// orders tables.
//
// The schema has no cascading deletes: dependent rows must survive their
// user, so deletion unlinks them (nulls the foreign key) inside the same
// transaction that removes the user row.
type UserService struct {
	db    *database.Database
	repos *repository.Repositories
	log   *zerolog.Logger
}

// NewUserService creates a UserService.
func NewUserService(db *database.Database, repos *repository.Repositories, logger *zerolog.Logger) *UserService {
	return &UserService{db: db, repos: repos, log: logger}
}

// DeleteByClerkID removes the user identified by its external identity key
// and returns the deleted record.
//
// Protocol:
//  1. look up the user; absence aborts with a not-found error before any
//     transaction is opened, so nothing is mutated
//  2. within one transaction: null organizer_id on the user's events and
//     buyer_id on the user's orders, then delete the user row
//  3. commit; any failure rolls the whole transaction back, so partial
//     unlinking never persists
//
// Two concurrent deletions of the same user cannot both succeed: the loser
// finds no row at the delete step (or blocks on the store's row lock until
// the winner commits) and observes a not-found error. Every other failure
// inside the transaction surfaces as an operation-failed error wrapping
// the cause.
func (s *UserService) DeleteByClerkID(ctx context.Context, clerkID string) (*models.User, error) {
	user, err := s.repos.Users.FindByClerkID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	// One connection is held from here until commit/rollback; unrelated
	// repository calls keep borrowing from the pool independently.
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, errs.NewOperationFailed(err, "Could not begin user deletion")
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	events := s.repos.Events.WithTx(tx)
	orders := s.repos.Orders.WithTx(tx)
	users := s.repos.Users.WithTx(tx)

	// The two unlink statements target disjoint tables; order between them
	// is not significant.
	if err := events.RemoveOrganizer(ctx, user.ID); err != nil {
		return nil, errs.NewOperationFailed(err, "Could not unlink user's events")
	}
	if err := orders.RemoveBuyer(ctx, user.ID); err != nil {
		return nil, errs.NewOperationFailed(err, "Could not unlink user's orders")
	}

	deleted, err := users.Delete(ctx, user.ID)
	if err != nil {
		if errs.IsNotFound(err) {
			// A concurrent deletion won between lookup and delete. The
			// deferred rollback reverts our unlinking, which by then
			// touched no rows anyway.
			return nil, err
		}
		return nil, errs.NewOperationFailed(err, "Could not delete user")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errs.NewOperationFailed(err, "Could not commit user deletion")
	}

	s.log.Info().
		Int("user_id", deleted.ID).
		Str("clerk_id", deleted.ClerkID).
		Msg("deleted user and unlinked dependents")

	return deleted, nil
}
