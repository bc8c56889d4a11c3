package repository

import (
	"context"
	"errors"

	"github.com/JaedenTYY/justrsvp/internal/errs"
	"github.com/JaedenTYY/justrsvp/internal/models"
	"github.com/JaedenTYY/justrsvp/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

// userColumns must match the Scan order in scanUser.
const userColumns = `id, clerk_id, email, username, first_name, last_name, photo`

// userUpdatable is the fixed allow-list of columns a partial update may
// touch. Field names outside this set are rejected, never interpolated.
var userUpdatable = map[string]struct{}{
	"email":      {},
	"username":   {},
	"first_name": {},
	"last_name":  {},
	"photo":      {},
}

// UserRepository persists User rows.
//
// Delete here is a low-level primitive by surrogate id; user removal that
// must also unlink dependent events and orders goes through the service
// layer's deletion coordinator.
type UserRepository struct {
	db DBTX
}

// NewUserRepository creates a UserRepository on the given querier.
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a copy running every statement on tx.
func (r *UserRepository) WithTx(tx pgx.Tx) *UserRepository {
	return &UserRepository{db: tx}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.ClerkID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.Photo)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a user and returns the created record. Duplicate
// clerk_id, email, or username each fail with a conflict error.
func (r *UserRepository) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, `
		INSERT INTO users (clerk_id, email, username, first_name, last_name, photo)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns+`
	`, params.ClerkID, params.Email, params.Username, params.FirstName, params.LastName, params.Photo))
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return user, nil
}

// FindByID looks up a user by surrogate id.
func (r *UserRepository) FindByID(ctx context.Context, id int) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFound("USER_NOT_FOUND", "User not found")
		}
		return nil, sqlerr.HandleError(err)
	}
	return user, nil
}

// FindByClerkID looks up a user by its external identity key.
func (r *UserRepository) FindByClerkID(ctx context.Context, clerkID string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE clerk_id = $1`, clerkID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFound("USER_NOT_FOUND", "User not found")
		}
		return nil, sqlerr.HandleError(err)
	}
	return user, nil
}

// UpdateByClerkID applies only the supplied fields to the user with the
// given clerk_id and returns the post-update record.
func (r *UserRepository) UpdateByClerkID(ctx context.Context, clerkID string, fields *Fields) (*models.User, error) {
	sql, args, err := buildUpdate("users", userUpdatable, fields, "clerk_id", clerkID, userColumns)
	if err != nil {
		return nil, err
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFound("USER_NOT_FOUND", "User not found")
		}
		return nil, sqlerr.HandleError(err)
	}
	return user, nil
}

// Delete removes the user by surrogate id and returns the deleted record.
func (r *UserRepository) Delete(ctx context.Context, id int) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`DELETE FROM users WHERE id = $1 RETURNING `+userColumns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFound("USER_NOT_FOUND", "User not found")
		}
		return nil, sqlerr.HandleError(err)
	}
	return user, nil
}
