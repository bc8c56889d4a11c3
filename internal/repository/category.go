package repository

import (
	"context"
	"errors"

	"github.com/JaedenTYY/justrsvp/internal/models"
	"github.com/JaedenTYY/justrsvp/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

// categoryColumns must match the Scan order in scanCategory.
const categoryColumns = `id, name`

// CategoryRepository persists Category rows.
type CategoryRepository struct {
	db DBTX
}

// NewCategoryRepository creates a CategoryRepository on the given querier.
func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// WithTx returns a copy running every statement on tx.
func (r *CategoryRepository) WithTx(tx pgx.Tx) *CategoryRepository {
	return &CategoryRepository{db: tx}
}

func scanCategory(row pgx.Row) (*models.Category, error) {
	var c models.Category
	if err := row.Scan(&c.ID, &c.Name); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a category and returns the created record including its
// generated id. A duplicate name fails with a conflict error.
func (r *CategoryRepository) Create(ctx context.Context, name string) (*models.Category, error) {
	category, err := scanCategory(r.db.QueryRow(ctx, `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING `+categoryColumns+`
	`, name))
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return category, nil
}

// FindAll returns all categories. Order is unspecified.
func (r *CategoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT `+categoryColumns+` FROM categories`)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return categories, nil
}

// FindByName returns the category with an exact, case-sensitive name match,
// or (nil, nil) when absent. Absence is a normal outcome here, not an
// error.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	category, err := scanCategory(r.db.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE name = $1`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, sqlerr.HandleError(err)
	}
	return category, nil
}

// Exists reports whether a category with the given name exists.
func (r *CategoryRepository) Exists(ctx context.Context, name string) (bool, error) {
	category, err := r.FindByName(ctx, name)
	if err != nil {
		return false, err
	}
	return category != nil, nil
}
