package repository

import (
	"context"
	"errors"

	"github.com/JaedenTYY/justrsvp/internal/errs"
	"github.com/JaedenTYY/justrsvp/internal/models"
	"github.com/JaedenTYY/justrsvp/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

// orderColumns must match the Scan order in scanOrder.
const orderColumns = `id, created_at, stripe_id, total_amount, event_id, buyer_id`

var orderUpdatable = map[string]struct{}{
	"stripe_id":    {},
	"total_amount": {},
	"event_id":     {},
	"buyer_id":     {},
}

// OrderRepository persists Order rows.
type OrderRepository struct {
	db DBTX
}

// NewOrderRepository creates an OrderRepository on the given querier.
func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

// WithTx returns a copy running every statement on tx.
func (r *OrderRepository) WithTx(tx pgx.Tx) *OrderRepository {
	return &OrderRepository{db: tx}
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.CreatedAt, &o.StripeID, &o.TotalAmount, &o.EventID, &o.BuyerID)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserts an order and returns the created record. A duplicate
// stripe_id fails with a conflict error; foreign-key targets that do not
// exist fail with an invalid reference error from the store's constraint.
func (r *OrderRepository) Create(ctx context.Context, params models.CreateOrderParams) (*models.Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx, `
		INSERT INTO orders (stripe_id, total_amount, event_id, buyer_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+orderColumns+`
	`, params.StripeID, params.TotalAmount, params.EventID, params.BuyerID))
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return order, nil
}

// FindByStripeID looks up an order by its external payment key, for
// payment reconciliation. Absence is a normal outcome and returns
// (nil, nil), not an error.
func (r *OrderRepository) FindByStripeID(ctx context.Context, stripeID string) (*models.Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE stripe_id = $1`, stripeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, sqlerr.HandleError(err)
	}
	return order, nil
}

// GetOrdersByEvent returns every order for the given event, join-free, so
// orders with a null buyer_id are still included.
func (r *OrderRepository) GetOrdersByEvent(ctx context.Context, eventID int) ([]models.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE event_id = $1`, eventID)
}

// GetOrdersByUser returns every order placed by the given buyer.
func (r *OrderRepository) GetOrdersByUser(ctx context.Context, buyerID int) ([]models.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE buyer_id = $1`, buyerID)
}

func (r *OrderRepository) list(ctx context.Context, sql string, args ...any) ([]models.Order, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, sqlerr.HandleError(err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return orders, nil
}

// OrdersWithDetails returns the reporting view joining each order with its
// event title and buyer display name.
//
// The joins are deliberately INNER: an order whose event or buyer has been
// unlinked (foreign key nulled) drops out of this view while the plain
// queries above keep returning it. That mirrors the upstream reporting
// behavior; revisit with LEFT JOINs if unlinked orders should appear.
func (r *OrderRepository) OrdersWithDetails(ctx context.Context) ([]models.OrderItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT o.id, o.total_amount, o.created_at,
		       e.title AS event_title, e.id AS event_id,
		       CONCAT(u.first_name, ' ', u.last_name) AS buyer
		FROM orders o
		JOIN events e ON o.event_id = e.id
		JOIN users u ON o.buyer_id = u.id
	`)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(&item.ID, &item.TotalAmount, &item.CreatedAt,
			&item.EventTitle, &item.EventID, &item.Buyer)
		if err != nil {
			return nil, sqlerr.HandleError(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return items, nil
}

// Update applies only the supplied fields to the order and returns the
// post-update record.
func (r *OrderRepository) Update(ctx context.Context, id int, fields *Fields) (*models.Order, error) {
	sql, args, err := buildUpdate("orders", orderUpdatable, fields, "id", id, orderColumns)
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFound("ORDER_NOT_FOUND", "Order not found")
		}
		return nil, sqlerr.HandleError(err)
	}
	return order, nil
}

// Delete removes the order by id.
func (r *OrderRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFound("ORDER_NOT_FOUND", "Order not found")
	}
	return nil
}

// RemoveBuyer nulls buyer_id on every order referencing the given user.
// Idempotent: no remaining references is a no-op, not an error.
func (r *OrderRepository) RemoveBuyer(ctx context.Context, buyerID int) error {
	_, err := r.db.Exec(ctx,
		`UPDATE orders SET buyer_id = NULL WHERE buyer_id = $1`, buyerID)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	return nil
}
