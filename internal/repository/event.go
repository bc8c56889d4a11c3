package repository

import (
	"context"
	"errors"

	"github.com/JaedenTYY/justrsvp/internal/errs"
	"github.com/JaedenTYY/justrsvp/internal/models"
	"github.com/JaedenTYY/justrsvp/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

// eventColumns must match the Scan order in scanEvent.
const eventColumns = `id, title, description, location, created_at, image_url, start_date_time, end_date_time, price, is_free, url, category_id, organizer_id`

// eventDetailsQuery joins in the category name and organizer names for the
// denormalized read view. Left joins, so events with no category or an
// unlinked organizer still come back, with nil display fields.
const eventDetailsQuery = `
	SELECT e.id, e.title, e.description, e.location, e.created_at, e.image_url,
	       e.start_date_time, e.end_date_time, e.price, e.is_free, e.url,
	       e.category_id, e.organizer_id,
	       c.name AS category_name,
	       u.first_name AS organizer_first_name,
	       u.last_name AS organizer_last_name
	FROM events e
	LEFT JOIN categories c ON e.category_id = c.id
	LEFT JOIN users u ON e.organizer_id = u.id`

var eventUpdatable = map[string]struct{}{
	"title":           {},
	"description":     {},
	"location":        {},
	"image_url":       {},
	"start_date_time": {},
	"end_date_time":   {},
	"price":           {},
	"is_free":         {},
	"url":             {},
	"category_id":     {},
	"organizer_id":    {},
}

// EventRepository persists Event rows.
type EventRepository struct {
	db DBTX
}

// NewEventRepository creates an EventRepository on the given querier.
func NewEventRepository(db DBTX) *EventRepository {
	return &EventRepository{db: db}
}

// WithTx returns a copy running every statement on tx.
func (r *EventRepository) WithTx(tx pgx.Tx) *EventRepository {
	return &EventRepository{db: tx}
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.CreatedAt,
		&e.ImageURL, &e.StartDateTime, &e.EndDateTime, &e.Price, &e.IsFree,
		&e.URL, &e.CategoryID, &e.OrganizerID)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func scanEventDetails(row pgx.Row) (*models.EventDetails, error) {
	var e models.EventDetails
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.CreatedAt,
		&e.ImageURL, &e.StartDateTime, &e.EndDateTime, &e.Price, &e.IsFree,
		&e.URL, &e.CategoryID, &e.OrganizerID,
		&e.CategoryName, &e.OrganizerFirstName, &e.OrganizerLastName)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts an event and returns the created record. Foreign keys are
// optional; a target that does not exist fails the insert with an invalid
// reference error from the store's own constraint, no pre-check is made.
func (r *EventRepository) Create(ctx context.Context, params models.CreateEventParams) (*models.Event, error) {
	event, err := scanEvent(r.db.QueryRow(ctx, `
		INSERT INTO events (title, description, location, image_url, start_date_time, end_date_time, price, is_free, url, category_id, organizer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+eventColumns+`
	`, params.Title, params.Description, params.Location, params.ImageURL,
		params.StartDateTime, params.EndDateTime, params.Price, params.IsFree,
		params.URL, params.CategoryID, params.OrganizerID))
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return event, nil
}

// FindByID returns the denormalized record for one event.
func (r *EventRepository) FindByID(ctx context.Context, id int) (*models.EventDetails, error) {
	event, err := scanEventDetails(r.db.QueryRow(ctx, eventDetailsQuery+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFound("EVENT_NOT_FOUND", "Event not found")
		}
		return nil, sqlerr.HandleError(err)
	}
	return event, nil
}

// GetAll returns the denormalized record for every event.
func (r *EventRepository) GetAll(ctx context.Context) ([]models.EventDetails, error) {
	rows, err := r.db.Query(ctx, eventDetailsQuery)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	var events []models.EventDetails
	for rows.Next() {
		event, err := scanEventDetails(rows)
		if err != nil {
			return nil, sqlerr.HandleError(err)
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return events, nil
}

// Update applies only the supplied fields to the event and returns the
// post-update record.
func (r *EventRepository) Update(ctx context.Context, id int, fields *Fields) (*models.Event, error) {
	sql, args, err := buildUpdate("events", eventUpdatable, fields, "id", id, eventColumns)
	if err != nil {
		return nil, err
	}

	event, err := scanEvent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFound("EVENT_NOT_FOUND", "Event not found")
		}
		return nil, sqlerr.HandleError(err)
	}
	return event, nil
}

// Delete removes the event by id. Orders still referencing the event make
// the store reject the delete with an invalid reference error; callers
// unlink or remove them first.
func (r *EventRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFound("EVENT_NOT_FOUND", "Event not found")
	}
	return nil
}

// GetEventsByOrganizer returns every event organized by the given user,
// without joins, so rows with null foreign keys elsewhere are unaffected.
func (r *EventRepository) GetEventsByOrganizer(ctx context.Context, organizerID int) ([]models.Event, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE organizer_id = $1`, organizerID)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, sqlerr.HandleError(err)
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return events, nil
}

// RemoveOrganizer nulls organizer_id on every event referencing the given
// user. Idempotent: no remaining references is a no-op, not an error.
func (r *EventRepository) RemoveOrganizer(ctx context.Context, organizerID int) error {
	_, err := r.db.Exec(ctx,
		`UPDATE events SET organizer_id = NULL WHERE organizer_id = $1`, organizerID)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	return nil
}
