// Package models holds the plain data records the persistence layer reads
// and writes. Nullable columns are pointers; everything else is a value.
package models

import "time"

// Category is a leaf entity with no foreign keys. Name is globally unique.
type Category struct {
	ID   int
	Name string
}

// User is keyed externally by ClerkID, the identifier handed out by the
// authentication provider. ClerkID, Email and Username are globally unique.
type User struct {
	ID        int
	ClerkID   string
	Email     string
	Username  string
	FirstName string
	LastName  string
	Photo     string
}

// Event references Category and User through nullable foreign keys.
// Deleting the referenced row nulls the reference instead of cascading.
type Event struct {
	ID            int
	Title         string
	Description   *string
	Location      *string
	CreatedAt     time.Time
	ImageURL      string
	StartDateTime time.Time
	EndDateTime   time.Time
	Price         *string
	IsFree        bool
	URL           *string
	CategoryID    *int
	OrganizerID   *int
}

// EventDetails is the denormalized read view of an Event: the category name
// and organizer names are pulled in via left joins, so they stay nil when
// the event has no category or its organizer was unlinked.
type EventDetails struct {
	Event
	CategoryName       *string
	OrganizerFirstName *string
	OrganizerLastName  *string
}

// Order is a leaf in the reference graph. StripeID is the unique key of the
// external payment. TotalAmount stays a string because the upstream payment
// provider reports amounts as strings.
type Order struct {
	ID          int
	CreatedAt   time.Time
	StripeID    string
	TotalAmount string
	EventID     *int
	BuyerID     *int
}

// OrderItem is the denormalized reporting row combining an order with its
// event title and the buyer's display name. Built from inner joins, so
// orders whose event or buyer has been unlinked do not appear.
type OrderItem struct {
	ID          int
	TotalAmount string
	CreatedAt   time.Time
	EventTitle  string
	EventID     int
	Buyer       string
}

// CreateUserParams carries the caller-supplied fields for a new user.
type CreateUserParams struct {
	ClerkID   string
	Email     string
	Username  string
	FirstName string
	LastName  string
	Photo     string
}

// CreateEventParams carries the caller-supplied fields for a new event.
// Foreign keys are optional; the store's own constraints reject targets
// that do not exist.
type CreateEventParams struct {
	Title         string
	Description   *string
	Location      *string
	ImageURL      string
	StartDateTime time.Time
	EndDateTime   time.Time
	Price         *string
	IsFree        bool
	URL           *string
	CategoryID    *int
	OrganizerID   *int
}

// CreateOrderParams carries the caller-supplied fields for a new order.
type CreateOrderParams struct {
	StripeID    string
	TotalAmount string
	EventID     *int
	BuyerID     *int
}
