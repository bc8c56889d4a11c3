//go:build integration
// +build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/JaedenTYY/justrsvp/internal/errs"
	"github.com/JaedenTYY/justrsvp/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRepository_CreateAndFindByID(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	category := createTestCategory(t, repos)
	organizer := createTestUser(t, repos)

	description := "An evening of talks."
	price := "10.00"
	start := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)

	created, err := repos.Events.Create(ctx, models.CreateEventParams{
		Title:         "Autumn Meetup",
		Description:   &description,
		ImageURL:      "https://example.com/meetup.png",
		StartDateTime: start,
		EndDateTime:   start.Add(3 * time.Hour),
		Price:         &price,
		IsFree:        false,
		CategoryID:    &category.ID,
		OrganizerID:   &organizer.ID,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	details, err := repos.Events.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Autumn Meetup", details.Title)
	require.NotNil(t, details.CategoryName)
	assert.Equal(t, category.Name, *details.CategoryName)
	require.NotNil(t, details.OrganizerFirstName)
	assert.Equal(t, organizer.FirstName, *details.OrganizerFirstName)
}

func TestEventRepository_CreateWithMissingCategoryIsInvalidReference(t *testing.T) {
	repos := setupRepos(t)

	missing := 999999
	start := time.Now().Add(24 * time.Hour)

	_, err := repos.Events.Create(context.Background(), models.CreateEventParams{
		Title:         "Orphan Event",
		ImageURL:      "https://example.com/orphan.png",
		StartDateTime: start,
		EndDateTime:   start.Add(time.Hour),
		IsFree:        true,
		CategoryID:    &missing,
	})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidReference(err))
}

func TestEventRepository_DetailsViewKeepsEventsWithoutReferences(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	// No category, no organizer: the left joins must still return the row.
	event := createTestEvent(t, repos, nil, nil)

	details, err := repos.Events.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Nil(t, details.CategoryName)
	assert.Nil(t, details.OrganizerFirstName)
	assert.Nil(t, details.OrganizerLastName)

	all, err := repos.Events.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestEventRepository_PartialUpdate(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	event := createTestEvent(t, repos, nil, nil)

	price := "15.00"
	updated, err := repos.Events.Update(ctx, event.ID,
		NewFields().Set("price", price).Set("is_free", false))
	require.NoError(t, err)

	require.NotNil(t, updated.Price)
	assert.Equal(t, price, *updated.Price)
	assert.False(t, updated.IsFree)
	assert.Equal(t, event.Title, updated.Title)
	assert.Equal(t, event.ImageURL, updated.ImageURL)
}

func TestEventRepository_UpdateCanNullForeignKey(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	category := createTestCategory(t, repos)
	event := createTestEvent(t, repos, &category.ID, nil)
	require.NotNil(t, event.CategoryID)

	updated, err := repos.Events.Update(ctx, event.ID,
		NewFields().Set("category_id", nil))
	require.NoError(t, err)
	assert.Nil(t, updated.CategoryID)
}

func TestEventRepository_DeleteAbsentIsNotFound(t *testing.T) {
	repos := setupRepos(t)

	err := repos.Events.Delete(context.Background(), 999999)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestEventRepository_DeleteBlockedByReferencingOrder(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	event := createTestEvent(t, repos, nil, nil)
	createTestOrder(t, repos, &event.ID, nil)

	err := repos.Events.Delete(ctx, event.ID)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidReference(err))

	// Still present.
	_, err = repos.Events.FindByID(ctx, event.ID)
	require.NoError(t, err)
}

func TestEventRepository_GetEventsByOrganizer(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	organizer := createTestUser(t, repos)
	other := createTestUser(t, repos)

	createTestEvent(t, repos, nil, &organizer.ID)
	createTestEvent(t, repos, nil, &organizer.ID)
	createTestEvent(t, repos, nil, &other.ID)

	events, err := repos.Events.GetEventsByOrganizer(ctx, organizer.ID)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestEventRepository_RemoveOrganizer(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	organizer := createTestUser(t, repos)
	event := createTestEvent(t, repos, nil, &organizer.ID)

	require.NoError(t, repos.Events.RemoveOrganizer(ctx, organizer.ID))

	details, err := repos.Events.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Nil(t, details.OrganizerID)
	assert.Nil(t, details.OrganizerFirstName)

	// Idempotent.
	require.NoError(t, repos.Events.RemoveOrganizer(ctx, organizer.ID))
}

func TestEventRepository_RemoveOrganizerRollsBackWithTransaction(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	organizer := createTestUser(t, repos)
	event := createTestEvent(t, repos, nil, &organizer.ID)

	tx, err := testPool.Begin(ctx)
	require.NoError(t, err)

	require.NoError(t, repos.Events.WithTx(tx).RemoveOrganizer(ctx, organizer.ID))
	require.NoError(t, tx.Rollback(ctx))

	details, err := repos.Events.FindByID(ctx, event.ID)
	require.NoError(t, err)
	require.NotNil(t, details.OrganizerID)
	assert.Equal(t, organizer.ID, *details.OrganizerID)
}
