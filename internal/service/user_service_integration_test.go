//go:build integration
// +build integration

package service_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/JaedenTYY/justrsvp/internal/database"
	"github.com/JaedenTYY/justrsvp/internal/errs"
	"github.com/JaedenTYY/justrsvp/internal/models"
	"github.com/JaedenTYY/justrsvp/internal/repository"
	"github.com/JaedenTYY/justrsvp/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	testDB    *database.Database
	testRepos *repository.Repositories
	testUsers *service.UserService
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("justrsvp_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start postgres container: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "failed to terminate postgres container: %v\n", err)
		}
	}()

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get connection string: %v\n", err)
		os.Exit(1)
	}

	log := zerolog.Nop()
	if err := database.MigrateURL(ctx, &log, dsn); err != nil {
		fmt.Fprintf(os.Stderr, "failed to migrate test database: %v\n", err)
		os.Exit(1)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to test database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	testDB = &database.Database{Pool: pool}
	testRepos = repository.NewRepositories(testDB)
	testUsers = service.NewServices(testDB, testRepos, &log).Users

	os.Exit(m.Run())
}

func cleanupTables(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		_, err := testDB.Pool.Exec(context.Background(),
			"TRUNCATE orders, events, users, categories RESTART IDENTITY")
		if err != nil {
			t.Logf("failed to truncate tables: %v", err)
		}
	})
}

func seedUserWithDependents(t *testing.T, clerkID string) (*models.User, *models.Event, *models.Order) {
	t.Helper()
	ctx := context.Background()

	user, err := testRepos.Users.Create(ctx, models.CreateUserParams{
		ClerkID:   clerkID,
		Email:     clerkID + "@example.com",
		Username:  clerkID,
		FirstName: "Doomed",
		LastName:  "User",
		Photo:     "https://example.com/doomed.png",
	})
	require.NoError(t, err)

	start := time.Now().Add(24 * time.Hour)
	event, err := testRepos.Events.Create(ctx, models.CreateEventParams{
		Title:         "Event by " + clerkID,
		ImageURL:      "https://example.com/event.png",
		StartDateTime: start,
		EndDateTime:   start.Add(time.Hour),
		IsFree:        true,
		OrganizerID:   &user.ID,
	})
	require.NoError(t, err)

	order, err := testRepos.Orders.Create(ctx, models.CreateOrderParams{
		StripeID:    "cs_" + clerkID,
		TotalAmount: "30.00",
		EventID:     &event.ID,
		BuyerID:     &user.ID,
	})
	require.NoError(t, err)

	return user, event, order
}

func TestUserService_DeleteUnlinksDependentsAndRemovesUser(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()

	user, event, order := seedUserWithDependents(t, "user_delete_me")

	deleted, err := testUsers.DeleteByClerkID(ctx, "user_delete_me")
	require.NoError(t, err)
	assert.Equal(t, user.ID, deleted.ID)

	_, err = testRepos.Users.FindByClerkID(ctx, "user_delete_me")
	assert.True(t, errs.IsNotFound(err))

	// Dependents survive with their references nulled.
	details, err := testRepos.Events.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Nil(t, details.OrganizerID)

	found, err := testRepos.Orders.FindByStripeID(ctx, order.StripeID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Nil(t, found.BuyerID)
	require.NotNil(t, found.EventID)
	assert.Equal(t, event.ID, *found.EventID)
}

func TestUserService_DeleteAbsentUserMutatesNothing(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()

	other, event, _ := seedUserWithDependents(t, "user_bystander")

	_, err := testUsers.DeleteByClerkID(ctx, "user_missing")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))

	// The bystander's rows are untouched.
	details, err := testRepos.Events.FindByID(ctx, event.ID)
	require.NoError(t, err)
	require.NotNil(t, details.OrganizerID)
	assert.Equal(t, other.ID, *details.OrganizerID)
}

func TestUserService_ConcurrentDeleteHasExactlyOneWinner(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()

	seedUserWithDependents(t, "user_contested")

	const attempts = 2
	results := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = testUsers.DeleteByClerkID(ctx, "user_contested")
		}(i)
	}
	wg.Wait()

	var wins, notFound int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errs.IsNotFound(err):
			notFound++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, notFound)

	_, err := testRepos.Users.FindByClerkID(ctx, "user_contested")
	assert.True(t, errs.IsNotFound(err))
}
