// Command seed inserts a small demo dataset through the repository layer:
// a few categories, a user, an event organized by that user, and a paid
// order. Re-running it is safe; rows that already exist are reused.
package main

import (
	"context"
	"os"
	"time"

	"github.com/JaedenTYY/justrsvp/internal/app"
	"github.com/JaedenTYY/justrsvp/internal/errs"
	"github.com/JaedenTYY/justrsvp/internal/models"
	"github.com/JaedenTYY/justrsvp/internal/repository"
	"github.com/rs/zerolog"
)

func main() {
	ctx := context.Background()

	a, err := app.New(ctx)
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = a.Shutdown(ctx) }()

	log := a.Logger
	repos := a.Repositories

	for _, name := range []string{"Tech", "Music", "Workshop"} {
		seedCategory(ctx, log, repos.Categories, name)
	}

	user := seedUser(ctx, log, repos.Users)

	// Events carry no natural unique key, so the demo event and its order
	// are guarded together by the order's stripe id.
	existing, err := repos.Orders.FindByStripeID(ctx, seedStripeID)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not look up seed order.")
	}
	if existing != nil {
		log.Info().Int("order_id", existing.ID).Msg("Seed order already exists.")
		return
	}

	event := seedEvent(ctx, log, repos, user)
	seedOrder(ctx, log, repos.Orders, event, user)
}

const seedStripeID = "cs_seed_demo"

func seedCategory(ctx context.Context, log *zerolog.Logger, categories *repository.CategoryRepository, name string) {
	_, err := categories.Create(ctx, name)
	switch {
	case err == nil:
		log.Info().Str("name", name).Msg("Seeded category.")
	case errs.IsConflict(err):
		log.Info().Str("name", name).Msg("Category already exists.")
	default:
		log.Fatal().Err(err).Str("name", name).Msg("Could not seed category.")
	}
}

func seedUser(ctx context.Context, log *zerolog.Logger, users *repository.UserRepository) *models.User {
	const clerkID = "user_seed_demo"

	user, err := users.Create(ctx, models.CreateUserParams{
		ClerkID:   clerkID,
		Email:     "demo@justrsvp.dev",
		Username:  "demo",
		FirstName: "Demo",
		LastName:  "Organizer",
		Photo:     "https://justrsvp.dev/avatars/demo.png",
	})
	if err == nil {
		log.Info().Int("user_id", user.ID).Msg("Seeded user.")
		return user
	}
	if !errs.IsConflict(err) {
		log.Fatal().Err(err).Msg("Could not seed user.")
	}

	user, err = users.FindByClerkID(ctx, clerkID)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load existing seed user.")
	}
	log.Info().Int("user_id", user.ID).Msg("Seed user already exists.")
	return user
}

func seedEvent(ctx context.Context, log *zerolog.Logger, repos *repository.Repositories, organizer *models.User) *models.Event {
	category, err := repos.Categories.FindByName(ctx, "Tech")
	if err != nil {
		log.Fatal().Err(err).Msg("Could not look up seed category.")
	}

	description := "A hands-on evening about PostgreSQL internals."
	location := "Community Hall, Main St 4"
	price := "25.00"
	start := time.Now().AddDate(0, 1, 0).Truncate(time.Hour)

	event, err := repos.Events.Create(ctx, models.CreateEventParams{
		Title:         "PostgreSQL Deep Dive",
		Description:   &description,
		Location:      &location,
		ImageURL:      "https://justrsvp.dev/images/pg-deep-dive.png",
		StartDateTime: start,
		EndDateTime:   start.Add(3 * time.Hour),
		Price:         &price,
		IsFree:        false,
		CategoryID:    &category.ID,
		OrganizerID:   &organizer.ID,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Could not seed event.")
	}
	log.Info().Int("event_id", event.ID).Msg("Seeded event.")
	return event
}

func seedOrder(ctx context.Context, log *zerolog.Logger, orders *repository.OrderRepository, event *models.Event, buyer *models.User) {
	order, err := orders.Create(ctx, models.CreateOrderParams{
		StripeID:    seedStripeID,
		TotalAmount: "25.00",
		EventID:     &event.ID,
		BuyerID:     &buyer.ID,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Could not seed order.")
	}
	log.Info().Int("order_id", order.ID).Msg("Seeded order.")
}
