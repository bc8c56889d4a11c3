package service

import (
	"github.com/JaedenTYY/justrsvp/internal/database"
	"github.com/JaedenTYY/justrsvp/internal/repository"
	"github.com/rs/zerolog"
)

// Services is the container for all service instances.
type Services struct {
	Users *UserService
}

// NewServices constructs the service container over the shared pool and
// repository container.
func NewServices(db *database.Database, repos *repository.Repositories, logger *zerolog.Logger) *Services {
	return &Services{
		Users: NewUserService(db, repos, logger),
	}
}
