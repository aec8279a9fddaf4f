package di

import (
	"github.com/eventbooking/event-booking-api/internal/handler"
	"github.com/eventbooking/event-booking-api/internal/repository"
	"github.com/eventbooking/event-booking-api/internal/seed"
	"github.com/eventbooking/event-booking-api/internal/service"
	"github.com/eventbooking/event-booking-api/pkg/database"
	"github.com/eventbooking/event-booking-api/pkg/redis"
)

// Container holds all dependencies for the event booking service
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *redis.Client

	// Repositories
	EventRepo repository.EventRepository

	// Services
	EventService service.EventService

	// Handlers
	HealthHandler *handler.HealthHandler
	EventHandler  *handler.EventHandler

	// Seeder
	Seeder *seed.Seeder
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB             *database.PostgresDB
	Redis          *redis.Client
	DefaultActorID string
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:    cfg.DB,
		Redis: cfg.Redis,
	}

	// Initialize repositories
	pgEventRepo := repository.NewPostgresEventRepository(c.DB.Pool())

	// Wrap with cache if Redis is available
	if c.Redis != nil {
		c.EventRepo = repository.NewCachedEventRepository(pgEventRepo, c.Redis)
	} else {
		c.EventRepo = pgEventRepo
	}

	// Initialize services
	c.EventService = service.NewEventService(c.EventRepo)

	// Initialize handlers
	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis)
	c.EventHandler = handler.NewEventHandler(c.EventService)

	// Seeding always writes straight to Postgres
	c.Seeder = seed.NewSeeder(pgEventRepo, cfg.DefaultActorID)

	return c
}
