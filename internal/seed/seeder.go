package seed

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/eventbooking/event-booking-api/internal/domain"
	"github.com/eventbooking/event-booking-api/internal/repository"
	"github.com/eventbooking/event-booking-api/pkg/logger"
)

// Seeder inserts sample events for development environments
type Seeder struct {
	eventRepo repository.EventRepository
	actorID   string
}

// NewSeeder creates a new Seeder. actorID is recorded as CreatedBy on
// every seeded event.
func NewSeeder(eventRepo repository.EventRepository, actorID string) *Seeder {
	return &Seeder{
		eventRepo: eventRepo,
		actorID:   actorID,
	}
}

// Run seeds the sample catalogue. Idempotent: it does nothing when any
// events already exist.
func (s *Seeder) Run(ctx context.Context) error {
	existing, err := s.eventRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now().UTC()
	events := sampleEvents(now, s.actorID)

	for _, event := range events {
		if err := s.eventRepo.Insert(ctx, event); err != nil {
			return err
		}
	}

	logger.Get().Info("Seeded sample events", zap.Int("count", len(events)))
	return nil
}

func sampleEvents(now time.Time, actorID string) []*domain.Event {
	newEvent := func(title, description string, startOffset, endOffset int, venueName string, seats int, price string) *domain.Event {
		return &domain.Event{
			ID:             uuid.New().String(),
			Title:          title,
			Description:    description,
			StartDate:      now.AddDate(0, 0, startOffset),
			EndDate:        now.AddDate(0, 0, endOffset),
			VenueName:      venueName,
			TotalSeats:     seats,
			AvailableSeats: seats,
			Price:          decimal.RequireFromString(price),
			CreatedAt:      now,
			CreatedBy:      actorID,
		}
	}

	return []*domain.Event{
		newEvent("Tech Conference 2025",
			"Annual technology conference featuring the latest in AI and cloud computing",
			-30, 600, "Tech Convention Center", 1000, "299.99"),
		newEvent("Music Festival 2025",
			"Three days of non-stop music featuring top artists from around the world",
			-45, 470, "Central Park", 5000, "199.99"),
		newEvent("Food & Wine Expo 2025",
			"Explore culinary delights and wine tasting from renowned chefs",
			15, 16, "Grand Hotel", 500, "149.99"),
		newEvent("Business Leadership Summit 2025",
			"Connect with industry leaders and learn about future business trends",
			60, 619, "Business Center", 300, "499.99"),
		newEvent("Art Exhibition 2025",
			"Explore the latest in contemporary art and design",
			75, 760, "Art Gallery", 200, "19.99"),
		newEvent("Fashion Week 2025",
			"Explore the latest in fashion and design",
			90, 910, "Fashion Center", 1000, "499.99"),
		newEvent("Sales Conference 2025",
			"Annual technology conference featuring the latest in AI and cloud computing",
			30, 32, "Tech Convention Center", 1000, "599.99"),
		newEvent("Marketing Conference 2025",
			"Annual technology conference featuring the latest in AI and cloud computing",
			30, 32, "Tech Convention Center", 1000, "99.99"),
	}
}
