package metrics

import (
	"sync"

	"github.com/eventbooking/event-booking-api/pkg/telemetry"
)

var (
	// Event counters
	EventsCreated *telemetry.Counter
	EventsUpdated *telemetry.Counter
	EventsDeleted *telemetry.Counter

	// Seat adjustment counters
	SeatAdjustments       *telemetry.Counter
	SeatAdjustmentsDenied *telemetry.Counter

	// Histograms
	ListDuration *telemetry.Histogram

	initOnce sync.Once
	initErr  error
)

// Init initializes all event metrics
func Init() error {
	initOnce.Do(func() {
		initErr = initMetrics()
	})
	return initErr
}

func initMetrics() error {
	var err error

	EventsCreated, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "events_created_total",
		Description: "Total number of events created",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	EventsUpdated, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "events_updated_total",
		Description: "Total number of events updated",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	EventsDeleted, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "events_deleted_total",
		Description: "Total number of events soft deleted",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	SeatAdjustments, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "event_seat_adjustments_total",
		Description: "Total number of successful seat adjustments",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	SeatAdjustmentsDenied, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "event_seat_adjustments_denied_total",
		Description: "Total number of seat adjustments rejected by the seat bounds",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	ListDuration, err = telemetry.NewHistogram(telemetry.MetricOpts{
		Name:        "event_list_duration_seconds",
		Description: "Duration of event list queries",
		Unit:        "s",
	})
	if err != nil {
		return err
	}

	return nil
}
