package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/eventbooking/event-booking-api/internal/domain"
	"github.com/eventbooking/event-booking-api/internal/dto"
	"github.com/eventbooking/event-booking-api/internal/service"
	"github.com/eventbooking/event-booking-api/pkg/logger"
	"github.com/eventbooking/event-booking-api/pkg/middleware"
)

// EventHandler handles event-related HTTP requests
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// List handles GET /api/events - lists events with search, sorting and pagination
func (h *EventHandler) List(c *gin.Context) {
	var query dto.ListEventsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.String(http.StatusBadRequest, "Invalid query parameters")
		return
	}

	page, err := h.eventService.ListEvents(c.Request.Context(), &query)
	if err != nil {
		if domain.IsInvalidArgument(err) {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		logger.Get().Error("Failed to list events", zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to list events")
		return
	}

	c.JSON(http.StatusOK, dto.ToPagedResponse(page))
}

// GetByID handles GET /api/events/:id - retrieves an event by ID
func (h *EventHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	event, err := h.eventService.GetEventByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		logger.Get().Error("Failed to get event", zap.String("id", id), zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to get event")
		return
	}

	c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

// Create handles POST /api/events - creates a new event
func (h *EventHandler) Create(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	req.CreatedBy = middleware.GetActorID(c)

	event, err := h.eventService.CreateEvent(c.Request.Context(), &req)
	if err != nil {
		if domain.IsInvalidArgument(err) {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		logger.Get().Error("Failed to create event", zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to create event")
		return
	}

	c.Header("Location", "/api/events/"+event.ID)
	c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

// Update handles PUT /api/events/:id - updates an event
func (h *EventHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.ID != id {
		c.String(http.StatusBadRequest, "ID in URL does not match ID in request body")
		return
	}

	event, err := h.eventService.UpdateEvent(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		if domain.IsInvalidArgument(err) {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		logger.Get().Error("Failed to update event", zap.String("id", id), zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to update event")
		return
	}

	c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

// Delete handles DELETE /api/events/:id - soft deletes an event
func (h *EventHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	deleted, err := h.eventService.DeleteEvent(c.Request.Context(), id)
	if err != nil {
		logger.Get().Error("Failed to delete event", zap.String("id", id), zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to delete event")
		return
	}
	if !deleted {
		c.Status(http.StatusNotFound)
		return
	}

	c.Status(http.StatusNoContent)
}
