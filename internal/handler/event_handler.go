package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-events-api/internal/models"
	"github.com/noah-isme/campus-events-api/internal/service"
	"github.com/noah-isme/campus-events-api/pkg/response"
)

type eventService interface {
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.EventDetail, error)
	Create(ctx context.Context, req service.CreateEventRequest) (*models.Event, error)
	Update(ctx context.Context, id string, req service.EventRequest) (*models.Event, error)
	Cancel(ctx context.Context, id string) (*models.Event, error)
}

// EventHandler exposes event catalog endpoints.
type EventHandler struct {
	events eventService
}

// NewEventHandler constructs EventHandler.
func NewEventHandler(events eventService) *EventHandler {
	return &EventHandler{events: events}
}

// List godoc
// @Summary List active events
// @Tags Events
// @Produce json
// @Param college_id query string false "Filter by college"
// @Param event_type query string false "Filter by event type"
// @Param date_from query string false "Earliest event date (YYYY-MM-DD)"
// @Param date_to query string false "Latest event date (YYYY-MM-DD)"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Envelope
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	filter := models.EventFilter{
		CollegeID: c.Query("college_id"),
		Type:      models.EventType(c.Query("event_type")),
	}
	var err error
	if filter.DateFrom, err = queryDate(c, "date_from"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.DateTo, err = queryDate(c, "date_to"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.Limit, err = queryInt(c, "limit"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.Offset, err = queryInt(c, "offset"); err != nil {
		response.Error(c, err)
		return
	}

	events, pagination, err := h.events.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, pagination)
}

// Get godoc
// @Summary Get event with stats
// @Tags Events
// @Produce json
// @Param event_id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /events/{event_id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.events.Get(c.Request.Context(), c.Param("event_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// Create godoc
// @Summary Create event
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body service.CreateEventRequest true "Event payload"
// @Success 201 {object} response.Envelope
// @Router /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	var req service.CreateEventRequest
	if !bindJSON(c, &req) {
		return
	}
	event, err := h.events.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, event)
}

// Update godoc
// @Summary Update event
// @Tags Events
// @Accept json
// @Produce json
// @Param event_id path string true "Event ID"
// @Param payload body service.EventRequest true "Event payload"
// @Success 200 {object} response.Envelope
// @Router /events/{event_id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	var req service.EventRequest
	if !bindJSON(c, &req) {
		return
	}
	event, err := h.events.Update(c.Request.Context(), c.Param("event_id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// Cancel godoc
// @Summary Cancel event
// @Tags Events
// @Produce json
// @Param event_id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /events/{event_id}/cancel [patch]
func (h *EventHandler) Cancel(c *gin.Context) {
	event, err := h.events.Cancel(c.Request.Context(), c.Param("event_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}
