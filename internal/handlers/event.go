// internal/handlers/event.go
package handlers

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/glasshouse/editions-backend/internal/models"
	"github.com/glasshouse/editions-backend/internal/services"
	"github.com/glasshouse/editions-backend/internal/utils"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// GET /events
//
// Filters: ?edition_id=N and ?type=edition_created|edition_purchased.
// Events come back in append order regardless of requested sort.
func (h *EventHandler) ListEvents(c *gin.Context) {
	params := services.EventSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if raw := c.Query("edition_id"); raw != "" {
		if editionID, err := strconv.ParseUint(raw, 10, 64); err == nil {
			params.EditionID = &editionID
		}
	}
	if raw := c.Query("type"); raw != "" {
		eventType := models.EventType(raw)
		params.Type = &eventType
	}

	events, total, err := h.eventService.ListEvents(params)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(events, total, params.PaginationParams))
}

// GET /events/stream
//
// Server-sent events. The subscription only sees events committed after the
// client connects; catch-up reads go through ListEvents.
func (h *EventHandler) StreamEvents(c *gin.Context) {
	events, cancel := h.eventService.Subscribe()
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(string(event.Type), event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// GET /events/verify
func (h *EventHandler) VerifyChain(c *gin.Context) {
	valid, checked, err := h.eventService.VerifyChain()
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"valid":   valid,
		"checked": checked,
	})
}
