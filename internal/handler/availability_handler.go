package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/staynest/service-booking/internal/application"
	"github.com/staynest/service-booking/internal/common/response"
	"github.com/staynest/service-booking/internal/domain/availability"
)

// AvailabilityHandler handles availability check requests. The check is
// public so guests can probe dates before authenticating.
type AvailabilityHandler struct {
	service *application.AvailabilityService
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(service *application.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// RegisterRoutes registers availability routes on the given router group.
func (h *AvailabilityHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/api/v1/listings/:id/availability", h.CheckAvailability)
}

// CheckAvailability handles GET /api/v1/listings/:id/availability.
// Query parameters: check_in and check_out as YYYY-MM-DD (required),
// guests as a positive integer (optional).
func (h *AvailabilityHandler) CheckAvailability(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid listing ID")
		return
	}

	checkIn, checkOut, err := availability.ParseStayDates(c.Query("check_in"), c.Query("check_out"))
	if err != nil {
		response.Error(c, err)
		return
	}

	guests := 0
	if raw := c.Query("guests"); raw != "" {
		guests, err = strconv.Atoi(raw)
		if err != nil || guests < 1 {
			response.BadRequest(c, "guests must be a positive integer")
			return
		}
	}

	result, err := h.service.CheckAvailability(c.Request.Context(), listingID, checkIn, checkOut, guests, time.Now().UTC())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
