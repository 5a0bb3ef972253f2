package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orfeus-data/availability-backend-go/internal/models"
	"github.com/orfeus-data/availability-backend-go/internal/params"
	"github.com/orfeus-data/availability-backend-go/internal/service"
	"github.com/orfeus-data/availability-backend-go/pkg/response"
)

// AvailabilityHandler handles the public availability endpoints.
type AvailabilityHandler struct {
	service *service.AvailabilityService
}

// NewAvailabilityHandler creates a new availability handler
func NewAvailabilityHandler(service *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// Query handles GET /fdsnws/availability/1/query
func (h *AvailabilityHandler) Query(c *gin.Context) {
	h.handle(c, false)
}

// Extent handles GET /fdsnws/availability/1/extent
func (h *AvailabilityHandler) Extent(c *gin.Context) {
	h.handle(c, true)
}

func (h *AvailabilityHandler) handle(c *gin.Context, extent bool) {
	var filter models.AvailabilityFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	var opts models.QueryOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	var res *service.Result
	var err error
	if extent {
		res, err = h.service.Extent(filter, opts)
	} else {
		res, err = h.service.Query(filter, opts)
	}
	if err != nil {
		var ve *params.ValidationError
		if errors.As(err, &ve) {
			response.BadRequest(c, ve.Error())
			return
		}
		response.InternalError(c, "Failed to process availability request")
		log.Printf("availability request failed: %v", err)
		return
	}

	if len(res.Segments) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	c.Header("Content-Type", res.ContentType())
	c.Status(http.StatusOK)
	if err := res.WriteTo(c.Writer); err != nil {
		// The body is already streaming; all we can do is log.
		log.Printf("failed to stream availability response: %v", err)
	}
}
