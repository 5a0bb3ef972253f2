package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/orfeus-data/availability-backend-go/internal/models"
	"github.com/orfeus-data/availability-backend-go/internal/repository"
	"github.com/orfeus-data/availability-backend-go/pkg/response"
)

// AdminHandler handles the authenticated ingest endpoints used by the
// harvesting side.
type AdminHandler struct {
	segments *repository.AvailabilityRepository
	stations *repository.StationRepository
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(segments *repository.AvailabilityRepository, stations *repository.StationRepository) *AdminHandler {
	return &AdminHandler{segments: segments, stations: stations}
}

// IngestSegments handles POST /admin/segments
func (h *AdminHandler) IngestSegments(c *gin.Context) {
	var segs []models.AvailabilitySegment
	if err := c.ShouldBindJSON(&segs); err != nil {
		response.BadRequest(c, "Invalid segment payload: "+err.Error())
		return
	}
	for i := range segs {
		if !segs[i].HasIdentity() {
			response.BadRequest(c, "Segment missing required identity fields")
			return
		}
	}
	if err := h.segments.InsertSegments(segs); err != nil {
		response.InternalError(c, "Failed to insert segments")
		return
	}
	response.Success(c, gin.H{"inserted": len(segs)})
}

// IngestStations handles POST /admin/stations
func (h *AdminHandler) IngestStations(c *gin.Context) {
	var stations []models.Station
	if err := c.ShouldBindJSON(&stations); err != nil {
		response.BadRequest(c, "Invalid station payload: "+err.Error())
		return
	}
	if err := h.stations.UpsertStations(stations); err != nil {
		response.InternalError(c, "Failed to upsert stations")
		return
	}
	response.Success(c, gin.H{"upserted": len(stations)})
}
