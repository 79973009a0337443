package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"logisticpro/internal/maps"
)

// GeoHandler proxies the dashboard's map lookups to the Maps service so the
// API key never reaches the browser.
type GeoHandler interface {
	GetRoute(c *gin.Context)
	ReverseGeocode(c *gin.Context)
}

type geoHandler struct {
	maps   *maps.Client
	logger *zap.Logger
}

func NewGeoHandler(mapsClient *maps.Client, logger *zap.Logger) GeoHandler {
	return &geoHandler{maps: mapsClient, logger: logger}
}

// GetRoute handles GET /api/route?origin=...&destination=...
func (h *geoHandler) GetRoute(c *gin.Context) {
	origin := c.Query("origin")
	destination := c.Query("destination")
	if origin == "" || destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin and destination query parameters are required"})
		return
	}

	summary, err := h.maps.Directions(c.Request.Context(), origin, destination)
	if err != nil {
		if errors.Is(err, maps.ErrNoRoute) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No route found"})
			return
		}
		h.logger.Error("Directions lookup failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to query maps service"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

type GeocodeRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

// ReverseGeocode handles POST /api/geocode {lat, lng}.
func (h *geoHandler) ReverseGeocode(c *gin.Context) {
	var req GeocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng are required"})
		return
	}

	address, err := h.maps.ReverseGeocode(c.Request.Context(), *req.Lat, *req.Lng)
	if err != nil {
		if errors.Is(err, maps.ErrNoResults) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No results found"})
			return
		}
		h.logger.Error("Reverse geocode failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to query maps service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": address})
}
