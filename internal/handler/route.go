package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"logisticpro/internal/models"
	"logisticpro/internal/repository"
)

type RouteHandler interface {
	GetAllRoutes(c *gin.Context)
	CreateRoute(c *gin.Context)
	DeleteRoute(c *gin.Context)
}

type routeHandler struct {
	repo    repository.RouteRepository
	timeout time.Duration
	logger  *zap.Logger
}

func NewRouteHandler(repo repository.RouteRepository, timeout time.Duration, logger *zap.Logger) RouteHandler {
	return &routeHandler{repo: repo, timeout: timeout, logger: logger}
}

func (h *routeHandler) GetAllRoutes(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	routes, err := h.repo.GetAllRoutes(ctx)
	if err != nil {
		respondStoreError(c, h.logger, "Route not found", err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

func (h *routeHandler) CreateRoute(c *gin.Context) {
	var input models.CreateRouteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin and destination are required"})
		return
	}

	route := &models.Route{
		Origin:        input.Origin,
		Destination:   input.Destination,
		DistanceKm:    input.DistanceKm,
		EstimatedTime: input.EstimatedTime,
		VehicleID:     input.VehicleID,
		OrderID:       input.OrderID,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.repo.CreateRoute(ctx, route); err != nil {
		respondStoreError(c, h.logger, "Route not found", err)
		return
	}
	c.JSON(http.StatusCreated, route)
}

func (h *routeHandler) DeleteRoute(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.repo.DeleteRoute(ctx, id); err != nil {
		respondStoreError(c, h.logger, "Route not found", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "deleted_id": id})
}
