package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"logisticpro/internal/models"
	"logisticpro/internal/repository"
)

type VehicleHandler interface {
	GetAllVehicles(c *gin.Context)
	GetVehicleByID(c *gin.Context)
	CreateVehicle(c *gin.Context)
	UpdateVehicle(c *gin.Context)
	DeleteVehicle(c *gin.Context)
}

type vehicleHandler struct {
	repo    repository.VehicleRepository
	timeout time.Duration
	logger  *zap.Logger
}

func NewVehicleHandler(repo repository.VehicleRepository, timeout time.Duration, logger *zap.Logger) VehicleHandler {
	return &vehicleHandler{repo: repo, timeout: timeout, logger: logger}
}

func (h *vehicleHandler) GetAllVehicles(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	vehicles, err := h.repo.GetAllVehicles(ctx)
	if err != nil {
		respondStoreError(c, h.logger, "Vehicle not found", err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

func (h *vehicleHandler) GetVehicleByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	vehicle, err := h.repo.GetVehicleByID(ctx, id)
	if err != nil {
		respondStoreError(c, h.logger, "Vehicle not found", err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func (h *vehicleHandler) CreateVehicle(c *gin.Context) {
	var input models.CreateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "plate is required"})
		return
	}
	if strings.TrimSpace(input.Plate) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "plate is required"})
		return
	}

	vehicle := &models.Vehicle{
		Plate:  strings.TrimSpace(input.Plate),
		Model:  input.Model,
		Status: models.VehicleStatusAvailable,
	}
	if input.Capacity != nil {
		vehicle.Capacity = *input.Capacity
	}
	if input.Status != nil {
		vehicle.Status = *input.Status
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.repo.CreateVehicle(ctx, vehicle); err != nil {
		if repository.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Vehicle plate already exists"})
			return
		}
		respondStoreError(c, h.logger, "Vehicle not found", err)
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

func (h *vehicleHandler) UpdateVehicle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input models.UpdateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := map[string]interface{}{}
	if input.Plate != nil && strings.TrimSpace(*input.Plate) != "" {
		fields["plate"] = strings.TrimSpace(*input.Plate)
	}
	if input.Model != nil {
		fields["model"] = *input.Model
	}
	if input.Capacity != nil {
		fields["capacity"] = *input.Capacity
	}
	if input.Status != nil {
		fields["status"] = *input.Status
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	vehicle, err := h.repo.UpdateVehicle(ctx, id, fields)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Vehicle plate already exists"})
			return
		}
		respondStoreError(c, h.logger, "Vehicle not found", err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func (h *vehicleHandler) DeleteVehicle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.repo.DeleteVehicle(ctx, id); err != nil {
		respondStoreError(c, h.logger, "Vehicle not found", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "deleted_id": id})
}
