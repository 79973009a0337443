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

type WarehouseHandler interface {
	GetAllWarehouses(c *gin.Context)
	GetWarehouseByID(c *gin.Context)
	CreateWarehouse(c *gin.Context)
	UpdateWarehouse(c *gin.Context)
	DeleteWarehouse(c *gin.Context)
}

type warehouseHandler struct {
	repo    repository.WarehouseRepository
	timeout time.Duration
	logger  *zap.Logger
}

func NewWarehouseHandler(repo repository.WarehouseRepository, timeout time.Duration, logger *zap.Logger) WarehouseHandler {
	return &warehouseHandler{repo: repo, timeout: timeout, logger: logger}
}

func (h *warehouseHandler) GetAllWarehouses(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	warehouses, err := h.repo.GetAllWarehouses(ctx)
	if err != nil {
		respondStoreError(c, h.logger, "Warehouse not found", err)
		return
	}
	c.JSON(http.StatusOK, warehouses)
}

func (h *warehouseHandler) GetWarehouseByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	warehouse, err := h.repo.GetWarehouseByID(ctx, id)
	if err != nil {
		respondStoreError(c, h.logger, "Warehouse not found", err)
		return
	}
	c.JSON(http.StatusOK, warehouse)
}

func (h *warehouseHandler) CreateWarehouse(c *gin.Context) {
	var input models.CreateWarehouseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	warehouse := &models.Warehouse{
		Name:     input.Name,
		Location: input.Location,
		Manager:  input.Manager,
		Status:   "active",
	}
	if input.Capacity != nil {
		warehouse.Capacity = *input.Capacity
	}
	if input.Status != nil {
		warehouse.Status = *input.Status
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.repo.CreateWarehouse(ctx, warehouse); err != nil {
		respondStoreError(c, h.logger, "Warehouse not found", err)
		return
	}
	c.JSON(http.StatusCreated, warehouse)
}

func (h *warehouseHandler) UpdateWarehouse(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input models.UpdateWarehouseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Location != nil {
		fields["location"] = *input.Location
	}
	if input.Capacity != nil {
		fields["capacity"] = *input.Capacity
	}
	if input.Manager != nil {
		fields["manager"] = *input.Manager
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

	warehouse, err := h.repo.UpdateWarehouse(ctx, id, fields)
	if err != nil {
		respondStoreError(c, h.logger, "Warehouse not found", err)
		return
	}
	c.JSON(http.StatusOK, warehouse)
}

func (h *warehouseHandler) DeleteWarehouse(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.repo.DeleteWarehouse(ctx, id); err != nil {
		respondStoreError(c, h.logger, "Warehouse not found", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "deleted_id": id})
}
