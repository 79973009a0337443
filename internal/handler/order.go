package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"logisticpro/internal/models"
	"logisticpro/internal/repository"
)

type OrderHandler interface {
	GetAllOrders(c *gin.Context)
	GetOrderByID(c *gin.Context)
	CreateOrder(c *gin.Context)
	UpdateOrder(c *gin.Context)
	DeleteOrder(c *gin.Context)
}

type orderHandler struct {
	repo    repository.OrderRepository
	timeout time.Duration
	logger  *zap.Logger
}

func NewOrderHandler(repo repository.OrderRepository, timeout time.Duration, logger *zap.Logger) OrderHandler {
	return &orderHandler{repo: repo, timeout: timeout, logger: logger}
}

func (h *orderHandler) GetAllOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	orders, err := h.repo.GetAllOrders(ctx)
	if err != nil {
		respondStoreError(c, h.logger, "Order not found", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *orderHandler) GetOrderByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	order, err := h.repo.GetOrderByID(ctx, id)
	if err != nil {
		respondStoreError(c, h.logger, "Order not found", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// CreateOrder handles POST /orders. The referenced client and vehicle must
// exist; a missing tracking code gets a generated one.
func (h *orderHandler) CreateOrder(c *gin.Context) {
	var input models.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin and destination are required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if input.ClientID != nil {
		exists, err := h.repo.ClientExists(ctx, *input.ClientID)
		if err != nil {
			respondStoreError(c, h.logger, "Order not found", err)
			return
		}
		if !exists {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Client not found"})
			return
		}
	}
	if input.AssignedVehicleID != nil {
		exists, err := h.repo.VehicleExists(ctx, *input.AssignedVehicleID)
		if err != nil {
			respondStoreError(c, h.logger, "Order not found", err)
			return
		}
		if !exists {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Vehicle not found"})
			return
		}
	}

	trackingCode := strings.TrimSpace(input.TrackingCode)
	if trackingCode == "" {
		trackingCode = uuid.NewString()
	}

	order := &models.Order{
		TrackingCode:      trackingCode,
		ClientID:          input.ClientID,
		Origin:            strings.TrimSpace(input.Origin),
		Destination:       strings.TrimSpace(input.Destination),
		Status:            models.OrderStatusPending,
		AssignedVehicleID: input.AssignedVehicleID,
		EstimatedDelivery: input.EstimatedDelivery,
	}
	if input.Weight != nil {
		order.Weight = *input.Weight
	}

	if err := h.repo.CreateOrder(ctx, order); err != nil {
		if repository.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Tracking code already exists"})
			return
		}
		respondStoreError(c, h.logger, "Order not found", err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *orderHandler) UpdateOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input models.UpdateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := map[string]interface{}{}
	if input.TrackingCode != nil && strings.TrimSpace(*input.TrackingCode) != "" {
		fields["tracking_code"] = strings.TrimSpace(*input.TrackingCode)
	}
	if input.ClientID != nil {
		fields["client_id"] = *input.ClientID
	}
	if input.Origin != nil {
		fields["origin"] = *input.Origin
	}
	if input.Destination != nil {
		fields["destination"] = *input.Destination
	}
	if input.Weight != nil {
		fields["weight"] = *input.Weight
	}
	if input.Status != nil {
		fields["status"] = *input.Status
	}
	if input.AssignedVehicleID != nil {
		fields["assigned_vehicle_id"] = *input.AssignedVehicleID
	}
	if input.AssignedDriverID != nil {
		fields["assigned_driver_id"] = *input.AssignedDriverID
	}
	if input.WarehouseID != nil {
		fields["warehouse_id"] = *input.WarehouseID
	}
	if input.EstimatedDelivery != nil {
		fields["estimated_delivery"] = *input.EstimatedDelivery
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	order, err := h.repo.UpdateOrder(ctx, id, fields)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Tracking code already exists"})
			return
		}
		respondStoreError(c, h.logger, "Order not found", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *orderHandler) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.repo.DeleteOrder(ctx, id); err != nil {
		respondStoreError(c, h.logger, "Order not found", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "deleted_id": id})
}
