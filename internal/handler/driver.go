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

type DriverHandler interface {
	GetAllDrivers(c *gin.Context)
	GetDriverByID(c *gin.Context)
	CreateDriver(c *gin.Context)
	UpdateDriver(c *gin.Context)
	DeleteDriver(c *gin.Context)
}

type driverHandler struct {
	repo    repository.DriverRepository
	timeout time.Duration
	logger  *zap.Logger
}

func NewDriverHandler(repo repository.DriverRepository, timeout time.Duration, logger *zap.Logger) DriverHandler {
	return &driverHandler{repo: repo, timeout: timeout, logger: logger}
}

func (h *driverHandler) GetAllDrivers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	drivers, err := h.repo.GetAllDrivers(ctx)
	if err != nil {
		respondStoreError(c, h.logger, "Driver not found", err)
		return
	}
	c.JSON(http.StatusOK, drivers)
}

func (h *driverHandler) GetDriverByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	driver, err := h.repo.GetDriverByID(ctx, id)
	if err != nil {
		respondStoreError(c, h.logger, "Driver not found", err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

func (h *driverHandler) CreateDriver(c *gin.Context) {
	var input models.CreateDriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and license_number are required"})
		return
	}

	driver := &models.Driver{
		Name:          input.Name,
		LicenseNumber: input.LicenseNumber,
		Phone:         input.Phone,
		Status:        "active",
	}
	if input.Status != nil {
		driver.Status = *input.Status
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.repo.CreateDriver(ctx, driver); err != nil {
		if repository.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "License number already exists"})
			return
		}
		respondStoreError(c, h.logger, "Driver not found", err)
		return
	}
	c.JSON(http.StatusCreated, driver)
}

func (h *driverHandler) UpdateDriver(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input models.UpdateDriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.LicenseNumber != nil {
		fields["license_number"] = *input.LicenseNumber
	}
	if input.Phone != nil {
		fields["phone"] = *input.Phone
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

	driver, err := h.repo.UpdateDriver(ctx, id, fields)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "License number already exists"})
			return
		}
		respondStoreError(c, h.logger, "Driver not found", err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

func (h *driverHandler) DeleteDriver(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.repo.DeleteDriver(ctx, id); err != nil {
		respondStoreError(c, h.logger, "Driver not found", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "deleted_id": id})
}
