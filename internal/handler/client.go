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

type ClientHandler interface {
	GetAllClients(c *gin.Context)
	GetClientByID(c *gin.Context)
	CreateClient(c *gin.Context)
	UpdateClient(c *gin.Context)
	DeleteClient(c *gin.Context)
}

type clientHandler struct {
	repo    repository.ClientRepository
	timeout time.Duration
	logger  *zap.Logger
}

func NewClientHandler(repo repository.ClientRepository, timeout time.Duration, logger *zap.Logger) ClientHandler {
	return &clientHandler{repo: repo, timeout: timeout, logger: logger}
}

// GetAllClients handles GET /clients.
func (h *clientHandler) GetAllClients(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	clients, err := h.repo.GetAllClients(ctx)
	if err != nil {
		respondStoreError(c, h.logger, "Client not found", err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// GetClientByID handles GET /clients/:id.
func (h *clientHandler) GetClientByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	client, err := h.repo.GetClientByID(ctx, id)
	if err != nil {
		respondStoreError(c, h.logger, "Client not found", err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// CreateClient handles POST /clients.
func (h *clientHandler) CreateClient(c *gin.Context) {
	var input models.CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	client := &models.Client{
		Name:         input.Name,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Address:      input.Address,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.repo.CreateClient(ctx, client); err != nil {
		respondStoreError(c, h.logger, "Client not found", err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

// UpdateClient handles PUT /clients/:id with a partial body.
func (h *clientHandler) UpdateClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input models.UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.ContactEmail != nil {
		fields["contact_email"] = *input.ContactEmail
	}
	if input.ContactPhone != nil {
		fields["contact_phone"] = *input.ContactPhone
	}
	if input.Address != nil {
		fields["address"] = *input.Address
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	client, err := h.repo.UpdateClient(ctx, id, fields)
	if err != nil {
		respondStoreError(c, h.logger, "Client not found", err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// DeleteClient handles DELETE /clients/:id.
func (h *clientHandler) DeleteClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.repo.DeleteClient(ctx, id); err != nil {
		respondStoreError(c, h.logger, "Client not found", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "deleted_id": id})
}
