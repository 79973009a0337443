package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"logisticpro/internal/models"
	"logisticpro/internal/password"
	"logisticpro/internal/repository"
)

// UserHandler covers the admin-only user management endpoints. This is the
// only place an admin account can be created or a role changed; the public
// registration endpoint always produces plain users.
type UserHandler interface {
	GetAllUsers(c *gin.Context)
	GetUserByID(c *gin.Context)
	CreateUser(c *gin.Context)
	UpdateUser(c *gin.Context)
	DeleteUser(c *gin.Context)
}

type userHandler struct {
	repo    repository.UserRepository
	hasher  *password.Hasher
	timeout time.Duration
	logger  *zap.Logger
}

func NewUserHandler(repo repository.UserRepository, hasher *password.Hasher, timeout time.Duration, logger *zap.Logger) UserHandler {
	return &userHandler{repo: repo, hasher: hasher, timeout: timeout, logger: logger}
}

type CreateUserInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type UpdateUserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

func validRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleUser
}

func (h *userHandler) GetAllUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	users, err := h.repo.GetAllUsers(ctx)
	if err != nil {
		respondStoreError(c, h.logger, "User not found", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *userHandler) GetUserByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	user, err := h.repo.GetUserByID(ctx, id)
	if err != nil {
		respondStoreError(c, h.logger, "User not found", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *userHandler) CreateUser(c *gin.Context) {
	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and password are required"})
		return
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	if !validRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be admin or user"})
		return
	}

	passwordHash, err := h.hasher.Hash(input.Password)
	if err != nil {
		h.logger.Error("Failed to hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	user := &models.User{
		Name:         input.Name,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: passwordHash,
		Role:         role,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.repo.CreateUser(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		respondStoreError(c, h.logger, "User not found", err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *userHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Email != nil {
		fields["email"] = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Role != nil {
		if !validRole(*input.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "role must be admin or user"})
			return
		}
		fields["role"] = *input.Role
	}
	if input.Password != nil {
		passwordHash, err := h.hasher.Hash(*input.Password)
		if err != nil {
			h.logger.Error("Failed to hash password", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
		fields["password_hash"] = passwordHash
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	user, err := h.repo.UpdateUser(ctx, id, fields)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		respondStoreError(c, h.logger, "User not found", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *userHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.repo.DeleteUser(ctx, id); err != nil {
		respondStoreError(c, h.logger, "User not found", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "deleted_id": id})
}
