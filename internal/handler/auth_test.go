package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"logisticpro/internal/middleware"
	"logisticpro/internal/models"
	"logisticpro/internal/password"
	"logisticpro/internal/service"
	"logisticpro/internal/token"
)

type fakeUserRepo struct {
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[int64]*models.User{}}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *models.User) error {
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return &pq.Error{Code: "23505"}
		}
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) GetAllUsers(_ context.Context) ([]*models.User, error) {
	var users []*models.User
	for _, user := range f.users {
		clone := *user
		users = append(users, &clone)
	}
	return users, nil
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, id int64, _ map[string]interface{}) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) TouchLastLogin(_ context.Context, id int64) error {
	if user, ok := f.users[id]; ok {
		now := time.Now()
		user.LastLogin = &now
	}
	return nil
}

func newAuthRouter(repo *fakeUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	hasher := password.NewHasher(password.Params{MemoryKiB: 8 * 1024, Iterations: 1, Parallelism: 1, KeyLength: 32})
	tokens := token.NewManager([]byte("test-secret"), time.Hour)
	authService := service.NewAuthService(repo, hasher, tokens, time.Second, logger)
	authHandler := NewAuthHandler(authService, logger)

	router := gin.New()
	authGroup := router.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", middleware.Auth(tokens, logger), authHandler.Me)

	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthFlow_RegisterLoginMe(t *testing.T) {
	router := newAuthRouter(newFakeUserRepo())

	// Register
	w := postJSON(router, "/auth/register", `{"name":"Ana","email":"ana@x.com","password":"s3cr3t"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var registered struct {
		Token string `json:"token"`
		User  struct {
			ID    int64  `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "ana@x.com", registered.User.Email)
	assert.Equal(t, models.RoleUser, registered.User.Role)

	// The password hash must never appear in a response.
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "argon2id")

	// Wrong password
	w = postJSON(router, "/auth/login", `{"email":"ana@x.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error": "Invalid credentials"}`, w.Body.String())

	// Correct password yields a fresh token
	w = postJSON(router, "/auth/login", `{"email":"ana@x.com","password":"s3cr3t"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var loggedIn struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loggedIn))
	assert.NotEmpty(t, loggedIn.Token)

	// Current session endpoint
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+loggedIn.Token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ana@x.com"`)
}

func TestRegister_MissingFields(t *testing.T) {
	router := newAuthRouter(newFakeUserRepo())

	w := postJSON(router, "/auth/register", `{"email":"ana@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	router := newAuthRouter(newFakeUserRepo())

	w := postJSON(router, "/auth/register", `{"name":"Ana","email":"ana@x.com","password":"s3cr3t"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/auth/register", `{"name":"Ana Again","email":"ANA@x.com","password":"other"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error": "Email already registered"}`, w.Body.String())
}

func TestRegister_CannotSelfElevateRole(t *testing.T) {
	router := newAuthRouter(newFakeUserRepo())

	// A role field in the registration body is ignored; everyone starts
	// as a plain user.
	w := postJSON(router, "/auth/register", `{"name":"Eve","email":"eve@x.com","password":"pw","role":"admin"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"user"`)
}

func TestMe_StaleToken(t *testing.T) {
	repo := newFakeUserRepo()
	router := newAuthRouter(repo)

	w := postJSON(router, "/auth/register", `{"name":"Ana","email":"ana@x.com","password":"s3cr3t"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var registered struct {
		Token string `json:"token"`
		User  struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))

	// Delete the account out from under the still-valid token.
	require.NoError(t, repo.DeleteUser(context.Background(), registered.User.ID))

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+registered.Token)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusNotFound, w2.Code)
}
