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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"logisticpro/internal/models"
)

type fakeClientRepo struct {
	nextID  int64
	clients map[int64]*models.Client
	err     error
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{nextID: 1, clients: map[int64]*models.Client{}}
}

func (f *fakeClientRepo) CreateClient(_ context.Context, client *models.Client) error {
	if f.err != nil {
		return f.err
	}
	client.ID = f.nextID
	f.nextID++
	client.CreatedAt = time.Now()
	clone := *client
	f.clients[client.ID] = &clone
	return nil
}

func (f *fakeClientRepo) GetClientByID(_ context.Context, id int64) (*models.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	client, ok := f.clients[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *client
	return &clone, nil
}

func (f *fakeClientRepo) GetAllClients(_ context.Context) ([]*models.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	clients := []*models.Client{}
	for _, client := range f.clients {
		clone := *client
		clients = append(clients, &clone)
	}
	return clients, nil
}

func (f *fakeClientRepo) UpdateClient(_ context.Context, id int64, fields map[string]interface{}) (*models.Client, error) {
	client, ok := f.clients[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if name, ok := fields["name"].(string); ok {
		client.Name = name
	}
	clone := *client
	return &clone, nil
}

func (f *fakeClientRepo) DeleteClient(_ context.Context, id int64) error {
	if _, ok := f.clients[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.clients, id)
	return nil
}

func newClientRouter(repo *fakeClientRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewClientHandler(repo, time.Second, zap.NewNop())

	router := gin.New()
	router.GET("/clients", h.GetAllClients)
	router.GET("/clients/:id", h.GetClientByID)
	router.POST("/clients", h.CreateClient)
	router.PUT("/clients/:id", h.UpdateClient)
	router.DELETE("/clients/:id", h.DeleteClient)
	return router
}

func jsonRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestClientCRUD(t *testing.T) {
	repo := newFakeClientRepo()
	router := newClientRouter(repo)

	// Create
	w := jsonRequest(router, http.MethodPost, "/clients", `{"name":"Acme","contact_email":"ops@acme.test"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Client
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Acme", created.Name)
	require.NotZero(t, created.ID)

	// List
	w = jsonRequest(router, http.MethodGet, "/clients", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Acme")

	// Get
	w = jsonRequest(router, http.MethodGet, "/clients/1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Update
	w = jsonRequest(router, http.MethodPut, "/clients/1", `{"name":"Acme Logistics"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Acme Logistics")

	// Delete
	w = jsonRequest(router, http.MethodDelete, "/clients/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted_id":1`)

	w = jsonRequest(router, http.MethodGet, "/clients/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClient_NotFoundAndBadID(t *testing.T) {
	router := newClientRouter(newFakeClientRepo())

	w := jsonRequest(router, http.MethodGet, "/clients/999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "Client not found"}`, w.Body.String())

	w = jsonRequest(router, http.MethodGet, "/clients/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = jsonRequest(router, http.MethodPut, "/clients/1", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No fields to update")
}

func TestClient_CreateValidation(t *testing.T) {
	router := newClientRouter(newFakeClientRepo())

	w := jsonRequest(router, http.MethodPost, "/clients", `{"contact_email":"ops@acme.test"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClient_StoreTimeout(t *testing.T) {
	repo := newFakeClientRepo()
	repo.err = context.DeadlineExceeded
	router := newClientRouter(repo)

	w := jsonRequest(router, http.MethodGet, "/clients", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
