package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/admin-console/internal/config"
	"github.com/spec-kit/admin-console/internal/transport"
)

func newTestAPI(baseURL string) *transport.Client {
	return transport.NewClient(
		config.APIConfig{BaseURL: baseURL, RequestTimeoutSeconds: 2},
		transport.AnonymousCredentials{},
		zap.NewNop(),
	)
}

func TestEmployees_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/funcionarios", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": "f1", "nome": "Carlos", "cargo": "Atendente", "ativo": true},
			},
			"page": 2, "limit": 5, "total": 6,
		})
	}))
	defer server.Close()

	employees := NewEmployees(newTestAPI(server.URL))
	page, err := employees.List(context.Background(), 2, 5)

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Carlos", page.Items[0].Name)
	assert.Equal(t, "Atendente", page.Items[0].Position)
	assert.Equal(t, 6, page.Total)
}

func TestEmployees_List_NotFoundMeansEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "nenhum funcionario"})
	}))
	defer server.Close()

	employees := NewEmployees(newTestAPI(server.URL))
	page, err := employees.List(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Page)
}

func TestEmployees_Create(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Beatriz", body["nome"])
		assert.Equal(t, "Gerente", body["cargo"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "f2", "nome": "Beatriz", "cargo": "Gerente"})
	}))
	defer server.Close()

	employees := NewEmployees(newTestAPI(server.URL))
	emp, err := employees.Create(context.Background(), EmployeeInput{Name: "Beatriz", Position: "Gerente"})

	require.NoError(t, err)
	assert.Equal(t, "f2", emp.ID)
}

func TestEmployees_Update(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/v1/funcionarios/f1", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Carlos Lima", body["nome"])
		assert.Equal(t, false, body["ativo"])

		_ = json.NewEncoder(w).Encode(map[string]any{"id": "f1", "nome": "Carlos Lima", "cargo": "Atendente", "ativo": false})
	}))
	defer server.Close()

	employees := NewEmployees(newTestAPI(server.URL))
	emp, err := employees.Update(context.Background(), "f1", EmployeeInput{Name: "Carlos Lima", Position: "Atendente"})

	require.NoError(t, err)
	assert.Equal(t, "Carlos Lima", emp.Name)
	assert.False(t, emp.Active)
}

func TestEmployees_Get_NotFoundSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "not found"})
	}))
	defer server.Close()

	employees := NewEmployees(newTestAPI(server.URL))
	_, err := employees.Get(context.Background(), "missing")

	assert.True(t, transport.IsStatus(err, http.StatusNotFound))
}
