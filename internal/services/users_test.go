package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/admin-console/internal/transport"
)

func TestUsers_UpdateProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/users/profile", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Ana Souza", body["name"])
		assert.Equal(t, "11999990000", body["phone"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{"id": "u1", "name": "Ana Souza", "email": "ana@example.com"},
		})
	}))
	defer server.Close()

	users := NewUsers(newTestAPI(server.URL))
	user, err := users.UpdateProfile(context.Background(), ProfileInput{Name: "Ana Souza", Phone: "11999990000"})

	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "Ana Souza", user.Name)
}

func TestUsers_ChangePassword(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/users/password", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "old-pass", body["currentPassword"])
		assert.Equal(t, "new-pass", body["newPassword"])

		_ = json.NewEncoder(w).Encode(map[string]string{"message": "senha alterada"})
	}))
	defer server.Close()

	users := NewUsers(newTestAPI(server.URL))
	err := users.ChangePassword(context.Background(), "old-pass", "new-pass")

	require.NoError(t, err)
}

func TestUsers_ChangePassword_WrongCurrentSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "senha atual incorreta"})
	}))
	defer server.Close()

	users := NewUsers(newTestAPI(server.URL))
	err := users.ChangePassword(context.Background(), "wrong", "new-pass")

	assert.True(t, transport.IsStatus(err, http.StatusBadRequest))
}
