package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/admin-console/internal/config"
)

type fakeCreds struct {
	token       string
	invalidated bool
}

func (f *fakeCreds) BearerToken() (string, bool) { return f.token, f.token != "" }
func (f *fakeCreds) Invalidate()                 { f.invalidated = true; f.token = "" }

func newTestClient(baseURL string, creds Credentials) *Client {
	return NewClient(config.APIConfig{BaseURL: baseURL, RequestTimeoutSeconds: 2}, creds, zap.NewNop())
}

func TestDo_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]string{"ok": "yes"})
	}))
	defer server.Close()

	client := newTestClient(server.URL, &fakeCreds{token: "tok"})
	var out map[string]string
	require.NoError(t, client.Get(context.Background(), "/x", nil, &out))

	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "yes", out["ok"])
}

func TestDo_NoTokenSendsUnauthenticated(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL, &fakeCreds{})
	require.NoError(t, client.Get(context.Background(), "/x", nil, nil))
	assert.Empty(t, gotAuth)
}

func TestDo_Unauthorized_InvalidatesSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
	}))
	defer server.Close()

	creds := &fakeCreds{token: "tok"}
	client := newTestClient(server.URL, creds)
	err := client.Get(context.Background(), "/x", nil, nil)

	require.Error(t, err)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, KindUnauthorized, apiErr.Kind)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "token expired", apiErr.Message)
	assert.True(t, creds.invalidated)
}

func TestDo_Forbidden_KeepsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "admin role required"})
	}))
	defer server.Close()

	creds := &fakeCreds{token: "tok"}
	client := newTestClient(server.URL, creds)
	err := client.Get(context.Background(), "/x", nil, nil)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, KindForbidden, apiErr.Kind)
	assert.False(t, creds.invalidated, "403 must not touch the session")
}

func TestDo_NoResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	creds := &fakeCreds{token: "tok"}
	client := newTestClient(server.URL, creds)
	err := client.Get(context.Background(), "/x", nil, nil)

	assert.True(t, IsNoResponse(err))
	assert.False(t, creds.invalidated, "network failures must not touch the session")
}

func TestDo_TruncatedBodyIsNotNoResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// promise more bytes than we send, then hang up mid-body
		w.Header().Set("Content-Length", "100")
		_, _ = w.Write([]byte("short"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, &fakeCreds{})
	var out map[string]string
	err := client.Get(context.Background(), "/x", nil, &out)

	require.Error(t, err)
	assert.False(t, IsNoResponse(err), "a response arrived, only its body was cut short")
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, KindAPI, apiErr.Kind)
	assert.Equal(t, http.StatusOK, apiErr.Status)
}

func TestDo_OtherStatusesSurfaceAsIs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "funcionario not found"},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL, &fakeCreds{token: "tok"})
	err := client.Get(context.Background(), "/x", nil, nil)

	assert.True(t, IsStatus(err, http.StatusNotFound))
	apiErr, _ := AsAPIError(err)
	assert.Equal(t, KindAPI, apiErr.Kind)
	assert.Equal(t, "funcionario not found", apiErr.Message)
}

func TestDo_QueryAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "x", body["q"])
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL, &fakeCreds{})
	query := url.Values{}
	query.Set("page", "2")
	err := client.Do(context.Background(), http.MethodPost, "/x", query, map[string]string{"q": "x"}, nil)
	require.NoError(t, err)
}
