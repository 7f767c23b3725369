package cli

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/admin-console/internal/config"
	"github.com/spec-kit/admin-console/internal/services"
	"github.com/spec-kit/admin-console/internal/session"
	"github.com/spec-kit/admin-console/internal/transport"
)

func makeToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

func newTestApp(store session.Store, baseURL string) *app {
	api := transport.NewClient(
		config.APIConfig{BaseURL: baseURL, RequestTimeoutSeconds: 2},
		session.NewCredentials(store),
		zap.NewNop(),
	)
	return &app{
		store:   store,
		session: session.NewService(api, store, zap.NewNop()),
		users:   services.NewUsers(api),
	}
}

func runCommand(t *testing.T, cmd *cobra.Command) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestWhoami_FetchesProfileWhenOnlyTokenIsPersisted(t *testing.T) {
	var profileHits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/profile", r.URL.Path)
		profileHits.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{
				"id": "u1", "name": "Ana", "email": "ana@example.com", "role": "CLIENT",
			},
		})
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	store.SetToken(makeToken(t, map[string]any{"sub": "u1", "exp": time.Now().Add(time.Hour).Unix()}))

	a := newTestApp(store, server.URL)
	out, err := runCommand(t, a.whoamiCommand())

	require.NoError(t, err)
	assert.Equal(t, int32(1), profileHits.Load())
	assert.Contains(t, out, "Ana <ana@example.com> (CLIENT)")
}

func TestWhoami_UsesPersistedProfileWithoutNetwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	store.SetToken(makeToken(t, map[string]any{"sub": "u1", "exp": time.Now().Add(time.Hour).Unix()}))
	store.SetProfile(session.Profile{"id": "u1", "name": "Ana", "email": "ana@example.com", "role": "ADMIN"})

	a := newTestApp(store, server.URL)
	out, err := runCommand(t, a.whoamiCommand())

	require.NoError(t, err)
	assert.Contains(t, out, "Ana <ana@example.com> (ADMIN)")
}

func TestWhoami_FailsWhenNotSignedIn(t *testing.T) {
	a := newTestApp(session.NewMemoryStore(), "http://127.0.0.1:0")
	_, err := runCommand(t, a.whoamiCommand())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not signed in")
}
