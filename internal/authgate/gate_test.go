package authgate

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/admin-console/internal/config"
	"github.com/spec-kit/admin-console/internal/session"
	"github.com/spec-kit/admin-console/internal/transport"
)

func freshToken(t *testing.T) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(map[string]any{"exp": time.Now().Add(time.Hour).Unix()})
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

func newGateFixture(render RenderFunc) (*Gate, *session.MemoryStore) {
	store := session.NewMemoryStore()
	api := transport.NewClient(
		config.APIConfig{BaseURL: "http://localhost:0", RequestTimeoutSeconds: 1},
		session.NewCredentials(store),
		zap.NewNop(),
	)
	svc := session.NewService(api, store, zap.NewNop())
	return New(svc, store, render), store
}

func TestGate_InitialBranchAnonymous(t *testing.T) {
	var rendered []Branch
	gate, _ := newGateFixture(func(b Branch) { rendered = append(rendered, b) })
	defer gate.Stop()

	initial := gate.Start()

	assert.Equal(t, BranchLogin, initial)
	assert.Equal(t, []Branch{BranchLogin}, rendered)
}

func TestGate_InitialBranchAuthenticated(t *testing.T) {
	var rendered []Branch
	gate, store := newGateFixture(func(b Branch) { rendered = append(rendered, b) })
	defer gate.Stop()

	store.SetToken(freshToken(t))
	initial := gate.Start()

	assert.Equal(t, BranchShell, initial)
	assert.Equal(t, []Branch{BranchShell}, rendered)
}

func TestGate_RerendersOnAuthFlip(t *testing.T) {
	var rendered []Branch
	gate, store := newGateFixture(func(b Branch) { rendered = append(rendered, b) })
	defer gate.Stop()

	gate.Start()
	store.SetToken(freshToken(t))

	assert.Equal(t, BranchShell, gate.Current())
	assert.Equal(t, []Branch{BranchLogin, BranchShell}, rendered)

	store.Clear()
	assert.Equal(t, BranchLogin, gate.Current())
	assert.Equal(t, []Branch{BranchLogin, BranchShell, BranchLogin}, rendered)
}

func TestGate_NoRerenderWhenBranchUnchanged(t *testing.T) {
	var rendered []Branch
	gate, store := newGateFixture(func(b Branch) { rendered = append(rendered, b) })
	defer gate.Stop()

	store.SetToken(freshToken(t))
	gate.Start()

	// profile update mutates the store without flipping auth state
	store.SetProfile(session.Profile{"name": "A"})

	assert.Equal(t, []Branch{BranchShell}, rendered)
}

func TestGate_StopCancelsSubscription(t *testing.T) {
	renders := 0
	gate, store := newGateFixture(func(Branch) { renders++ })

	gate.Start()
	gate.Stop()

	store.SetToken(freshToken(t))
	assert.Equal(t, 1, renders, fmt.Sprintf("no renders after Stop, got %d", renders))
}
