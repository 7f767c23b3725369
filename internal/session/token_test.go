package session

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeToken assembles an unsigned JWT-shaped token with the given claims.
// The validity check never verifies signatures, so "sig" is enough.
func makeToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

func seeded(token string) *MemoryStore {
	store := NewMemoryStore()
	store.SetToken(token)
	store.SetProfile(Profile{"name": "A"})
	return store
}

func TestValid_NoToken(t *testing.T) {
	assert.False(t, Valid(NewMemoryStore()))
}

func TestValid_WrongSegmentCount(t *testing.T) {
	for _, token := range []string{
		"not-a-jwt",
		"two.parts",
		"a.b.c.d",
	} {
		store := seeded(token)
		assert.False(t, Valid(store), "token %q", token)

		_, hasToken := store.Token()
		_, hasProfile := store.Profile()
		assert.False(t, hasToken, "token %q must be cleared", token)
		assert.False(t, hasProfile, "profile for %q must be cleared", token)
	}
}

func TestValid_ExpiredToken(t *testing.T) {
	store := seeded(makeToken(t, map[string]any{"exp": 1}))

	assert.False(t, Valid(store))

	_, hasToken := store.Token()
	assert.False(t, hasToken, "expired token must be cleared on read")
}

func TestValid_FutureExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	store := seeded(makeToken(t, map[string]any{"exp": exp, "sub": "1"}))

	assert.True(t, Valid(store))

	_, hasToken := store.Token()
	assert.True(t, hasToken)
}

func TestValid_NoExpiryClaim(t *testing.T) {
	store := seeded(makeToken(t, map[string]any{"sub": "1"}))
	assert.True(t, Valid(store))
}

func TestValid_UndecodablePayloadFailsOpen(t *testing.T) {
	// three segments but the middle one is not base64 JSON; cannot be
	// proven invalid, so it stays
	store := seeded("aaa.!!!not-base64!!!.ccc")
	assert.True(t, Valid(store))

	_, hasToken := store.Token()
	assert.True(t, hasToken)
}

func TestValid_SelfHealingIsIdempotent(t *testing.T) {
	store := seeded(makeToken(t, map[string]any{"exp": 1}))

	assert.False(t, Valid(store))
	assert.False(t, Valid(store))

	store.Clear()
	_, hasToken := store.Token()
	assert.False(t, hasToken)
}
