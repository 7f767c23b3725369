package session

import (
	"encoding/json"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Valid reports whether the stored token can still authenticate requests.
// Tokens that are provably broken (not three dot-separated segments) or
// provably expired are cleared from the store as a side effect, so the next
// read starts from an anonymous state. A payload that cannot be decoded
// proves nothing and is accepted as-is; the server remains the authority and
// will answer 401 if it disagrees.
func Valid(store Store) bool {
	token, ok := store.Token()
	if !ok || token == "" {
		return false
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		store.Clear()
		return false
	}

	payload, err := jwt.NewParser().DecodeSegment(parts[1])
	if err != nil {
		return true
	}
	claims := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	if exp.Before(time.Now()) {
		store.Clear()
		return false
	}
	return true
}
