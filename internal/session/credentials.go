package session

import "github.com/spec-kit/admin-console/internal/transport"

// creds adapts a Store to the gateway's Credentials contract.
type creds struct {
	store Store
}

// NewCredentials wraps store for use by the transport gateway.
func NewCredentials(store Store) transport.Credentials {
	return creds{store: store}
}

// BearerToken returns the stored token when it passes the lazy validity
// check. Valid clears provably stale tokens itself, so a false here already
// left the store clean.
func (c creds) BearerToken() (string, bool) {
	token, ok := c.store.Token()
	if !ok {
		return "", false
	}
	if !Valid(c.store) {
		return "", false
	}
	return token, true
}

// Invalidate clears the stored session.
func (c creds) Invalidate() {
	c.store.Clear()
}
