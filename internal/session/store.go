package session

import "sync"

// Profile is the cached user payload returned by the login endpoint. Field
// names follow whatever the backend sent; accessors cover the ones the UI
// personalizes with.
type Profile map[string]any

func (p Profile) stringField(key string) string {
	if p == nil {
		return ""
	}
	val, _ := p[key].(string)
	return val
}

// Name returns the display name, if cached.
func (p Profile) Name() string { return p.stringField("name") }

// Email returns the account email, if cached.
func (p Profile) Email() string { return p.stringField("email") }

// Role returns the account role, if cached.
func (p Profile) Role() string { return p.stringField("role") }

// ID returns the account identifier, if cached.
func (p Profile) ID() string { return p.stringField("id") }

// Store owns persistence of the two session fields. Implementations must
// swallow storage failures: a read that fails reports absent, a write that
// fails is a no-op. Clear is idempotent.
type Store interface {
	// Token returns the persisted bearer token, if any.
	Token() (string, bool)
	// SetToken persists the token. An empty token is silently skipped so a
	// half-formed login response can never blank out the credential.
	SetToken(token string)
	// Profile returns the cached user profile, if any.
	Profile() (Profile, bool)
	// SetProfile caches the user profile.
	SetProfile(profile Profile)
	// Clear removes both the token and the cached profile.
	Clear()
	// Subscribe registers fn to run when the session changes, including
	// changes made by other processes sharing the backing store. The signal
	// carries no payload and is best-effort. The returned func cancels the
	// subscription.
	Subscribe(fn func()) (cancel func())
	// Close releases any watcher or connection the backend holds.
	Close() error
}

// notifier is a synchronous observer registry shared by the store backends.
type notifier struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]func()
}

// Subscribe registers a change handler and returns its cancel func.
func (n *notifier) Subscribe(fn func()) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.handlers == nil {
		n.handlers = make(map[int]func())
	}
	id := n.nextID
	n.nextID++
	n.handlers[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.handlers, id)
	}
}

// broadcast invokes the registered handlers outside the registry lock.
func (n *notifier) broadcast() {
	n.mu.Lock()
	handlers := make([]func(), 0, len(n.handlers))
	for _, fn := range n.handlers {
		handlers = append(handlers, fn)
	}
	n.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
}
