// Package authgate decides which of the two application surfaces to render,
// from cached session state only, and keeps that decision current as other
// processes mutate the shared session.
package authgate

import (
	"sync"

	"github.com/spec-kit/admin-console/internal/session"
)

// Branch names the two surfaces the shell can render. There is no loading
// branch: the initial decision is synchronous.
type Branch string

const (
	// BranchLogin is the unauthenticated surface (login/registration).
	BranchLogin Branch = "login"
	// BranchShell is the authenticated application shell.
	BranchShell Branch = "shell"
)

// RenderFunc receives the branch the shell must show.
type RenderFunc func(Branch)

// Gate queries the session service on start and on every store change
// notification, invoking the render callback only when the branch flips.
type Gate struct {
	session *session.Service
	store   session.Store
	render  RenderFunc

	mu      sync.Mutex
	current Branch
	started bool
	cancel  func()
}

// New builds a gate. render is invoked once from Start and then once per
// observed auth-state flip; it runs on the notifier's goroutine.
func New(svc *session.Service, store session.Store, render RenderFunc) *Gate {
	return &Gate{session: svc, store: store, render: render}
}

// Start performs the initial synchronous branch decision, renders it, and
// subscribes to store change notifications. Returns the initial branch.
func (g *Gate) Start() Branch {
	initial := g.branch()

	g.mu.Lock()
	g.current = initial
	g.started = true
	g.cancel = g.store.Subscribe(g.refresh)
	g.mu.Unlock()

	g.render(initial)
	return initial
}

// Current returns the branch decided by the latest check.
func (g *Gate) Current() Branch {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

// Stop cancels the change subscription. The last rendered branch stays up.
func (g *Gate) Stop() {
	g.mu.Lock()
	cancel := g.cancel
	g.cancel = nil
	g.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (g *Gate) refresh() {
	next := g.branch()

	g.mu.Lock()
	changed := g.started && next != g.current
	g.current = next
	g.mu.Unlock()

	if changed {
		g.render(next)
	}
}

func (g *Gate) branch() Branch {
	if g.session.IsAuthenticated() {
		return BranchShell
	}
	return BranchLogin
}
