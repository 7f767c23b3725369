package session

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/admin-console/internal/transport"
)

// Result is the uniform success/failure envelope returned by session
// operations. No error ever crosses this boundary as a panic or a bare
// return; Err carries the underlying cause for callers that want to
// inspect it, Message is safe to show the user as-is.
type Result struct {
	OK      bool
	Message string
	Data    map[string]any
	Err     error
}

// Service is the authentication contract the rest of the application codes
// against, and the only component allowed to mutate session state. All
// reads of auth state go through IsAuthenticated and CurrentUser.
type Service struct {
	api    *transport.Client
	store  Store
	logger *zap.Logger
}

// NewService builds the session service.
func NewService(api *transport.Client, store Store, logger *zap.Logger) *Service {
	return &Service{api: api, store: store, logger: logger}
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token and caches both the token and the
// profile the server returned alongside it.
func (s *Service) Login(ctx context.Context, email, password string) Result {
	if email == "" || password == "" || !strings.Contains(email, "@") {
		return Result{OK: false, Message: "a valid email and a password are required"}
	}
	payload := map[string]any{}
	err := s.api.Post(ctx, "/auth/login/user", credentialsBody{Email: email, Password: password}, &payload)
	if err != nil {
		return s.failure(err, "could not sign in, check your credentials")
	}
	s.adopt(payload)
	return success(payload, "signed in")
}

// Logout asks the server to end the session, best-effort, and always clears
// local state. It succeeds even with the network unplugged.
func (s *Service) Logout(ctx context.Context) Result {
	if err := s.api.Post(ctx, "/auth/logout", nil, nil); err != nil {
		s.logger.Debug("server-side logout failed, clearing locally anyway", zap.Error(err))
	}
	s.store.Clear()
	return Result{OK: true, Message: "signed out"}
}

// IsAuthenticated is the single source of truth for render and navigation
// decisions. It reads only cached state; no network call.
func (s *Service) IsAuthenticated() bool {
	return Valid(s.store)
}

// CurrentUser returns the cached profile, if any. Never hits the network;
// a missing profile next to a present token is a legal transient state and
// callers fall back to a profile fetch.
func (s *Service) CurrentUser() (Profile, bool) {
	return s.store.Profile()
}

// Register creates an account. When the server auto-authenticates by
// including a token in the response, it is adopted exactly like a login
// success; otherwise session state is untouched.
func (s *Service) Register(ctx context.Context, registration any) Result {
	payload := map[string]any{}
	err := s.api.Post(ctx, "/auth/register", registration, &payload)
	if err != nil {
		return s.failure(err, "could not create the account")
	}
	s.adopt(payload)
	return success(payload, "account created")
}

// ForgotPassword requests a password recovery email. No session mutation.
func (s *Service) ForgotPassword(ctx context.Context, email string) Result {
	payload := map[string]any{}
	err := s.api.Post(ctx, "/auth/forgot-password", map[string]string{"email": email}, &payload)
	if err != nil {
		return s.failure(err, "could not send the recovery email")
	}
	return success(payload, "recovery email sent")
}

// adopt persists the credentials carried by an auth response. Token and
// profile are written together; a response without a token leaves the
// session untouched.
func (s *Service) adopt(payload map[string]any) {
	token, _ := payload["token"].(string)
	if token == "" {
		return
	}
	s.store.SetToken(token)
	if user, ok := payload["user"].(map[string]any); ok {
		s.store.SetProfile(Profile(user))
	}
}

func (s *Service) failure(err error, fallback string) Result {
	msg := fallback
	if apiErr, ok := transport.AsAPIError(err); ok && apiErr.Message != "" && apiErr.Kind != transport.KindNoResponse {
		msg = apiErr.Message
	}
	return Result{OK: false, Message: msg, Err: err}
}

func success(payload map[string]any, fallback string) Result {
	msg := fallback
	if m, ok := payload["message"].(string); ok && m != "" {
		msg = m
	}
	return Result{OK: true, Message: msg, Data: payload}
}
