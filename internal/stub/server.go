package stub

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/admin-console/internal/config"
	"github.com/spec-kit/admin-console/internal/domain"
)

// Server is the fiber app emulating the real backend. Error responses use
// the flat {message} shape the console's gateway expects.
type Server struct {
	app    *fiber.App
	store  *Store
	tokens *TokenManager
	logger *zap.Logger
}

// NewServer wires the stub routes.
func NewServer(cfg config.StubConfig, logger *zap.Logger) (*Server, error) {
	store, err := NewStore(cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	s := &Server{
		store:  store,
		tokens: NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		logger: logger,
	}
	s.app = fiber.New(fiber.Config{
		AppName:      "admin-stub-api",
		ErrorHandler: s.errorHandler,
	})
	s.routes()
	return s, nil
}

// Listen serves until Shutdown is called.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := http.StatusInternalServerError
	msg := "internal error"

	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		msg = fiberErr.Message
	case errors.Is(err, ErrNotFound):
		code = http.StatusNotFound
		msg = err.Error()
	case errors.Is(err, ErrEmailTaken):
		code = http.StatusConflict
		msg = err.Error()
	case errors.Is(err, ErrBadCredentials):
		code = http.StatusUnauthorized
		msg = err.Error()
	default:
		s.logger.Error("stub handler failed", zap.Error(err))
	}
	return c.Status(code).JSON(fiber.Map{"message": msg})
}

func (s *Server) routes() {
	s.app.Post("/auth/login/user", s.login)
	s.app.Post("/auth/register", s.register)
	s.app.Post("/auth/logout", s.logout)
	s.app.Post("/auth/forgot-password", s.forgotPassword)

	authed := s.app.Group("", s.requireAuth)
	authed.Get("/users/profile", s.profile)
	authed.Put("/users/profile", s.updateProfile)
	authed.Put("/users/password", s.changePassword)
	authed.Get("/dashboard/stats", s.dashboardStats)
	authed.Get("/subscriptions/my", s.mySubscriptions)

	admin := authed.Group("", s.requireAdmin)
	admin.Get("/v1/users", s.listUsers)
	admin.Delete("/v1/users/:id", s.deleteUser)
	admin.Get("/v1/funcionarios", s.listEmployees)
	admin.Post("/v1/funcionarios", s.createEmployee)
	admin.Get("/v1/funcionarios/:id", s.getEmployee)
	admin.Put("/v1/funcionarios/:id", s.updateEmployee)
	admin.Delete("/v1/funcionarios/:id", s.deleteEmployee)
	admin.Get("/subscriptions", s.listSubscriptions)
	admin.Post("/subscriptions", s.createSubscription)
	admin.Get("/subscriptions/:id", s.getSubscription)
	admin.Put("/subscriptions/:id", s.updateSubscription)
	admin.Delete("/subscriptions/:id", s.cancelSubscription)
}

const claimsKey = "stub.claims"

func (s *Server) requireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, "invalid or expired token")
	}
	c.Locals(claimsKey, claims)
	return c.Next()
}

func (s *Server) requireAdmin(c *fiber.Ctx) error {
	if claimsFrom(c).Role != domain.RoleAdmin {
		return fiber.NewError(http.StatusForbidden, "admin role required")
	}
	return c.Next()
}

func claimsFrom(c *fiber.Ctx) *Claims {
	claims, _ := c.Locals(claimsKey).(*Claims)
	if claims == nil {
		return &Claims{}
	}
	return claims
}
