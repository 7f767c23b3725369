package stub

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-console/internal/domain"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Phone    string          `json:"phone"`
	Address  *domain.Address `json:"address"`
}

func userPayload(user *domain.User) fiber.Map {
	payload := fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  string(user.Role),
	}
	if user.Phone != "" {
		payload["phone"] = user.Phone
	}
	return payload
}

func (s *Server) login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	user, err := s.store.Authenticate(req.Email, req.Password)
	if err != nil {
		return err
	}
	token, _, err := s.tokens.Generate(user)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token":   token,
		"user":    userPayload(user),
		"message": "login successful",
	})
}

// register auto-authenticates: the response carries a token alongside the
// created account, the same shape as a login success.
func (s *Server) register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password required")
	}

	user, err := s.store.CreateUser(req.Name, req.Email, req.Password, domain.RoleClient)
	if err != nil {
		return err
	}
	if req.Phone != "" || req.Address != nil {
		if user, err = s.store.UpdateUser(user.ID, "", req.Phone, req.Address); err != nil {
			return err
		}
	}
	token, _, err := s.tokens.Generate(user)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"token":   token,
		"user":    userPayload(user),
		"message": "account created",
	})
}

// logout is stateless on the stub; the client clears its own session.
func (s *Server) logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "logout successful"})
}

// forgotPassword answers the same way whether or not the email exists, like
// the real backend.
func (s *Server) forgotPassword(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return fiber.NewError(http.StatusBadRequest, "email required")
	}
	return c.JSON(fiber.Map{"message": "recovery email sent"})
}

func (s *Server) profile(c *fiber.Ctx) error {
	user, err := s.store.UserByID(claimsFrom(c).Subject)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": user})
}

func (s *Server) updateProfile(c *fiber.Ctx) error {
	var req struct {
		Name    string          `json:"name"`
		Phone   string          `json:"phone"`
		Address *domain.Address `json:"address"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	user, err := s.store.UpdateUser(claimsFrom(c).Subject, req.Name, req.Phone, req.Address)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": user})
}

func (s *Server) changePassword(c *fiber.Ctx) error {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.BodyParser(&req); err != nil || req.NewPassword == "" {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	claims := claimsFrom(c)
	if _, err := s.store.Authenticate(claims.Email, req.CurrentPassword); err != nil {
		return fiber.NewError(http.StatusBadRequest, "current password incorrect")
	}
	if err := s.store.SetPassword(claims.Subject, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "password changed"})
}

func (s *Server) dashboardStats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"stats": s.store.Stats()})
}

func (s *Server) listUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	users, total := s.store.ListUsers(page, limit)
	return c.JSON(fiber.Map{"data": users, "page": page, "limit": limit, "total": total})
}

func (s *Server) deleteUser(c *fiber.Ctx) error {
	if err := s.store.DeleteUser(c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "user removed"})
}

type employeeRequest struct {
	Name     string    `json:"nome"`
	Email    string    `json:"email"`
	Position string    `json:"cargo"`
	Phone    string    `json:"telefone"`
	Active   bool      `json:"ativo"`
	HiredAt  time.Time `json:"dataAdmissao"`
}

func (s *Server) createEmployee(c *fiber.Ctx) error {
	var req employeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Position == "" {
		return fiber.NewError(http.StatusBadRequest, "nome and cargo required")
	}
	emp := s.store.PutEmployee(&domain.Employee{
		Name:     req.Name,
		Email:    req.Email,
		Position: req.Position,
		Phone:    req.Phone,
		Active:   req.Active,
		HiredAt:  req.HiredAt,
	})
	return c.Status(http.StatusCreated).JSON(emp)
}

func (s *Server) listEmployees(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	employees, total := s.store.ListEmployees(page, limit)
	return c.JSON(fiber.Map{"data": employees, "page": page, "limit": limit, "total": total})
}

func (s *Server) getEmployee(c *fiber.Ctx) error {
	emp, err := s.store.EmployeeByID(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(emp)
}

func (s *Server) updateEmployee(c *fiber.Ctx) error {
	emp, err := s.store.EmployeeByID(c.Params("id"))
	if err != nil {
		return err
	}
	var req employeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	emp.Name = req.Name
	emp.Email = req.Email
	emp.Position = req.Position
	emp.Phone = req.Phone
	emp.Active = req.Active
	if !req.HiredAt.IsZero() {
		emp.HiredAt = req.HiredAt
	}
	return c.JSON(s.store.PutEmployee(emp))
}

func (s *Server) deleteEmployee(c *fiber.Ctx) error {
	if err := s.store.DeleteEmployee(c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "funcionario removed"})
}

type subscriptionRequest struct {
	UserID string                    `json:"userId"`
	Plan   string                    `json:"plan"`
	Status domain.SubscriptionStatus `json:"status"`
	Price  float64                   `json:"price"`
}

func (s *Server) listSubscriptions(c *fiber.Ctx) error {
	// nested envelope, matching the shape the real backend settled on
	return c.JSON(fiber.Map{"data": fiber.Map{"subscriptions": s.store.ListSubscriptions("")}})
}

func (s *Server) mySubscriptions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"subscriptions": s.store.ListSubscriptions(claimsFrom(c).Subject)})
}

func (s *Server) createSubscription(c *fiber.Ctx) error {
	var req subscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.UserID == "" || req.Plan == "" {
		return fiber.NewError(http.StatusBadRequest, "userId and plan required")
	}
	if _, err := s.store.UserByID(req.UserID); err != nil {
		return err
	}
	sub := s.store.PutSubscription(&domain.Subscription{
		UserID:    req.UserID,
		Plan:      req.Plan,
		Status:    req.Status,
		Price:     req.Price,
		StartedAt: time.Now(),
		ExpiresAt: time.Now().AddDate(1, 0, 0),
	})
	return c.Status(http.StatusCreated).JSON(fiber.Map{"subscription": sub})
}

func (s *Server) getSubscription(c *fiber.Ctx) error {
	sub, err := s.store.SubscriptionByID(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"subscription": sub})
}

func (s *Server) updateSubscription(c *fiber.Ctx) error {
	sub, err := s.store.SubscriptionByID(c.Params("id"))
	if err != nil {
		return err
	}
	var req subscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Plan != "" {
		sub.Plan = req.Plan
	}
	if req.Status != "" {
		sub.Status = req.Status
	}
	if req.Price != 0 {
		sub.Price = req.Price
	}
	return c.JSON(fiber.Map{"subscription": s.store.PutSubscription(sub)})
}

func (s *Server) cancelSubscription(c *fiber.Ctx) error {
	if err := s.store.DeleteSubscription(c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "subscription cancelled"})
}
