package stub

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/admin-console/internal/domain"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrEmailTaken is returned when registering an already-known email.
var ErrEmailTaken = errors.New("email already registered")

// ErrBadCredentials is returned on a failed login.
var ErrBadCredentials = errors.New("invalid credentials")

type userRecord struct {
	domain.User
	PasswordHash string
}

// Store holds all stub data in memory behind one lock. Good enough for a
// dev fixture; it is not meant to survive a restart.
type Store struct {
	mu            sync.RWMutex
	bcryptCost    int
	users         map[string]*userRecord
	byEmail       map[string]string
	employees     map[string]*domain.Employee
	subscriptions map[string]*domain.Subscription
}

// NewStore builds an empty store and seeds the default admin account
// (admin@example.com / admin123) plus a handful of sample records.
func NewStore(bcryptCost int) (*Store, error) {
	s := &Store{
		bcryptCost:    bcryptCost,
		users:         make(map[string]*userRecord),
		byEmail:       make(map[string]string),
		employees:     make(map[string]*domain.Employee),
		subscriptions: make(map[string]*domain.Subscription),
	}
	if err := s.seed(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) seed() error {
	admin, err := s.CreateUser("Administrator", "admin@example.com", "admin123", domain.RoleAdmin)
	if err != nil {
		return err
	}
	client, err := s.CreateUser("Ana Souza", "ana@example.com", "cliente123", domain.RoleClient)
	if err != nil {
		return err
	}
	_ = admin

	s.PutEmployee(&domain.Employee{
		Name:     "Carlos Lima",
		Email:    "carlos.lima@example.com",
		Position: "Atendente",
		Active:   true,
		HiredAt:  time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	s.PutEmployee(&domain.Employee{
		Name:     "Beatriz Nunes",
		Email:    "beatriz.nunes@example.com",
		Position: "Gerente",
		Active:   true,
		HiredAt:  time.Date(2021, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	s.PutSubscription(&domain.Subscription{
		UserID:    client.ID,
		Plan:      "standard",
		Status:    domain.SubscriptionActive,
		Price:     49.90,
		StartedAt: time.Now().AddDate(0, -2, 0),
		ExpiresAt: time.Now().AddDate(0, 10, 0),
	})
	return nil
}

// CreateUser registers an account with a hashed password.
func (s *Store) CreateUser(name, email, password string, role domain.Role) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[email]; exists {
		return nil, ErrEmailTaken
	}
	rec := &userRecord{
		User: domain.User{
			ID:        uuid.NewString(),
			Name:      name,
			Email:     email,
			Role:      role,
			CreatedAt: time.Now(),
		},
		PasswordHash: string(hash),
	}
	s.users[rec.ID] = rec
	s.byEmail[email] = rec.ID
	user := rec.User
	return &user, nil
}

// Authenticate verifies credentials and returns the account.
func (s *Store) Authenticate(email, password string) (*domain.User, error) {
	s.mu.RLock()
	id, ok := s.byEmail[email]
	var rec *userRecord
	if ok {
		rec = s.users[id]
	}
	s.mu.RUnlock()

	if rec == nil {
		return nil, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	user := rec.User
	return &user, nil
}

// UserByID returns an account by id.
func (s *Store) UserByID(id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	user := rec.User
	return &user, nil
}

// UpdateUser rewrites mutable profile fields.
func (s *Store) UpdateUser(id, name, phone string, address *domain.Address) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if name != "" {
		rec.Name = name
	}
	if phone != "" {
		rec.Phone = phone
	}
	if address != nil {
		rec.Address = address
	}
	user := rec.User
	return &user, nil
}

// SetPassword rehashes and stores a new password for the account.
func (s *Store) SetPassword(id, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	rec.PasswordHash = string(hash)
	return nil
}

// ListUsers returns one page of accounts ordered by name.
func (s *Store) ListUsers(page, limit int) ([]domain.User, int) {
	s.mu.RLock()
	all := make([]domain.User, 0, len(s.users))
	for _, rec := range s.users {
		all = append(all, rec.User)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, page, limit), len(all)
}

// DeleteUser removes an account.
func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.byEmail, rec.Email)
	delete(s.users, id)
	return nil
}

// PutEmployee inserts or rewrites an employee record, assigning an id when
// missing.
func (s *Store) PutEmployee(emp *domain.Employee) *domain.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	if emp.ID == "" {
		emp.ID = uuid.NewString()
		emp.CreatedAt = time.Now()
	}
	copied := *emp
	s.employees[copied.ID] = &copied
	return &copied
}

// EmployeeByID returns one employee.
func (s *Store) EmployeeByID(id string) (*domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	emp, ok := s.employees[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *emp
	return &copied, nil
}

// ListEmployees returns one page of employees ordered by name.
func (s *Store) ListEmployees(page, limit int) ([]domain.Employee, int) {
	s.mu.RLock()
	all := make([]domain.Employee, 0, len(s.employees))
	for _, emp := range s.employees {
		all = append(all, *emp)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, page, limit), len(all)
}

// DeleteEmployee removes an employee record.
func (s *Store) DeleteEmployee(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[id]; !ok {
		return ErrNotFound
	}
	delete(s.employees, id)
	return nil
}

// PutSubscription inserts or rewrites a subscription, assigning an id when
// missing.
func (s *Store) PutSubscription(sub *domain.Subscription) *domain.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.Status == "" {
		sub.Status = domain.SubscriptionActive
	}
	copied := *sub
	s.subscriptions[copied.ID] = &copied
	return &copied
}

// SubscriptionByID returns one subscription.
func (s *Store) SubscriptionByID(id string) (*domain.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.subscriptions[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *sub
	return &copied, nil
}

// ListSubscriptions returns every subscription, optionally filtered by user.
func (s *Store) ListSubscriptions(userID string) []domain.Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Subscription, 0, len(s.subscriptions))
	for _, sub := range s.subscriptions {
		if userID != "" && sub.UserID != userID {
			continue
		}
		out = append(out, *sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DeleteSubscription removes a subscription.
func (s *Store) DeleteSubscription(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subscriptions[id]; !ok {
		return ErrNotFound
	}
	delete(s.subscriptions, id)
	return nil
}

// Stats aggregates the dashboard numbers.
func (s *Store) Stats() domain.DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := domain.DashboardStats{
		TotalUsers:     len(s.users),
		TotalEmployees: len(s.employees),
	}
	for _, sub := range s.subscriptions {
		if sub.Status == domain.SubscriptionActive {
			stats.ActiveSubscriptions++
			stats.MonthlyRevenue += sub.Price
		}
	}
	return stats
}

func paginate[T any](all []T, page, limit int) []T {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	start := (page - 1) * limit
	if start >= len(all) {
		return []T{}
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}
