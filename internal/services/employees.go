package services

import (
	"context"
	"net/http"
	"time"

	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/transport"
)

// Employees talks to the funcionários CRUD endpoints.
type Employees struct {
	api *transport.Client
}

// NewEmployees builds the employees client.
func NewEmployees(api *transport.Client) *Employees {
	return &Employees{api: api}
}

// EmployeeInput carries the editable employee fields.
type EmployeeInput struct {
	Name     string    `json:"nome"`
	Email    string    `json:"email"`
	Position string    `json:"cargo"`
	Phone    string    `json:"telefone,omitempty"`
	Active   bool      `json:"ativo"`
	HiredAt  time.Time `json:"dataAdmissao,omitempty"`
}

// EmployeePage is one page of the employee listing.
type EmployeePage struct {
	Items []domain.Employee `json:"data"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int               `json:"total"`
}

// Create registers a new employee.
func (e *Employees) Create(ctx context.Context, input EmployeeInput) (*domain.Employee, error) {
	var out domain.Employee
	if err := e.api.Post(ctx, "/v1/funcionarios", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns one page of employees. A 404 from the backend means the list
// is simply empty and is not an error.
func (e *Employees) List(ctx context.Context, page, limit int) (*EmployeePage, error) {
	var out EmployeePage
	if err := e.api.Get(ctx, "/v1/funcionarios", pageQuery(page, limit), &out); err != nil {
		if transport.IsStatus(err, http.StatusNotFound) {
			return &EmployeePage{Page: page, Limit: limit}, nil
		}
		return nil, err
	}
	return &out, nil
}

// Get fetches one employee by id.
func (e *Employees) Get(ctx context.Context, id string) (*domain.Employee, error) {
	var out domain.Employee
	if err := e.api.Get(ctx, "/v1/funcionarios/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update rewrites an employee record.
func (e *Employees) Update(ctx context.Context, id string, input EmployeeInput) (*domain.Employee, error) {
	var out domain.Employee
	if err := e.api.Put(ctx, "/v1/funcionarios/"+id, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an employee record.
func (e *Employees) Delete(ctx context.Context, id string) error {
	return e.api.Delete(ctx, "/v1/funcionarios/"+id)
}
