package domain

import "time"

// Role distinguishes administrative operators from regular clients.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
)

// User is an account known to the backend.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	Address   *Address  `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Address is a Brazilian postal address as returned by the CEP lookup.
type Address struct {
	CEP      string `json:"cep"`
	Street   string `json:"endereco"`
	District string `json:"bairro"`
	City     string `json:"cidade"`
	State    string `json:"uf"`
}
