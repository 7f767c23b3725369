package domain

import "time"

// Employee is a staff record managed through the funcionários screens.
type Employee struct {
	ID        string    `json:"id"`
	Name      string    `json:"nome"`
	Email     string    `json:"email"`
	Position  string    `json:"cargo"`
	Phone     string    `json:"telefone,omitempty"`
	Active    bool      `json:"ativo"`
	HiredAt   time.Time `json:"dataAdmissao,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
