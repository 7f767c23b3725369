package domain

import "time"

// SubscriptionStatus represents lifecycle states for a subscription.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionSuspended SubscriptionStatus = "SUSPENDED"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
)

// Subscription ties a client account to a billed plan.
type Subscription struct {
	ID        string             `json:"id"`
	UserID    string             `json:"userId"`
	Plan      string             `json:"plan"`
	Status    SubscriptionStatus `json:"status"`
	Price     float64            `json:"price"`
	StartedAt time.Time          `json:"startedAt,omitempty"`
	ExpiresAt time.Time          `json:"expiresAt,omitempty"`
}
