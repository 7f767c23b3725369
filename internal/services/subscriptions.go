package services

import (
	"context"
	"encoding/json"

	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/transport"
)

// Subscriptions talks to the subscription endpoints. The backend has been
// inconsistent about its list envelope over time, so list decoding accepts
// the nested {data:{subscriptions}}, the flat {subscriptions} and the bare
// array shapes.
type Subscriptions struct {
	api *transport.Client
}

// NewSubscriptions builds the subscriptions client.
func NewSubscriptions(api *transport.Client) *Subscriptions {
	return &Subscriptions{api: api}
}

// SubscriptionInput carries the editable subscription fields.
type SubscriptionInput struct {
	UserID string                    `json:"userId"`
	Plan   string                    `json:"plan"`
	Status domain.SubscriptionStatus `json:"status,omitempty"`
	Price  float64                   `json:"price"`
}

// List returns every subscription. Admin only.
func (s *Subscriptions) List(ctx context.Context) ([]domain.Subscription, error) {
	return s.list(ctx, "/subscriptions")
}

// Mine returns the signed-in client's own subscriptions.
func (s *Subscriptions) Mine(ctx context.Context) ([]domain.Subscription, error) {
	return s.list(ctx, "/subscriptions/my")
}

// Get fetches one subscription by id.
func (s *Subscriptions) Get(ctx context.Context, id string) (*domain.Subscription, error) {
	var raw json.RawMessage
	if err := s.api.Get(ctx, "/subscriptions/"+id, nil, &raw); err != nil {
		return nil, err
	}
	sub := decodeSubscription(raw)
	if sub == nil {
		return nil, &transport.APIError{Kind: transport.KindAPI, Message: "could not decode subscription"}
	}
	return sub, nil
}

// Create opens a subscription. Admin only.
func (s *Subscriptions) Create(ctx context.Context, input SubscriptionInput) (*domain.Subscription, error) {
	var raw json.RawMessage
	if err := s.api.Post(ctx, "/subscriptions", input, &raw); err != nil {
		return nil, err
	}
	sub := decodeSubscription(raw)
	if sub == nil {
		return nil, &transport.APIError{Kind: transport.KindAPI, Message: "could not decode subscription"}
	}
	return sub, nil
}

// Update rewrites a subscription. Admin only.
func (s *Subscriptions) Update(ctx context.Context, id string, input SubscriptionInput) (*domain.Subscription, error) {
	var raw json.RawMessage
	if err := s.api.Put(ctx, "/subscriptions/"+id, input, &raw); err != nil {
		return nil, err
	}
	sub := decodeSubscription(raw)
	if sub == nil {
		return nil, &transport.APIError{Kind: transport.KindAPI, Message: "could not decode subscription"}
	}
	return sub, nil
}

// Cancel removes a subscription. Admin only.
func (s *Subscriptions) Cancel(ctx context.Context, id string) error {
	return s.api.Delete(ctx, "/subscriptions/"+id)
}

func (s *Subscriptions) list(ctx context.Context, path string) ([]domain.Subscription, error) {
	var raw json.RawMessage
	if err := s.api.Get(ctx, path, nil, &raw); err != nil {
		return nil, err
	}
	return decodeSubscriptionList(raw), nil
}

func decodeSubscriptionList(raw json.RawMessage) []domain.Subscription {
	var bare []domain.Subscription
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare
	}

	var wrapped struct {
		Data struct {
			Subscriptions []domain.Subscription `json:"subscriptions"`
		} `json:"data"`
		Subscriptions []domain.Subscription `json:"subscriptions"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil
	}
	if len(wrapped.Data.Subscriptions) > 0 {
		return wrapped.Data.Subscriptions
	}
	return wrapped.Subscriptions
}

func decodeSubscription(raw json.RawMessage) *domain.Subscription {
	var bare domain.Subscription
	if err := json.Unmarshal(raw, &bare); err == nil && bare.ID != "" {
		return &bare
	}

	var wrapped struct {
		Data struct {
			Subscription *domain.Subscription `json:"subscription"`
		} `json:"data"`
		Subscription *domain.Subscription `json:"subscription"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil
	}
	if wrapped.Data.Subscription != nil {
		return wrapped.Data.Subscription
	}
	return wrapped.Subscription
}
