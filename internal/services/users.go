// Package services holds the domain API clients used by the console
// screens. They are plain collaborators of the session layer: every call
// goes through the transport gateway, which handles tokens and 401s.
package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/transport"
)

// Users talks to the account and profile endpoints.
type Users struct {
	api *transport.Client
}

// NewUsers builds the users client.
func NewUsers(api *transport.Client) *Users {
	return &Users{api: api}
}

// ProfileInput carries editable profile fields.
type ProfileInput struct {
	Name    string          `json:"name,omitempty"`
	Phone   string          `json:"phone,omitempty"`
	Address *domain.Address `json:"address,omitempty"`
}

// UserPage is one page of the admin user listing.
type UserPage struct {
	Items []domain.User `json:"data"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
	Total int           `json:"total"`
}

// Profile fetches the signed-in account's profile.
func (u *Users) Profile(ctx context.Context) (*domain.User, error) {
	var out struct {
		User domain.User `json:"user"`
	}
	if err := u.api.Get(ctx, "/users/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// UpdateProfile updates the signed-in account's profile.
func (u *Users) UpdateProfile(ctx context.Context, input ProfileInput) (*domain.User, error) {
	var out struct {
		User domain.User `json:"user"`
	}
	if err := u.api.Put(ctx, "/users/profile", input, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// List returns one page of accounts. Admin only.
func (u *Users) List(ctx context.Context, page, limit int) (*UserPage, error) {
	var out UserPage
	if err := u.api.Get(ctx, "/v1/users", pageQuery(page, limit), &out); err != nil {
		if transport.IsStatus(err, http.StatusNotFound) {
			return &UserPage{Page: page, Limit: limit}, nil
		}
		return nil, err
	}
	return &out, nil
}

// Delete removes an account. Admin only.
func (u *Users) Delete(ctx context.Context, id string) error {
	return u.api.Delete(ctx, "/v1/users/"+id)
}

// ChangePassword swaps the account password after verifying the current one.
func (u *Users) ChangePassword(ctx context.Context, current, next string) error {
	body := map[string]string{"currentPassword": current, "newPassword": next}
	return u.api.Put(ctx, "/users/password", body, nil)
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return q
}
