package api

import (
	"context"
	"net/http"

	"hirestack/recruit-core/internal/models"
)

// authUserWire mirrors the user object in auth responses. Deployed backend
// variants disagree on the display-name key ("name" vs "full_name"); both
// are accepted here.
type authUserWire struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
}

type authResponseWire struct {
	User  authUserWire `json:"user"`
	Token string       `json:"token"`
}

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func normalizeAuthUser(w authUserWire) models.User {
	name := w.Name
	if name == "" {
		name = w.FullName
	}
	return models.User{
		ID:          w.ID,
		Email:       w.Email,
		DisplayName: name,
	}
}

// SignUp registers a new account and returns the identity plus the bearer
// token to use for subsequent calls.
func (c *Client) SignUp(ctx context.Context, name, email, password string) (models.User, string, error) {
	var resp authResponseWire
	err := c.doJSON(ctx, http.MethodPost, "/auth/signup",
		signUpRequest{Name: name, Email: email, Password: password},
		&resp, "Sign up failed")
	if err != nil {
		return models.User{}, "", err
	}
	return normalizeAuthUser(resp.User), resp.Token, nil
}

// SignIn authenticates an existing account. The response may omit the
// display name; callers must tolerate a partial identity.
func (c *Client) SignIn(ctx context.Context, email, password string) (models.User, string, error) {
	var resp authResponseWire
	err := c.doJSON(ctx, http.MethodPost, "/auth/signin",
		signInRequest{Email: email, Password: password},
		&resp, "Sign in failed")
	if err != nil {
		return models.User{}, "", err
	}
	return normalizeAuthUser(resp.User), resp.Token, nil
}
