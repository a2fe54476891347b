package platform

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthUser is the platform's view of the signed-in account.
type AuthUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthResult is the platform's login/register response: the account plus a
// bearer token for subsequent calls.
type AuthResult struct {
	User  AuthUser `json:"user"`
	Token string   `json:"token"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	var out AuthResult
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", loginReq{Email: email, Password: password}, &out)
	return out, err
}

// Register creates an account and returns a bearer token immediately.
func (c *Client) Register(ctx context.Context, name, email, password, role string) (AuthResult, error) {
	var out AuthResult
	err := c.doJSON(ctx, http.MethodPost, "/auth/register", "",
		registerReq{Name: name, Email: email, Password: password, Role: role}, &out)
	return out, err
}

// RefreshToken asks the auth collaborator for a fresh bearer token using the
// (possibly expired) current one.  The platform accepts recently expired
// tokens on this endpoint only.
func (c *Client) RefreshToken(ctx context.Context, token string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/refresh", token, nil, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// TokenExpired decodes the token's exp claim without verifying the
// signature: the gateway does not hold the platform's signing secret, it
// only needs to know whether a refresh is due before re-sending the token.
// A token that cannot be decoded at all is reported expired so the caller
// refreshes rather than sending known garbage.
func TokenExpired(token string, now time.Time) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return true
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return now.After(exp.Time)
}
