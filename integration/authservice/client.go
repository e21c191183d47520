package authservice

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrymomot/itemdesk/core/auth"
	"github.com/dmitrymomot/itemdesk/core/session"
	"github.com/dmitrymomot/itemdesk/integration/rpc"
)

// ServiceName is the fully-qualified Connect service of the auth API.
const ServiceName = "auth.AuthService"

var (
	ErrMissingCredentials = errors.New("authservice: email and password are required")
	ErrMissingName        = errors.New("authservice: name is required")
	ErrIncompleteResponse = errors.New("authservice: response carries no user or tokens")
)

// Caller is the transport used by Client; *rpc.Client satisfies it.
type Caller interface {
	Call(ctx context.Context, service, method string, req, resp any, opts ...rpc.CallOption) error
}

// Tokens is the credential pair issued on sign-in.
type Tokens struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	ExpiresAt    rpc.Timestamp `json:"expiresAt"`
}

// Result is the outcome of a successful login or registration.
type Result struct {
	User   session.User `json:"user"`
	Tokens Tokens       `json:"tokens"`
}

type Client struct {
	caller Caller
}

func New(caller Caller) *Client {
	return &Client{caller: caller}
}

type (
	loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	registerRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	refreshRequest struct {
		RefreshToken string `json:"refreshToken"`
	}
	resultResponse struct {
		User   *session.User `json:"user"`
		Tokens *Tokens       `json:"tokens"`
	}
	refreshResponse struct {
		Tokens *Tokens `json:"tokens"`
	}
)

func (c *Client) Login(ctx context.Context, email, password string) (Result, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return Result{}, ErrMissingCredentials
	}
	return c.result(ctx, "Login", loginRequest{Email: email, Password: password})
}

func (c *Client) Register(ctx context.Context, email, password, name string) (Result, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return Result{}, ErrMissingCredentials
	}
	if strings.TrimSpace(name) == "" {
		return Result{}, ErrMissingName
	}
	return c.result(ctx, "Register", registerRequest{Email: email, Password: password, Name: name})
}

// Refresh exchanges a refresh token for a new token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	var resp refreshResponse
	if err := c.caller.Call(ctx, ServiceName, "RefreshToken", refreshRequest{RefreshToken: refreshToken}, &resp); err != nil {
		return Tokens{}, err
	}
	if resp.Tokens == nil || resp.Tokens.AccessToken == "" {
		return Tokens{}, ErrIncompleteResponse
	}
	return *resp.Tokens, nil
}

// Logout notifies the service that the current tokens are abandoned. The
// local session is cleared regardless of the outcome, so callers usually
// only log the error.
func (c *Client) Logout(ctx context.Context) error {
	var token string
	if f, err := auth.FromContext(ctx); err == nil {
		token = f.AccessToken()
	}
	return c.caller.Call(ctx, ServiceName, "Logout", struct{}{}, nil, rpc.BearerToken(token))
}

func (c *Client) result(ctx context.Context, method string, req any) (Result, error) {
	var resp resultResponse
	if err := c.caller.Call(ctx, ServiceName, method, req, &resp); err != nil {
		return Result{}, err
	}
	if resp.User == nil || resp.Tokens == nil || resp.Tokens.AccessToken == "" {
		return Result{}, ErrIncompleteResponse
	}
	return Result{User: *resp.User, Tokens: *resp.Tokens}, nil
}
