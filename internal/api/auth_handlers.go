package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cinelist/cinelist-server/internal/domain"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Sign in",
		Description: "Signs in with an email address, creating the profile on first use. No password is involved.",
		Tags:        []string{"Auth"},
		Middlewares: huma.Middlewares{s.loginRateLimit(s.loginLimiter)},
	}, s.handleLogin)
}

// LoginRequest is the request body for signing in.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email,max=254" doc:"Email address"`
	Name  string `json:"name,omitempty" validate:"max=100" doc:"Display name for a new profile"`
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	Body LoginRequest
}

// AuthResponse contains the access token and the signed-in profile.
type AuthResponse struct {
	AccessToken string      `json:"access_token" doc:"PASETO access token"`
	TokenType   string      `json:"token_type" doc:"Always Bearer"`
	ExpiresAt   time.Time   `json:"expires_at" doc:"Token expiry"`
	User        domain.User `json:"user" doc:"Signed-in profile"`
}

// AuthOutput wraps the auth response for Huma.
type AuthOutput struct {
	Body AuthResponse
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	result, err := s.services.Auth.Login(ctx, input.Body.Email, input.Body.Name)
	if err != nil {
		return nil, err
	}

	return &AuthOutput{
		Body: AuthResponse{
			AccessToken: result.AccessToken,
			TokenType:   "Bearer",
			ExpiresAt:   result.ExpiresAt,
			User:        result.User,
		},
	}, nil
}
