package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cinelist/cinelist-server/internal/domain"
)

func (s *Server) registerProfileRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getMe",
		Method:      http.MethodGet,
		Path:        "/api/v1/me",
		Summary:     "Get current profile",
		Description: "Returns the signed-in user's profile and lists",
		Tags:        []string{"Profile"},
		Security:    bearer,
	}, s.handleGetMe)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateMe",
		Method:      http.MethodPatch,
		Path:        "/api/v1/me",
		Summary:     "Update current profile",
		Description: "Updates name, bio, avatar, or cover image. Omitted fields are unchanged.",
		Tags:        []string{"Profile"},
		Security:    bearer,
	}, s.handleUpdateMe)
}

// UserOutput wraps a user snapshot for Huma.
type UserOutput struct {
	Body domain.User
}

// UpdateProfileRequest is the request body for updating the profile.
type UpdateProfileRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=1,max=100" doc:"Display name"`
	Bio           *string `json:"bio,omitempty" validate:"omitempty,max=500" doc:"Short bio"`
	AvatarURL     *string `json:"avatar_url,omitempty" validate:"omitempty,max=2048" doc:"Avatar image URL or preset path"`
	CoverImageURL *string `json:"cover_image_url,omitempty" validate:"omitempty,max=2048" doc:"Cover image URL"`
}

// UpdateProfileInput wraps the update profile request for Huma.
type UpdateProfileInput struct {
	Body UpdateProfileRequest
}

func (s *Server) handleGetMe(ctx context.Context, _ *struct{}) (*UserOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Profile.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}

func (s *Server) handleUpdateMe(ctx context.Context, input *UpdateProfileInput) (*UserOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	user, err := s.services.Profile.Update(ctx, userID, domain.ProfileUpdate{
		Name:          input.Body.Name,
		Bio:           input.Body.Bio,
		AvatarURL:     input.Body.AvatarURL,
		CoverImageURL: input.Body.CoverImageURL,
	})
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}
