package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cinelist/cinelist-server/internal/domain"
	domainerrors "github.com/cinelist/cinelist-server/internal/errors"
)

// Preview operations apply a list change to a snapshot the client already holds
// and return the result without saving it. Clients render the preview at once and
// replace it with the snapshot from the matching commit endpoint.
func (s *Server) registerPreviewRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "previewSaveItem",
		Method:      http.MethodPost,
		Path:        "/api/v1/preview/items",
		Summary:     "Preview add or update item",
		Description: "Applies an add-or-update to the given snapshot without persisting it",
		Tags:        []string{"Preview"},
		Security:    bearer,
	}, s.handlePreviewSaveItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "previewTogglePin",
		Method:      http.MethodPost,
		Path:        "/api/v1/preview/pin",
		Summary:     "Preview toggle pin",
		Description: "Applies a pin toggle to the given snapshot without persisting it",
		Tags:        []string{"Preview"},
		Security:    bearer,
	}, s.handlePreviewTogglePin)

	huma.Register(s.api, huma.Operation{
		OperationID: "previewReorder",
		Method:      http.MethodPost,
		Path:        "/api/v1/preview/order",
		Summary:     "Preview reorder",
		Description: "Applies a pinned-list reorder to the given snapshot without persisting it",
		Tags:        []string{"Preview"},
		Security:    bearer,
	}, s.handlePreviewReorder)
}

// PreviewItemRequest is a snapshot plus the item change to apply.
type PreviewItemRequest struct {
	User   domain.User     `json:"user" doc:"Snapshot the client currently shows"`
	ListID string          `json:"list_id" validate:"required" doc:"Target list"`
	Item   SaveItemRequest `json:"item"`
}

// PreviewItemInput wraps the item preview request for Huma.
type PreviewItemInput struct {
	Body PreviewItemRequest
}

// PreviewPinRequest is a snapshot plus the list to toggle.
type PreviewPinRequest struct {
	User   domain.User `json:"user" doc:"Snapshot the client currently shows"`
	ListID string      `json:"list_id" validate:"required" doc:"List to pin or unpin"`
}

// PreviewPinInput wraps the pin preview request for Huma.
type PreviewPinInput struct {
	Body PreviewPinRequest
}

// PreviewOrderRequest is a snapshot plus the desired pinned order.
type PreviewOrderRequest struct {
	User    domain.User `json:"user" doc:"Snapshot the client currently shows"`
	ListIDs []string    `json:"list_ids" validate:"required" doc:"Pinned list IDs in the desired order"`
}

// PreviewOrderInput wraps the order preview request for Huma.
type PreviewOrderInput struct {
	Body PreviewOrderRequest
}

func (s *Server) handlePreviewSaveItem(ctx context.Context, input *PreviewItemInput) (*UserOutput, error) {
	if err := s.checkSnapshotOwner(ctx, input.Body.User); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}
	req, err := s.itemRequest(input.Body.Item)
	if err != nil {
		return nil, err
	}

	next, err := input.Body.User.AddOrUpdateItem(input.Body.ListID, req.MediaID, req.Kind, req.Rating, req.Watched, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: next}, nil
}

func (s *Server) handlePreviewTogglePin(ctx context.Context, input *PreviewPinInput) (*UserOutput, error) {
	if err := s.checkSnapshotOwner(ctx, input.Body.User); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}
	return &UserOutput{Body: input.Body.User.TogglePin(input.Body.ListID)}, nil
}

func (s *Server) handlePreviewReorder(ctx context.Context, input *PreviewOrderInput) (*UserOutput, error) {
	if err := s.checkSnapshotOwner(ctx, input.Body.User); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}
	return &UserOutput{Body: input.Body.User.Reorder(input.Body.ListIDs)}, nil
}

// checkSnapshotOwner rejects snapshots that belong to another user.
func (s *Server) checkSnapshotOwner(ctx context.Context, snapshot domain.User) error {
	userID, err := GetUserID(ctx)
	if err != nil {
		return err
	}
	if snapshot.ID != userID {
		return domainerrors.Forbidden("snapshot belongs to another user")
	}
	return nil
}
