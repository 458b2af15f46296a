package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cinelist/cinelist-server/internal/domain"
	domainerrors "github.com/cinelist/cinelist-server/internal/errors"
	"github.com/cinelist/cinelist-server/internal/projection"
	"github.com/cinelist/cinelist-server/internal/service"
)

// dateLayout is the calendar-day format accepted by the details filters.
const dateLayout = "2006-01-02"

func (s *Server) registerListRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listLists",
		Method:      http.MethodGet,
		Path:        "/api/v1/lists",
		Summary:     "List lists",
		Description: "Returns the user's lists, pinned lists first",
		Tags:        []string{"Lists"},
		Security:    bearer,
	}, s.handleListLists)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createList",
		Method:        http.MethodPost,
		Path:          "/api/v1/lists",
		Summary:       "Create list",
		Description:   "Appends a new empty, unpinned list",
		Tags:          []string{"Lists"},
		Security:      bearer,
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateList)

	huma.Register(s.api, huma.Operation{
		OperationID: "reorderLists",
		Method:      http.MethodPut,
		Path:        "/api/v1/lists/order",
		Summary:     "Reorder pinned lists",
		Description: "Sets the order of the pinned lists. Unknown and unpinned ids are ignored.",
		Tags:        []string{"Lists"},
		Security:    bearer,
	}, s.handleReorderLists)

	huma.Register(s.api, huma.Operation{
		OperationID: "renameList",
		Method:      http.MethodPatch,
		Path:        "/api/v1/lists/{id}",
		Summary:     "Rename list",
		Description: "Renames a list",
		Tags:        []string{"Lists"},
		Security:    bearer,
	}, s.handleRenameList)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteList",
		Method:      http.MethodDelete,
		Path:        "/api/v1/lists/{id}",
		Summary:     "Delete list",
		Description: "Removes a list. Removing an absent list succeeds.",
		Tags:        []string{"Lists"},
		Security:    bearer,
	}, s.handleDeleteList)

	huma.Register(s.api, huma.Operation{
		OperationID: "saveListItem",
		Method:      http.MethodPost,
		Path:        "/api/v1/lists/{id}/items",
		Summary:     "Add or update item",
		Description: "Adds media to the front of a list, or updates the rating and watched episodes of the existing entry",
		Tags:        []string{"Lists"},
		Security:    bearer,
	}, s.handleSaveItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleListPin",
		Method:      http.MethodPost,
		Path:        "/api/v1/lists/{id}/pin",
		Summary:     "Toggle pin",
		Description: "Pins or unpins a list, moving it to the pinned boundary",
		Tags:        []string{"Lists"},
		Security:    bearer,
	}, s.handleTogglePin)

	huma.Register(s.api, huma.Operation{
		OperationID: "getListDetails",
		Method:      http.MethodGet,
		Path:        "/api/v1/lists/{id}/details",
		Summary:     "List details",
		Description: "Resolves every item of a list against the catalog, newest first, with optional filters and grouping",
		Tags:        []string{"Lists"},
		Security:    bearer,
	}, s.handleListDetails)
}

// === DTOs ===

// SnapshotResponse is the canonical user snapshot after a change.
type SnapshotResponse struct {
	User domain.User      `json:"user" doc:"Updated user snapshot"`
	List *domain.UserList `json:"list,omitempty" doc:"The list created by this request"`
}

// SnapshotOutput wraps the snapshot response for Huma.
type SnapshotOutput struct {
	Body SnapshotResponse
}

// ListsResponse contains the user's lists.
type ListsResponse struct {
	Lists []domain.UserList `json:"lists" doc:"Lists in display order"`
}

// ListsOutput wraps the lists response for Huma.
type ListsOutput struct {
	Body ListsResponse
}

// ListNameRequest is the request body for creating or renaming a list.
type ListNameRequest struct {
	Name string `json:"name" validate:"required,max=100" doc:"List name"`
}

// CreateListInput wraps the create list request for Huma.
type CreateListInput struct {
	Body ListNameRequest
}

// RenameListInput wraps the rename list request for Huma.
type RenameListInput struct {
	ID   string `path:"id" doc:"List ID"`
	Body ListNameRequest
}

// ListIDInput identifies one list.
type ListIDInput struct {
	ID string `path:"id" doc:"List ID"`
}

// SaveItemRequest is the request body for adding or updating a list item.
type SaveItemRequest struct {
	MediaID           int     `json:"media_id" validate:"required,gt=0" doc:"Catalog media ID"`
	MediumKind        string  `json:"medium_kind" validate:"required,mediumkind" doc:"movie or series"`
	Rating            float64 `json:"rating" validate:"required,rating" doc:"User rating, 0.5 to 5 in half steps"`
	WatchedEpisodeIDs []int   `json:"watched_episode_ids,omitempty" validate:"omitempty,dive,gt=0" doc:"Episodes to mark watched (series only)"`
}

// SaveItemInput wraps the save item request for Huma.
type SaveItemInput struct {
	ID   string `path:"id" doc:"List ID"`
	Body SaveItemRequest
}

// ReorderRequest is the request body for reordering pinned lists.
type ReorderRequest struct {
	ListIDs []string `json:"list_ids" validate:"required" doc:"Pinned list IDs in the desired order"`
}

// ReorderInput wraps the reorder request for Huma.
type ReorderInput struct {
	Body ReorderRequest
}

// ListDetailsInput contains the details view filters.
type ListDetailsInput struct {
	ID    string `path:"id" doc:"List ID"`
	Title string `query:"title" doc:"Case-insensitive title substring"`
	Month string `query:"month" doc:"Only items added in this month (YYYY-MM)"`
	From  string `query:"from" doc:"Only items added on or after this day (YYYY-MM-DD)"`
	To    string `query:"to" doc:"Only items added on or before this day (YYYY-MM-DD)"`
	Group string `query:"group" enum:"none,category,month" doc:"Group items by category or month added"`
}

// ListDetailOutput wraps the list detail view for Huma.
type ListDetailOutput struct {
	Body projection.ListDetail
}

// === Handlers ===

func (s *Server) handleListLists(ctx context.Context, _ *struct{}) (*ListsOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	lists, err := s.services.Lists.Lists(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ListsOutput{Body: ListsResponse{Lists: lists}}, nil
}

func (s *Server) handleCreateList(ctx context.Context, input *CreateListInput) (*SnapshotOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	user, list, err := s.services.Lists.CreateList(ctx, userID, input.Body.Name)
	if err != nil {
		return nil, err
	}
	return &SnapshotOutput{Body: SnapshotResponse{User: user, List: &list}}, nil
}

func (s *Server) handleRenameList(ctx context.Context, input *RenameListInput) (*SnapshotOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	user, err := s.services.Lists.RenameList(ctx, userID, input.ID, input.Body.Name)
	if err != nil {
		return nil, err
	}
	return &SnapshotOutput{Body: SnapshotResponse{User: user}}, nil
}

func (s *Server) handleDeleteList(ctx context.Context, input *ListIDInput) (*SnapshotOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Lists.RemoveList(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}
	return &SnapshotOutput{Body: SnapshotResponse{User: user}}, nil
}

func (s *Server) handleSaveItem(ctx context.Context, input *SaveItemInput) (*SnapshotOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	req, err := s.itemRequest(input.Body)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Lists.AddOrUpdateItem(ctx, userID, input.ID, req)
	if err != nil {
		return nil, err
	}
	return &SnapshotOutput{Body: SnapshotResponse{User: user}}, nil
}

func (s *Server) handleTogglePin(ctx context.Context, input *ListIDInput) (*SnapshotOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Lists.TogglePin(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}
	return &SnapshotOutput{Body: SnapshotResponse{User: user}}, nil
}

func (s *Server) handleReorderLists(ctx context.Context, input *ReorderInput) (*SnapshotOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	user, err := s.services.Lists.Reorder(ctx, userID, input.Body.ListIDs)
	if err != nil {
		return nil, err
	}
	return &SnapshotOutput{Body: SnapshotResponse{User: user}}, nil
}

func (s *Server) handleListDetails(ctx context.Context, input *ListDetailsInput) (*ListDetailOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	filter, err := detailsFilter(input)
	if err != nil {
		return nil, err
	}
	grouping, ok := projection.ParseGrouping(input.Group)
	if !ok {
		return nil, domainerrors.Validationf("unknown grouping %q", input.Group)
	}

	list, err := s.services.Lists.List(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	detail, err := s.services.Projector.Project(ctx, list, filter, grouping)
	if err != nil {
		return nil, err
	}
	return &ListDetailOutput{Body: detail}, nil
}

// itemRequest validates a save item body and converts it for the list service.
func (s *Server) itemRequest(body SaveItemRequest) (service.AddItemRequest, error) {
	if err := s.validator.Validate(body); err != nil {
		return service.AddItemRequest{}, err
	}
	kind, ok := domain.ParseMediumKind(body.MediumKind)
	if !ok {
		return service.AddItemRequest{}, domainerrors.Validationf("unknown medium kind %q", body.MediumKind)
	}
	return service.AddItemRequest{
		MediaID: body.MediaID,
		Kind:    kind,
		Rating:  body.Rating,
		Watched: body.WatchedEpisodeIDs,
	}, nil
}

// detailsFilter builds the projection filter from query parameters.
func detailsFilter(input *ListDetailsInput) (projection.Filter, error) {
	filter := projection.Filter{Title: input.Title, Month: input.Month}

	if input.From != "" || input.To != "" {
		if input.From == "" || input.To == "" {
			return projection.Filter{}, domainerrors.Validation("from and to must be given together")
		}
		start, err := time.Parse(dateLayout, input.From)
		if err != nil {
			return projection.Filter{}, domainerrors.Validationf("from must be a YYYY-MM-DD date, got %q", input.From)
		}
		end, err := time.Parse(dateLayout, input.To)
		if err != nil {
			return projection.Filter{}, domainerrors.Validationf("to must be a YYYY-MM-DD date, got %q", input.To)
		}
		filter.Range = &projection.DateRange{Start: start, End: end}
	}

	if err := filter.Validate(); err != nil {
		return projection.Filter{}, err
	}
	return filter, nil
}
