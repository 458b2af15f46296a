package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cinelist/cinelist-server/internal/listdoc"
)

// maxImportBytes bounds the size of an uploaded list document.
const maxImportBytes = 5 << 20

func (s *Server) registerTransferRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "exportList",
		Method:      http.MethodGet,
		Path:        "/api/v1/lists/{id}/export",
		Summary:     "Export list",
		Description: "Downloads the list as a portable JSON document. Items that cannot be resolved are skipped.",
		Tags:        []string{"Lists"},
		Security:    bearer,
	}, s.handleExportList)

	huma.Register(s.api, huma.Operation{
		OperationID:   "importList",
		Method:        http.MethodPost,
		Path:          "/api/v1/lists/import",
		Summary:       "Import list",
		Description:   "Creates a new list from an exported JSON document. A malformed document creates nothing.",
		Tags:          []string{"Lists"},
		Security:      bearer,
		DefaultStatus: http.StatusCreated,
		MaxBodyBytes:  maxImportBytes,
	}, s.handleImportList)
}

// ExportOutput is the raw document download.
type ExportOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// ImportInput carries the raw document.
type ImportInput struct {
	RawBody []byte
}

func (s *Server) handleExportList(ctx context.Context, input *ListIDInput) (*ExportOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := s.services.Transfer.Export(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}
	data, err := listdoc.Encode(doc)
	if err != nil {
		return nil, fmt.Errorf("encode list document: %w", err)
	}

	return &ExportOutput{
		ContentType:        "application/json",
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", listdoc.FileName(doc.ListName)),
		Body:               data,
	}, nil
}

func (s *Server) handleImportList(ctx context.Context, input *ImportInput) (*SnapshotOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, list, err := s.services.Transfer.Import(ctx, userID, input.RawBody)
	if err != nil {
		return nil, err
	}
	return &SnapshotOutput{Body: SnapshotResponse{User: user, List: &list}}, nil
}
