package api

import (
	"github.com/cinelist/cinelist-server/internal/projection"
	"github.com/cinelist/cinelist-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Auth      *service.AuthService
	Profile   *service.ProfileService
	Lists     *service.ListService
	Transfer  *service.TransferService
	Catalog   *service.CatalogService
	Projector *projection.Projector
}
