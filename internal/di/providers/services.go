package providers

import (
	"github.com/samber/do/v2"

	"github.com/cinelist/cinelist-server/internal/auth"
	"github.com/cinelist/cinelist-server/internal/config"
	"github.com/cinelist/cinelist-server/internal/logger"
	"github.com/cinelist/cinelist-server/internal/metadata"
	"github.com/cinelist/cinelist-server/internal/projection"
	"github.com/cinelist/cinelist-server/internal/service"
)

// ProvideAuthService provides the mocked login service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.UserStore, tokenService, cfg.Auth.SeedSampleLists, log.Logger), nil
}

// ProvideListService provides the list item store service.
func ProvideListService(i do.Injector) (*service.ListService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewListService(storeHandle.UserStore, sseHandle.Manager, log.Logger), nil
}

// ProvideProfileService provides the profile service.
func ProvideProfileService(i do.Injector) (*service.ProfileService, error) {
	lists := do.MustInvoke[*service.ListService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewProfileService(lists, log.Logger), nil
}

// ProvideTransferService provides list export and import.
func ProvideTransferService(i do.Injector) (*service.TransferService, error) {
	lists := do.MustInvoke[*service.ListService](i)
	resolver := do.MustInvoke[*projection.Resolver](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTransferService(lists, resolver, log.Logger), nil
}

// ProvideCatalogService provides catalog browsing.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	provider := do.MustInvoke[metadata.Provider](i)
	return service.NewCatalogService(provider), nil
}
