package providers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/cinelist/cinelist-server/internal/config"
	"github.com/cinelist/cinelist-server/internal/logger"
	"github.com/cinelist/cinelist-server/internal/sse"
	"github.com/cinelist/cinelist-server/internal/store"
	"github.com/cinelist/cinelist-server/internal/store/sqlite"
)

// SSEManagerHandle wraps the SSE manager with its context for lifecycle management.
type SSEManagerHandle struct {
	*sse.Manager
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *SSEManagerHandle) Shutdown() error {
	h.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Manager.Shutdown(ctx)
}

// ProvideSSEManager provides the server-sent events manager.
func ProvideSSEManager(i do.Injector) (*SSEManagerHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	manager := sse.NewManager(log.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	go manager.Start(ctx)

	log.Info("SSE manager started")

	return &SSEManagerHandle{
		Manager: manager,
		cancel:  cancel,
	}, nil
}

// StoreHandle wraps the configured user store with shutdown capability.
type StoreHandle struct {
	store.UserStore
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore opens the user store selected by the persistence setting.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	s, path, err := OpenStore(cfg.Storage, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized",
		"persistence", cfg.Storage.Persistence,
		"path", path,
	)

	return &StoreHandle{UserStore: s}, nil
}

// OpenStore opens the backend named by storage.Persistence under storage.DataPath.
// It returns the on-disk location, empty for the memory backend.
func OpenStore(storage config.StorageConfig, log *slog.Logger) (store.UserStore, string, error) {
	switch storage.Persistence {
	case config.PersistenceMemory:
		return store.NewMemoryStore(), "", nil
	case config.PersistenceSQLite:
		if err := os.MkdirAll(storage.DataPath, 0o755); err != nil {
			return nil, "", fmt.Errorf("create data directory: %w", err)
		}
		path := filepath.Join(storage.DataPath, "cinelist.db")
		s, err := sqlite.Open(path, log)
		if err != nil {
			return nil, "", err
		}
		return s, path, nil
	case config.PersistenceBadger, "":
		path := filepath.Join(storage.DataPath, "db")
		s, err := store.New(path, log)
		if err != nil {
			return nil, "", err
		}
		return s, path, nil
	default:
		return nil, "", fmt.Errorf("unknown persistence %q", storage.Persistence)
	}
}

// ProvideSlogLogger provides access to the underlying slog.Logger for packages that need it.
func ProvideSlogLogger(i do.Injector) (*slog.Logger, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return log.Logger, nil
}
