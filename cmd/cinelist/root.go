package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cinelist/cinelist-server/internal/config"
	"github.com/cinelist/cinelist-server/internal/di/providers"
	"github.com/cinelist/cinelist-server/internal/id"
	"github.com/cinelist/cinelist-server/internal/logger"
	"github.com/cinelist/cinelist-server/internal/metadata/tmdb"
	"github.com/cinelist/cinelist-server/internal/projection"
	"github.com/cinelist/cinelist-server/internal/service"
	"github.com/cinelist/cinelist-server/internal/store"
)

// app holds the services a command runs against.
type app struct {
	store    store.UserStore
	lists    *service.ListService
	transfer *service.TransferService
	userID   string
}

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	email       string
	dataPath    string
	persistence string
	tmdbKey     string
	logLevel    string

	open func(opts *rootOptions) (*app, error)
}

func newRootCmd() *cobra.Command {
	return newRootCommand(openApp)
}

// newRootCommand builds the command tree around open, which tests replace.
func newRootCommand(open func(opts *rootOptions) (*app, error)) *cobra.Command {
	opts := &rootOptions{open: open}

	cmd := &cobra.Command{
		Use:           "cinelist",
		Short:         "Manage CineList lists from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.email, "email", "", "Email of the user whose lists to use")
	flags.StringVar(&opts.dataPath, "data-path", "", "Directory holding the profile database")
	flags.StringVar(&opts.persistence, "persistence", "", "Profile store: badger or sqlite")
	flags.StringVar(&opts.tmdbKey, "tmdb-api-key", "", "TMDB API key used to resolve exported items")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newListsCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
	)

	return cmd
}

// run opens the app, hands it to fn, and closes the store afterwards.
func (o *rootOptions) run(fn func(a *app) error) error {
	if strings.TrimSpace(o.email) == "" {
		return fmt.Errorf("--email is required")
	}
	a, err := o.open(o)
	if err != nil {
		return err
	}
	defer a.store.Close()
	return fn(a)
}

// openApp builds the services from configuration; flags override environment values.
func openApp(o *rootOptions) (*app, error) {
	cfg, err := config.LoadConfig(nil)
	if err != nil {
		return nil, err
	}
	if o.dataPath != "" {
		cfg.Storage.DataPath = o.dataPath
	}
	if o.persistence != "" {
		cfg.Storage.Persistence = strings.ToLower(o.persistence)
	}
	if o.tmdbKey != "" {
		cfg.Metadata.APIKey = o.tmdbKey
	}
	if cfg.Storage.Persistence == config.PersistenceMemory {
		return nil, fmt.Errorf("the memory store cannot be opened from the command line")
	}

	log := logger.New(logger.Config{
		Writer: os.Stderr,
		Format: "pretty",
		Level:  logger.ParseLevel(o.logLevel),
	})

	s, _, err := providers.OpenStore(cfg.Storage, log.Logger)
	if err != nil {
		return nil, err
	}

	client := tmdb.New(tmdb.Options{
		BaseURL:           cfg.Metadata.BaseURL,
		APIKey:            cfg.Metadata.APIKey,
		ImageBaseURL:      cfg.Metadata.ImageBaseURL,
		Timeout:           cfg.Metadata.Timeout,
		RequestsPerSecond: cfg.Metadata.RequestsPerSecond,
		RetryAttempts:     cfg.Metadata.RetryAttempts,
	}, log.Logger)

	return newApp(s, projection.NewResolver(client, cfg.Projection.Concurrency, log.Logger), o.email, log.Logger), nil
}

func newApp(s store.UserStore, resolver *projection.Resolver, email string, log *slog.Logger) *app {
	lists := service.NewListService(s, store.NewNoopEmitter(), log)
	return &app{
		store:    s,
		lists:    lists,
		transfer: service.NewTransferService(lists, resolver, log),
		userID:   id.ForEmail(email),
	}
}
