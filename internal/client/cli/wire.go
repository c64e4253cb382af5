package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/exchangeclient/internal/client/client"
	"github.com/dmitrijs2005/exchangeclient/internal/client/config"
	"github.com/dmitrijs2005/exchangeclient/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/exchangeclient/internal/client/router"
	"github.com/dmitrijs2005/exchangeclient/internal/client/session"
	"github.com/dmitrijs2005/exchangeclient/internal/client/storage"
	"github.com/dmitrijs2005/exchangeclient/internal/client/supervisor"
	"github.com/dmitrijs2005/exchangeclient/internal/logging"
)

// Bootstrap builds the whole client from configuration: logger, session
// database, transport, session store, router and supervisor. The returned
// App owns the database; Close releases it.
func Bootstrap(ctx context.Context, c *config.Config) (*App, error) {
	log, err := logging.NewTextLogger(os.Stderr, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := storage.OpenDatabase(ctx, c.DatabasePath, log)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	tokens := storage.NewSQLiteTokenStore(metadata.NewSQLiteRepository(db))
	api := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, tokens, log)

	store, err := session.NewStore(ctx, api, tokens, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	nav, err := router.NewNavigator(router.DefaultRoutes(), router.NewAuthorizer(store, log), log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app := NewApp(store, api, nav, log)
	app.closeFn = db.Close
	supervisor.New(ctx, store, nav, app, log).Attach(api)

	log.Debug(ctx, "client ready", "api", c.APIBaseURL, "timeout", c.RequestTimeout, "db", c.DatabasePath)
	return app, nil
}

// Close releases resources acquired by Bootstrap.
func (a *App) Close() error {
	if a.closeFn == nil {
		return nil
	}
	return a.closeFn()
}
