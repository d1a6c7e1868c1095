// A shared test server setup utility, which simplifies all API tests.

package testutil

import (
	"database/sql"
	"testing"

	"github.com/spf13/afero"
	"github.com/vrsandeep/mango-downloads/internal/api"
	"github.com/vrsandeep/mango-downloads/internal/config"
	"github.com/vrsandeep/mango-downloads/internal/core"
)

// DownloadsRoot is the downloads root of test apps.
const DownloadsRoot = "/downloads"

// SetupTestApp builds a core.App on an in-memory database whose downloads
// live on an in-memory filesystem under DownloadsRoot.
func SetupTestApp(t *testing.T) (*core.App, afero.Fs) {
	t.Helper()
	db := SetupTestDB(t)

	cfg := &config.Config{}
	cfg.Downloads.Path = DownloadsRoot
	cfg.Downloads.TmpMaxAge = 24

	fs := afero.NewMemMapFs()
	app, err := core.NewApp(cfg, db, fs)
	if err != nil {
		t.Fatalf("Failed to set up app: %v", err)
	}
	app.Version = "test"
	go app.WsHub().Run()
	return app, fs
}

// SetupTestServer initializes a full core.App and api.Server for integration testing.
func SetupTestServer(t *testing.T) (*api.Server, *sql.DB) {
	t.Helper()
	app, _ := SetupTestApp(t)
	return api.NewServer(app), app.DB()
}
