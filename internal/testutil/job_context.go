// This file contains shared test utilities for job context mocking.

package testutil

import (
	"database/sql"

	"github.com/vrsandeep/mango-downloads/internal/config"
	"github.com/vrsandeep/mango-downloads/internal/core"
	"github.com/vrsandeep/mango-downloads/internal/downloads"
	"github.com/vrsandeep/mango-downloads/internal/jobs"
	"github.com/vrsandeep/mango-downloads/internal/sources"
	"github.com/vrsandeep/mango-downloads/internal/websocket"
)

// MockJobContext implements jobs.JobContext for testing. Progress goes to a
// fresh hub nobody listens on.
type MockJobContext struct {
	App *core.App
}

func (m *MockJobContext) DB() *sql.DB                    { return m.App.DB() }
func (m *MockJobContext) Config() *config.Config         { return m.App.Config() }
func (m *MockJobContext) WsHub() *websocket.Hub          { return websocket.NewHub() }
func (m *MockJobContext) JobManager() *jobs.JobManager   { return nil }
func (m *MockJobContext) Downloads() *downloads.Provider { return m.App.Downloads() }
func (m *MockJobContext) Sources() *sources.Registry     { return m.App.Sources() }
