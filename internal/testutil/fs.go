package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/vrsandeep/mango-downloads/internal/core"
	"github.com/vrsandeep/mango-downloads/internal/models"
	"github.com/vrsandeep/mango-downloads/internal/store"
)

// MakeDirs creates each directory below base on fs.
func MakeDirs(t *testing.T, fs afero.Fs, base string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := fs.MkdirAll(filepath.Join(base, name), 0o755); err != nil {
			t.Fatalf("Failed to create directory '%s': %v", name, err)
		}
	}
}

// Age sets the modification time of path to d in the past.
func Age(t *testing.T, fs afero.Fs, path string, d time.Duration) {
	t.Helper()
	old := time.Now().Add(-d)
	if err := fs.Chtimes(path, old, old); err != nil {
		t.Fatalf("Failed to age '%s': %v", path, err)
	}
}

// SeedSource stores a source and registers it with the app.
func SeedSource(t *testing.T, app *core.App, id int64, name string) *models.Source {
	t.Helper()
	src, err := store.New(app.DB()).CreateSource(id, name, "en")
	if err != nil {
		t.Fatalf("Failed to create source: %v", err)
	}
	app.Sources().Register(src)
	return src
}

// SeedManga stores a manga together with its chapters.
func SeedManga(t *testing.T, app *core.App, sourceID int64, title string, chapters ...*models.Chapter) *models.Manga {
	t.Helper()
	st := store.New(app.DB())
	m, err := st.CreateManga(sourceID, title, "", "")
	if err != nil {
		t.Fatalf("Failed to create manga: %v", err)
	}
	for _, c := range chapters {
		c.MangaID = m.ID
		created, err := st.CreateChapter(c)
		if err != nil {
			t.Fatalf("Failed to create chapter '%s': %v", c.Name, err)
		}
		c.ID = created.ID
	}
	return m
}
