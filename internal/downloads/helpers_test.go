package downloads

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/vrsandeep/mango-downloads/internal/models"
)

const testRoot = "/downloads"

type fakeSources map[int64]*models.Source

func (f fakeSources) Get(id int64) (*models.Source, bool) {
	s, ok := f[id]
	return s, ok
}

var (
	testSource = &models.Source{ID: 1, Name: "MangaDex", Lang: "en"}
	testManga  = &models.Manga{ID: 10, SourceID: 1, Title: "Shingeki", OriginalTitle: "Attack on Titan"}
)

func newTestProvider(t *testing.T) (*Provider, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(testRoot, 0o755))
	return NewProvider(fs, testRoot, fakeSources{testSource.ID: testSource}), fs
}

// mangaPath is where testManga lives under testRoot.
func mangaPath() string {
	return filepath.Join(testRoot, "MangaDex (EN)", "Attack on Titan")
}

// makeEntries creates directories called names inside the test manga folder.
func makeEntries(t *testing.T, fs afero.Fs, names ...string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(mangaPath(), 0o755))
	for _, name := range names {
		require.NoError(t, fs.MkdirAll(filepath.Join(mangaPath(), name), 0o755))
	}
}

func names(dirs []Dir) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, d.Name())
	}
	return out
}

func strPtr(s string) *string { return &s }
