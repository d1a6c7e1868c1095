package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrsandeep/mango-downloads/internal/api"
	"github.com/vrsandeep/mango-downloads/internal/core"
	"github.com/vrsandeep/mango-downloads/internal/models"
	"github.com/vrsandeep/mango-downloads/internal/testutil"
)

type downloadsFixture struct {
	app      *core.App
	fs       afero.Fs
	router   http.Handler
	manga    *models.Manga
	chapters []*models.Chapter
	mangaDir string
}

func setupDownloadsFixture(t *testing.T) *downloadsFixture {
	t.Helper()
	app, fs := testutil.SetupTestApp(t)
	src := testutil.SeedSource(t, app, 2, "MangaDex")
	group := "Group"
	chapters := []*models.Chapter{
		{ExternalID: "101", Name: "Chapter 1"},
		{ExternalID: "102", Name: "Chapter 2", Scanlator: &group},
		{ExternalID: "110", Name: "Chapter 10"},
	}
	manga := testutil.SeedManga(t, app, src.ID, "Blue Lock", chapters...)

	return &downloadsFixture{
		app:      app,
		fs:       fs,
		router:   api.NewServer(app).Router(),
		manga:    manga,
		chapters: chapters,
		mangaDir: filepath.Join(testutil.DownloadsRoot, "MangaDex (EN)", "Blue Lock"),
	}
}

func (f *downloadsFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func TestGetMangaDownloads(t *testing.T) {
	f := setupDownloadsFixture(t)
	testutil.MakeDirs(t, f.fs, f.mangaDir,
		"Chapter 10 - 110",
		"Group_Chapter 2 - 102",
		"Chapter 1 - 101",
		"Extras",
		"Chapter 3 - 103_tmp",
	)

	rr := f.do(t, http.MethodGet, fmt.Sprintf("/api/manga/%d/downloads", f.manga.ID), nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var got models.DownloadDirs
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, f.manga.ID, got.MangaID)
	assert.Equal(t, f.mangaDir, got.Path)
	assert.Equal(t, []string{"Chapter 1 - 101", "Chapter 10 - 110", "Group_Chapter 2 - 102"}, got.Matched)
	assert.Equal(t, []string{"Chapter 3 - 103_tmp", "Extras"}, got.Unmatched)
	assert.Equal(t, []string{"Chapter 3 - 103_tmp"}, got.Temporary)
}

func TestGetMangaDownloadsWithoutFolder(t *testing.T) {
	f := setupDownloadsFixture(t)

	rr := f.do(t, http.MethodGet, fmt.Sprintf("/api/manga/%d/downloads", f.manga.ID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"manga_id":%d,"matched":[],"unmatched":[],"temporary":[]}`, f.manga.ID), rr.Body.String())
}

func TestMangaLookupErrors(t *testing.T) {
	f := setupDownloadsFixture(t)
	// Stored but never registered.
	_, err := f.app.DB().Exec("INSERT INTO sources (id, name, lang) VALUES (99, 'Gone', 'en')")
	require.NoError(t, err)
	orphan := testutil.SeedManga(t, f.app, 99, "No Source")

	testCases := []struct {
		name   string
		path   string
		status int
	}{
		{"invalid id", "/api/manga/abc/downloads", http.StatusBadRequest},
		{"unknown manga", "/api/manga/4242/downloads", http.StatusNotFound},
		{"unregistered source", fmt.Sprintf("/api/manga/%d/downloads", orphan.ID), http.StatusNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := f.do(t, http.MethodGet, tc.path, nil)
			assert.Equal(t, tc.status, rr.Code)
		})
	}
}

func TestEnsureMangaDir(t *testing.T) {
	f := setupDownloadsFixture(t)

	rr := f.do(t, http.MethodPost, fmt.Sprintf("/api/manga/%d/downloads/dir", f.manga.ID), nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var got map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, f.mangaDir, got["path"])
	assert.Equal(t, "Blue Lock", got["name"])

	exists, err := afero.DirExists(f.fs, f.mangaDir)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestEnsureMangaDirInvalidLocation(t *testing.T) {
	f := setupDownloadsFixture(t)
	f.app.Downloads().SetRoot(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/readonly")

	rr := f.do(t, http.MethodPost, fmt.Sprintf("/api/manga/%d/downloads/dir", f.manga.ID), nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid download location")
}

func TestGetChapterDownloadDir(t *testing.T) {
	f := setupDownloadsFixture(t)
	testutil.MakeDirs(t, f.fs, f.mangaDir, "Group_Chapter 2 - 102", "Renamed by another build 110")

	t.Run("current name", func(t *testing.T) {
		rr := f.do(t, http.MethodGet, fmt.Sprintf("/api/chapters/%d/download-dir", f.chapters[1].ID), nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Contains(t, rr.Body.String(), `"name":"Group_Chapter 2 - 102"`)
	})

	t.Run("id suffix fallback", func(t *testing.T) {
		rr := f.do(t, http.MethodGet, fmt.Sprintf("/api/chapters/%d/download-dir", f.chapters[2].ID), nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Contains(t, rr.Body.String(), `"name":"Renamed by another build 110"`)
	})

	t.Run("not downloaded", func(t *testing.T) {
		rr := f.do(t, http.MethodGet, fmt.Sprintf("/api/chapters/%d/download-dir", f.chapters[0].ID), nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("unknown chapter", func(t *testing.T) {
		rr := f.do(t, http.MethodGet, "/api/chapters/9999/download-dir", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestUpdateMangaTitle(t *testing.T) {
	f := setupDownloadsFixture(t)
	testutil.MakeDirs(t, f.fs, f.mangaDir, "Chapter 1 - 101")

	t.Run("renames folder", func(t *testing.T) {
		rr := f.do(t, http.MethodPut, fmt.Sprintf("/api/manga/%d/title", f.manga.ID), map[string]string{"title": "Blue Lock: Episode Nagi"})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var got models.Manga
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "Blue Lock: Episode Nagi", got.Title)

		var title string
		require.NoError(t, f.app.DB().QueryRow("SELECT title FROM manga WHERE id = ?", f.manga.ID).Scan(&title))
		assert.Equal(t, "Blue Lock: Episode Nagi", title)

		newDir := filepath.Join(testutil.DownloadsRoot, "MangaDex (EN)", "Blue Lock_ Episode Nagi")
		exists, _ := afero.DirExists(f.fs, newDir)
		assert.True(t, exists, "folder should follow the new title")
		exists, _ = afero.DirExists(f.fs, f.mangaDir)
		assert.False(t, exists)
	})

	t.Run("empty title", func(t *testing.T) {
		rr := f.do(t, http.MethodPut, fmt.Sprintf("/api/manga/%d/title", f.manga.ID), map[string]string{"title": "  "})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown manga", func(t *testing.T) {
		rr := f.do(t, http.MethodPut, "/api/manga/4242/title", map[string]string{"title": "x"})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListSources(t *testing.T) {
	f := setupDownloadsFixture(t)
	testutil.SeedSource(t, f.app, 1, "Comick")

	rr := f.do(t, http.MethodGet, "/api/sources", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Comick","lang":"en"},{"id":2,"name":"MangaDex","lang":"en"}]`, rr.Body.String())
}
