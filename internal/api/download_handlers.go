package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vrsandeep/mango-downloads/internal/downloads"
	"github.com/vrsandeep/mango-downloads/internal/models"
	"github.com/vrsandeep/mango-downloads/internal/store"
	"github.com/vrsandeep/mango-downloads/internal/util"
)

func (s *Server) handleListSources(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, s.app.Sources().GetAll())
}

// mangaFromRequest loads the manga named by the {mangaID} URL parameter and
// its source. It writes the error response itself and returns false on failure.
func (s *Server) mangaFromRequest(w http.ResponseWriter, r *http.Request) (*models.Manga, *models.Source, bool) {
	mangaID, err := strconv.ParseInt(chi.URLParam(r, "mangaID"), 10, 64)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid manga ID")
		return nil, nil, false
	}
	manga, err := s.store.GetMangaByID(mangaID)
	if errors.Is(err, store.ErrMangaNotFound) {
		RespondWithError(w, http.StatusNotFound, "Manga not found")
		return nil, nil, false
	}
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, err.Error())
		return nil, nil, false
	}
	source, ok := s.app.Sources().Get(manga.SourceID)
	if !ok {
		RespondWithError(w, http.StatusNotFound, "Source not found")
		return nil, nil, false
	}
	return manga, source, true
}

func dirNames(dirs []downloads.Dir) []string {
	names := make([]string, 0, len(dirs))
	for _, d := range dirs {
		names = append(names, d.Name())
	}
	util.SortNatural(names)
	return names
}

func (s *Server) handleGetMangaDownloads(w http.ResponseWriter, r *http.Request) {
	manga, source, ok := s.mangaFromRequest(w, r)
	if !ok {
		return
	}
	chapters, err := s.store.GetChaptersByMangaID(manga.ID)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	p := s.app.Downloads()
	result := models.DownloadDirs{
		MangaID:   manga.ID,
		Matched:   dirNames(p.FindChapterDirs(chapters, manga, source)),
		Unmatched: dirNames(p.FindUnmatchedChapterDirs(chapters, manga, source)),
		Temporary: dirNames(p.FindTempChapterDirs(chapters, manga, source)),
	}
	if dir, ok := p.FindMangaDir(manga, source); ok {
		result.Path = dir.Path()
	}
	RespondWithJSON(w, http.StatusOK, result)
}

func (s *Server) handleEnsureMangaDir(w http.ResponseWriter, r *http.Request) {
	manga, source, ok := s.mangaFromRequest(w, r)
	if !ok {
		return
	}
	dir, err := s.app.Downloads().MangaDir(manga, source)
	if errors.Is(err, downloads.ErrInvalidDownloadLocation) {
		RespondWithError(w, http.StatusInternalServerError, "Invalid download location")
		return
	}
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"path": dir.Path(), "name": dir.Name()})
}

func (s *Server) handleGetChapterDownloadDir(w http.ResponseWriter, r *http.Request) {
	chapterID, err := strconv.ParseInt(chi.URLParam(r, "chapterID"), 10, 64)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid chapter ID")
		return
	}
	chapter, err := s.store.GetChapterByID(chapterID)
	if errors.Is(err, store.ErrChapterNotFound) {
		RespondWithError(w, http.StatusNotFound, "Chapter not found")
		return
	}
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	manga, err := s.store.GetMangaByID(chapter.MangaID)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	source, ok := s.app.Sources().Get(manga.SourceID)
	if !ok {
		RespondWithError(w, http.StatusNotFound, "Source not found")
		return
	}

	dir, ok := s.app.Downloads().FindChapterDir(chapter, manga, source)
	if !ok {
		RespondWithError(w, http.StatusNotFound, "Chapter not downloaded")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]any{
		"chapter_id": chapter.ID,
		"path":       dir.Path(),
		"name":       dir.Name(),
	})
}

func (s *Server) handleUpdateMangaTitle(w http.ResponseWriter, r *http.Request) {
	mangaID, err := strconv.ParseInt(chi.URLParam(r, "mangaID"), 10, 64)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid manga ID")
		return
	}
	var payload struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	title := strings.TrimSpace(payload.Title)
	if title == "" {
		RespondWithError(w, http.StatusBadRequest, "Title cannot be empty")
		return
	}

	old, err := s.store.UpdateMangaTitle(mangaID, title)
	if errors.Is(err, store.ErrMangaNotFound) {
		RespondWithError(w, http.StatusNotFound, "Manga not found")
		return
	}
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	updated := *old
	updated.Title = title
	updated.OriginalTitle = title
	// The title is already saved; a failed rename only leaves the old folder.
	s.app.Downloads().RenameMangaDir(old.DirTitle(), updated.DirTitle(), old.SourceID)
	log.Printf("Manga %d renamed from '%s' to '%s'", mangaID, old.DirTitle(), updated.DirTitle())

	RespondWithJSON(w, http.StatusOK, updated)
}
