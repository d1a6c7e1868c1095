package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/vrsandeep/mango-downloads/internal/models"
)

var ErrMangaNotFound = errors.New("manga not found")

const mangaColumns = "id, source_id, title, original_title, url"

// CreateManga inserts a new manga record into the database.
func (s *Store) CreateManga(sourceID int64, title, originalTitle, url string) (*models.Manga, error) {
	query := "INSERT INTO manga (source_id, title, original_title, url, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"
	now := time.Now()
	res, err := s.db.Exec(query, sourceID, title, originalTitle, url, now, now)
	if err != nil {
		return nil, err
	}
	id, _ := res.LastInsertId()
	return &models.Manga{ID: id, SourceID: sourceID, Title: title, OriginalTitle: originalTitle, URL: url}, nil
}

// GetMangaByID fetches a single manga by its ID.
func (s *Store) GetMangaByID(id int64) (*models.Manga, error) {
	var m models.Manga
	err := s.db.QueryRow("SELECT "+mangaColumns+" FROM manga WHERE id = ?", id).
		Scan(&m.ID, &m.SourceID, &m.Title, &m.OriginalTitle, &m.URL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMangaNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMangaBySource returns the manga of one source ordered by id.
func (s *Store) ListMangaBySource(sourceID int64) ([]*models.Manga, error) {
	return s.queryManga("SELECT "+mangaColumns+" FROM manga WHERE source_id = ? ORDER BY id", sourceID)
}

// ListAllManga returns every manga ordered by id.
func (s *Store) ListAllManga() ([]*models.Manga, error) {
	return s.queryManga("SELECT " + mangaColumns + " FROM manga ORDER BY id")
}

func (s *Store) queryManga(query string, args ...any) ([]*models.Manga, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.Manga
	for rows.Next() {
		var m models.Manga
		if err := rows.Scan(&m.ID, &m.SourceID, &m.Title, &m.OriginalTitle, &m.URL); err != nil {
			return nil, err
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// UpdateMangaTitle sets both the display and the original title of a manga
// and returns the manga as it was before the update, so callers can move its
// download directory.
func (s *Store) UpdateMangaTitle(id int64, title string) (*models.Manga, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var old models.Manga
	err = tx.QueryRow("SELECT "+mangaColumns+" FROM manga WHERE id = ?", id).
		Scan(&old.ID, &old.SourceID, &old.Title, &old.OriginalTitle, &old.URL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMangaNotFound
	}
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec("UPDATE manga SET title = ?, original_title = ?, updated_at = ? WHERE id = ?", title, title, time.Now(), id)
	if err != nil {
		return nil, err
	}
	return &old, tx.Commit()
}
