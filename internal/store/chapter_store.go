package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/vrsandeep/mango-downloads/internal/models"
)

var ErrChapterNotFound = errors.New("chapter not found")

const chapterColumns = "id, manga_id, external_id, url, name, scanlator, merged"

// CreateChapter inserts a new chapter record into the database.
func (s *Store) CreateChapter(c *models.Chapter) (*models.Chapter, error) {
	query := "INSERT INTO chapters (manga_id, external_id, url, name, scanlator, merged, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)"
	var scanlator sql.NullString
	if c.Scanlator != nil {
		scanlator = sql.NullString{String: *c.Scanlator, Valid: true}
	}
	res, err := s.db.Exec(query, c.MangaID, c.ExternalID, c.URL, c.Name, scanlator, c.IsMerged(), time.Now())
	if err != nil {
		return nil, err
	}
	id, _ := res.LastInsertId()

	created := *c
	created.ID = id
	return &created, nil
}

// GetChapterByID fetches a single chapter by its ID.
func (s *Store) GetChapterByID(id int64) (*models.Chapter, error) {
	row := s.db.QueryRow("SELECT "+chapterColumns+" FROM chapters WHERE id = ?", id)
	c, err := scanChapter(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrChapterNotFound
	}
	return c, err
}

// GetChaptersByMangaID returns the chapters of a manga ordered by id.
func (s *Store) GetChaptersByMangaID(mangaID int64) ([]*models.Chapter, error) {
	rows, err := s.db.Query("SELECT "+chapterColumns+" FROM chapters WHERE manga_id = ? ORDER BY id", mangaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chapters []*models.Chapter
	for rows.Next() {
		c, err := scanChapter(rows)
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, c)
	}
	return chapters, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChapter(row rowScanner) (*models.Chapter, error) {
	var c models.Chapter
	var scanlator sql.NullString
	var merged bool
	if err := row.Scan(&c.ID, &c.MangaID, &c.ExternalID, &c.URL, &c.Name, &scanlator, &merged); err != nil {
		return nil, err
	}
	if scanlator.Valid {
		c.Scanlator = &scanlator.String
	}
	if merged {
		c.Kind = models.ChapterKindMerged
	}
	return &c, nil
}
