package store

import (
	"database/sql"
	"errors"

	"github.com/vrsandeep/mango-downloads/internal/models"
)

var ErrSourceNotFound = errors.New("source not found")

// CreateSource inserts a source, or updates its name and language when a
// source with the same id already exists.
func (s *Store) CreateSource(id int64, name, lang string) (*models.Source, error) {
	query := `
		INSERT INTO sources (id, name, lang) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, lang = excluded.lang
	`
	if _, err := s.db.Exec(query, id, name, lang); err != nil {
		return nil, err
	}
	return &models.Source{ID: id, Name: name, Lang: lang}, nil
}

// GetSourceByID fetches a single source by its ID.
func (s *Store) GetSourceByID(id int64) (*models.Source, error) {
	var src models.Source
	err := s.db.QueryRow("SELECT id, name, lang FROM sources WHERE id = ?", id).Scan(&src.ID, &src.Name, &src.Lang)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSourceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &src, nil
}

// ListSources returns every source ordered by id.
func (s *Store) ListSources() ([]*models.Source, error) {
	rows, err := s.db.Query("SELECT id, name, lang FROM sources ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.Source
	for rows.Next() {
		var src models.Source
		if err := rows.Scan(&src.ID, &src.Name, &src.Lang); err != nil {
			return nil, err
		}
		list = append(list, &src)
	}
	return list, rows.Err()
}
