package models

// DownloadDirs is the classification of a manga download folder.
type DownloadDirs struct {
	MangaID   int64    `json:"manga_id"`
	Path      string   `json:"path,omitempty"` // Empty when the folder does not exist
	Matched   []string `json:"matched"`
	Unmatched []string `json:"unmatched"`
	Temporary []string `json:"temporary"`
}
