// This file defines the core data structures (models) for the download layout.
// Only the fields needed to derive on-disk names are carried here.

package models

// Manga represents a single series as known to a source.
type Manga struct {
	ID       int64  `json:"id"`
	SourceID int64  `json:"source_id"`
	Title    string `json:"title"`
	// OriginalTitle is the untranslated title. Directory names are derived
	// from it so that localised titles never move a download folder.
	OriginalTitle string `json:"original_title"`
	URL           string `json:"url"`
}

// DirTitle returns the title used for the manga's download directory.
func (m *Manga) DirTitle() string {
	if m.OriginalTitle != "" {
		return m.OriginalTitle
	}
	return m.Title
}

// ChapterKind tells which naming scheme a chapter's directory follows.
type ChapterKind int

const (
	// ChapterKindSource is a chapter served by a single upstream source with a
	// stable external id.
	ChapterKindSource ChapterKind = iota
	// ChapterKindMerged is a chapter from the merged (aggregated) source
	// variant, which has no stable external id.
	ChapterKindMerged
)

func (k ChapterKind) String() string {
	switch k {
	case ChapterKindMerged:
		return "merged"
	default:
		return "source"
	}
}

// Chapter represents a single chapter of a manga.
type Chapter struct {
	ID         int64  `json:"id"`
	MangaID    int64  `json:"manga_id"`
	ExternalID string `json:"external_id"` // Id assigned by the source site, may be blank
	URL        string `json:"url"`         // Source-relative locator, e.g. "/chapter/12345"
	Name       string `json:"name"`
	// Scanlator is the translation group, nil when unattributed.
	Scanlator *string     `json:"scanlator,omitempty"`
	Kind      ChapterKind `json:"kind"`
}

// IsMerged reports whether the chapter comes from the merged source variant.
func (c *Chapter) IsMerged() bool {
	return c.Kind == ChapterKindMerged
}
