package downloads

import (
	"strings"

	"github.com/vrsandeep/mango-downloads/internal/models"
	"github.com/vrsandeep/mango-downloads/internal/util"
)

const (
	// TmpDirSuffix marks a chapter directory whose download has not finished.
	TmpDirSuffix = "_tmp"

	// Source directories are always suffixed in English so that on-disk names
	// do not depend on the locale of whoever created them.
	sourceDirSuffix = " (EN)"

	chapterIDSeparator = " - "
	scanlatorSeparator = "_"
)

// SourceDirName returns the download directory name for a source.
func (p *Provider) SourceDirName(source *models.Source) string {
	return util.BuildValidFilename(source.String() + sourceDirSuffix)
}

// MangaDirName returns the download directory name for a manga.
func (p *Provider) MangaDirName(manga *models.Manga) string {
	return util.BuildValidFilename(manga.DirTitle())
}

// ChapterDirName returns the current directory name for a chapter.
func (p *Provider) ChapterDirName(chapter *models.Chapter) string {
	switch chapter.Kind {
	case models.ChapterKindMerged:
		return p.MergedChapterDirName(chapter)
	default:
		return util.BuildValidFilenameWithSuffix(chapter.Name, chapterIDSeparator+ChapterID(chapter))
	}
}

// MergedChapterDirName returns the "<scanlator>_<name>" directory name used by
// merged source chapters, and by older builds for every chapter.
func (p *Provider) MergedChapterDirName(chapter *models.Chapter) string {
	if chapter.Scanlator != nil {
		return util.BuildValidFilename(*chapter.Scanlator + scanlatorSeparator + chapter.Name)
	}
	return util.BuildValidFilename(chapter.Name)
}

// ValidChapterDirNames returns every directory name a chapter may have been
// downloaded under, most recent scheme first.
func (p *Provider) ValidChapterDirNames(chapter *models.Chapter) []string {
	return []string{
		p.ChapterDirName(chapter),
		p.MergedChapterDirName(chapter),
		// Names used before directories carried the chapter id.
		util.BuildValidFilename(chapter.Name),
	}
}

// ChapterID returns the trimmed external id of a chapter, falling back to
// the id carried by its URL when the external one is blank.
func ChapterID(chapter *models.Chapter) string {
	if id := strings.TrimSpace(chapter.ExternalID); id != "" {
		return id
	}
	return ChapterIDFromURL(chapter.URL)
}

// ChapterIDFromURL extracts the last path segment of a chapter URL, e.g.
// "/chapter/12345/" yields "12345".
func ChapterIDFromURL(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	url = strings.TrimRight(url, "/")
	return url[strings.LastIndex(url, "/")+1:]
}
