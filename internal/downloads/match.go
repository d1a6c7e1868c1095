package downloads

import (
	"strings"
	"unicode"

	"github.com/vrsandeep/mango-downloads/internal/models"
	"golang.org/x/text/unicode/norm"
)

// chapterIndex holds the lookup sets used to decide whether a directory
// entry belongs to a set of chapters.
type chapterIndex struct {
	ids         map[string]struct{}
	names       map[string]struct{}
	mergedNames map[string]struct{}
}

func (p *Provider) indexChapters(chapters []*models.Chapter) chapterIndex {
	idx := chapterIndex{
		ids:         make(map[string]struct{}, len(chapters)),
		names:       make(map[string]struct{}, len(chapters)),
		mergedNames: make(map[string]struct{}, len(chapters)),
	}
	for _, c := range chapters {
		idx.ids[norm.NFC.String(strings.TrimSpace(c.ExternalID))] = struct{}{}
		idx.names[norm.NFC.String(c.Name)] = struct{}{}
		idx.mergedNames[norm.NFC.String(p.MergedChapterDirName(c))] = struct{}{}
	}
	return idx
}

// matches reports whether an entry name belongs to one of the indexed
// chapters. Names ending in " - <digits>" are matched by id only; anything
// else is matched by merged-scheme name, by chapter name, or by the chapter
// name that follows a "<scanlator>_" prefix.
func (idx chapterIndex) matches(name string) bool {
	name = norm.NFC.String(name)

	if id := substringAfterLast(name, chapterIDSeparator); id != "" && isDigitsOnly(id) {
		_, ok := idx.ids[id]
		return ok
	}

	if _, ok := idx.mergedNames[name]; ok {
		return true
	}
	if _, ok := idx.names[name]; ok {
		return true
	}
	_, ok := idx.names[substringAfter(name, scanlatorSeparator)]
	return ok
}

// FindChapterDirs returns the entries of the manga directory that belong to
// one of the given chapters. Temporary directories are never included.
func (p *Provider) FindChapterDirs(chapters []*models.Chapter, manga *models.Manga, source *models.Source) []Dir {
	mangaDir, ok := p.FindMangaDir(manga, source)
	if !ok {
		return nil
	}

	idx := p.indexChapters(chapters)
	var dirs []Dir
	for _, entry := range mangaDir.ListFiles() {
		name := entry.Name()
		if !strings.HasSuffix(name, TmpDirSuffix) && idx.matches(name) {
			dirs = append(dirs, entry)
		}
	}
	return dirs
}

// FindUnmatchedChapterDirs returns the entries of the manga directory that do
// not belong to any of the given chapters. Temporary directories are always
// included so that partial downloads can be cleaned up.
func (p *Provider) FindUnmatchedChapterDirs(chapters []*models.Chapter, manga *models.Manga, source *models.Source) []Dir {
	mangaDir, ok := p.FindMangaDir(manga, source)
	if !ok {
		return nil
	}

	idx := p.indexChapters(chapters)
	var dirs []Dir
	for _, entry := range mangaDir.ListFiles() {
		name := entry.Name()
		if strings.HasSuffix(name, TmpDirSuffix) || !idx.matches(name) {
			dirs = append(dirs, entry)
		}
	}
	return dirs
}

// FindTempChapterDirs returns the temporary directories of the given chapters
// that are present in the manga directory.
func (p *Provider) FindTempChapterDirs(chapters []*models.Chapter, manga *models.Manga, source *models.Source) []Dir {
	mangaDir, ok := p.FindMangaDir(manga, source)
	if !ok {
		return nil
	}

	var dirs []Dir
	for _, c := range chapters {
		if dir, ok := mangaDir.FindFile(p.ChapterDirName(c) + TmpDirSuffix); ok {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// substringAfterLast returns what follows the last sep in s, or "" when s
// does not contain sep.
func substringAfterLast(s, sep string) string {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return ""
	}
	return s[i+len(sep):]
}

// substringAfter returns what follows the first sep in s, or s itself when s
// does not contain sep.
func substringAfter(s, sep string) string {
	_, after, found := strings.Cut(s, sep)
	if !found {
		return s
	}
	return after
}

func isDigitsOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
