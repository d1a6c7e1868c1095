// This file resolves the directories downloads are stored in. The layout is
// <downloads root>/<source name> (EN)/<manga>/<chapter>.

package downloads

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/spf13/afero"
	"github.com/vrsandeep/mango-downloads/internal/models"
	"github.com/vrsandeep/mango-downloads/internal/util"
)

var (
	// ErrInvalidDownloadLocation is returned when the downloads root cannot be
	// reached or a directory below it cannot be created.
	ErrInvalidDownloadLocation = errors.New("invalid download location")

	errSourceNotFound = errors.New("source not found")
)

// SourceLookup resolves a source by its id.
type SourceLookup interface {
	Get(id int64) (*models.Source, bool)
}

// Provider provides the directories where downloads are saved.
type Provider struct {
	root    atomic.Pointer[Dir]
	sources SourceLookup

	// mu serialises directory creation. Concurrent downloads of the same
	// manga would otherwise race on "create if absent".
	mu sync.Mutex
}

// NewProvider creates a Provider rooted at rootPath on fs.
func NewProvider(fs afero.Fs, rootPath string, sources SourceLookup) *Provider {
	p := &Provider{sources: sources}
	p.SetRoot(fs, rootPath)
	return p
}

// SetRoot swaps the downloads root. Calls that already hold a handle into
// the previous root finish against it.
func (p *Provider) SetRoot(fs afero.Fs, path string) {
	root := NewDir(fs, path)
	p.root.Store(&root)
	log.Printf("Downloads root set to %s", root.Path())
}

// Root returns the current downloads root.
func (p *Provider) Root() Dir {
	if root := p.root.Load(); root != nil {
		return *root
	}
	return Dir{}
}

// MangaDir returns the download directory for a manga, creating it and its
// source directory when needed. The returned error wraps
// ErrInvalidDownloadLocation.
func (p *Provider) MangaDir(manga *models.Manga, source *models.Source) (Dir, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	root := p.Root()
	if root.IsZero() {
		return Dir{}, fmt.Errorf("%w: no downloads directory configured", ErrInvalidDownloadLocation)
	}

	dir, err := p.createMangaDir(root, manga, source)
	if err != nil {
		log.Printf("Could not create download directory for '%s': %v", manga.DirTitle(), err)
		return Dir{}, fmt.Errorf("%w: %v", ErrInvalidDownloadLocation, err)
	}
	return dir, nil
}

func (p *Provider) createMangaDir(root Dir, manga *models.Manga, source *models.Source) (Dir, error) {
	if err := root.Fs().MkdirAll(root.Path(), 0o755); err != nil {
		return Dir{}, err
	}
	if !root.IsDir() {
		return Dir{}, fmt.Errorf("%s is not a directory", root.Path())
	}
	sourceDir, err := root.CreateDirectory(p.SourceDirName(source))
	if err != nil {
		return Dir{}, err
	}
	return sourceDir.CreateDirectory(p.MangaDirName(manga))
}

// FindSourceDir returns the download directory for a source if it exists.
func (p *Provider) FindSourceDir(source *models.Source) (Dir, bool) {
	return p.Root().FindFile(p.SourceDirName(source))
}

// FindMangaDir returns the download directory for a manga if it exists.
func (p *Provider) FindMangaDir(manga *models.Manga, source *models.Source) (Dir, bool) {
	sourceDir, ok := p.FindSourceDir(source)
	if !ok {
		return Dir{}, false
	}
	return sourceDir.FindFile(p.MangaDirName(manga))
}

// FindChapterDir returns the download directory for a chapter if it exists.
// Every known naming scheme is tried in order; as a last resort any entry
// ending with the chapter's external id is accepted, which covers folders
// named by incompatible builds.
func (p *Provider) FindChapterDir(chapter *models.Chapter, manga *models.Manga, source *models.Source) (Dir, bool) {
	mangaDir, ok := p.FindMangaDir(manga, source)
	if !ok {
		return Dir{}, false
	}

	if chapter.IsMerged() {
		return mangaDir.FindFile(p.MergedChapterDirName(chapter))
	}

	for _, name := range p.ValidChapterDirNames(chapter) {
		if dir, ok := mangaDir.FindFile(name); ok {
			return dir, true
		}
	}

	// A blank id would match every entry.
	id := strings.TrimSpace(chapter.ExternalID)
	if id == "" {
		return Dir{}, false
	}
	for _, entry := range mangaDir.ListFiles() {
		if strings.HasSuffix(entry.Name(), id) {
			return entry, true
		}
	}
	return Dir{}, false
}

// RenameMangaDir renames the download directory of a manga after a title
// change. It is best effort: an unknown source or a missing directory is
// ignored.
func (p *Provider) RenameMangaDir(from, to string, sourceID int64) {
	source, err := p.resolveSource(sourceID)
	if err != nil {
		return
	}
	sourceDir, ok := p.FindSourceDir(source)
	if !ok {
		return
	}
	mangaDir, ok := sourceDir.FindFile(util.BuildValidFilename(from))
	if !ok {
		return
	}

	newName := util.BuildValidFilename(to)
	if newName == mangaDir.Name() {
		return
	}
	if _, err := mangaDir.RenameTo(newName); err != nil {
		log.Printf("Could not rename download directory '%s' to '%s': %v", mangaDir.Name(), newName, err)
		return
	}
	log.Printf("Renamed download directory '%s' to '%s'", mangaDir.Name(), newName)
}

func (p *Provider) resolveSource(id int64) (*models.Source, error) {
	if p.sources == nil {
		return nil, errSourceNotFound
	}
	source, ok := p.sources.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", errSourceNotFound, id)
	}
	return source, nil
}
