package downloads

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Dir is a handle to an entry of the downloads tree. It carries the
// filesystem it was resolved against, so a handle obtained before the
// downloads root changes keeps pointing at the old tree.
//
// Entries returned by ListFiles may be plain files; callers that care
// should check with IsDir.
type Dir struct {
	fs   afero.Fs
	path string
}

// NewDir returns a handle for path on fs. The path is not checked.
func NewDir(fs afero.Fs, path string) Dir {
	return Dir{fs: fs, path: filepath.Clean(path)}
}

// IsZero reports whether d is the zero handle.
func (d Dir) IsZero() bool { return d.fs == nil }

// Fs returns the filesystem the handle belongs to.
func (d Dir) Fs() afero.Fs { return d.fs }

// Path returns the full path of the entry.
func (d Dir) Path() string { return d.path }

// Name returns the last element of the path.
func (d Dir) Name() string { return filepath.Base(d.path) }

// Join returns a handle for the child called name. The child may not exist.
func (d Dir) Join(name string) Dir {
	return Dir{fs: d.fs, path: filepath.Join(d.path, name)}
}

// Stat returns the file info of the entry.
func (d Dir) Stat() (os.FileInfo, error) {
	return d.fs.Stat(d.path)
}

// Exists reports whether the entry is present.
func (d Dir) Exists() bool {
	if d.IsZero() {
		return false
	}
	_, err := d.fs.Stat(d.path)
	return err == nil
}

// IsDir reports whether the entry exists and is a directory.
func (d Dir) IsDir() bool {
	if d.IsZero() {
		return false
	}
	ok, err := afero.IsDir(d.fs, d.path)
	return err == nil && ok
}

// FindFile returns the child called name if it exists.
func (d Dir) FindFile(name string) (Dir, bool) {
	if d.IsZero() || name == "" {
		return Dir{}, false
	}
	child := d.Join(name)
	if !child.Exists() {
		return Dir{}, false
	}
	return child, true
}

// ListFiles returns every entry directly inside d, in the order the
// filesystem reports them (sorted by name for afero). A missing or
// unreadable directory yields no entries.
func (d Dir) ListFiles() []Dir {
	if d.IsZero() {
		return nil
	}
	infos, err := afero.ReadDir(d.fs, d.path)
	if err != nil {
		return nil
	}
	entries := make([]Dir, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, d.Join(info.Name()))
	}
	return entries
}

// CreateDirectory returns the child directory called name, creating it when
// it does not exist yet.
func (d Dir) CreateDirectory(name string) (Dir, error) {
	child := d.Join(name)
	info, err := d.fs.Stat(child.path)
	switch {
	case err == nil && info.IsDir():
		return child, nil
	case err == nil:
		return Dir{}, fmt.Errorf("%s exists and is not a directory", child.path)
	case !os.IsNotExist(err):
		return Dir{}, err
	}

	if err := d.fs.Mkdir(child.path, 0o755); err != nil && !os.IsExist(err) {
		return Dir{}, err
	}
	return child, nil
}

// RenameTo renames the entry inside its parent directory and returns the
// handle for the new name.
func (d Dir) RenameTo(name string) (Dir, error) {
	target := Dir{fs: d.fs, path: filepath.Join(filepath.Dir(d.path), name)}
	if err := d.fs.Rename(d.path, target.path); err != nil {
		return Dir{}, err
	}
	return target, nil
}

// Remove deletes the entry and everything below it.
func (d Dir) Remove() error {
	return d.fs.RemoveAll(d.path)
}
