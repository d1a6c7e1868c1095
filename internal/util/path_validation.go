package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const writeCheckFile = ".mango_temp_check"

// ValidateDownloadsPath checks that path can serve as a downloads root on fs.
// A missing path is accepted when it can be created; nothing is left behind
// by the check.
func ValidateDownloadsPath(fs afero.Fs, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("downloads path cannot be empty")
	}
	if strings.Contains(path, "..") {
		return fmt.Errorf("downloads path contains invalid directory traversal")
	}

	cleanPath := filepath.Clean(path)
	info, err := fs.Stat(cleanPath)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("path exists but is not a directory: %s", cleanPath)
		}
		if err := checkWritePermission(fs, cleanPath); err != nil {
			return fmt.Errorf("no write permission for existing directory: %w", err)
		}
		return nil
	}
	if os.IsNotExist(err) {
		return checkCanCreatePath(fs, cleanPath)
	}
	return fmt.Errorf("cannot access path: %w", err)
}

func checkWritePermission(fs afero.Fs, dirPath string) error {
	probe := filepath.Join(dirPath, writeCheckFile)
	file, err := fs.Create(probe)
	if err != nil {
		return err
	}
	file.Close()
	return fs.Remove(probe)
}

// checkCanCreatePath creates the missing part of fullPath and removes it again.
func checkCanCreatePath(fs afero.Fs, fullPath string) error {
	// Find the deepest ancestor that already exists.
	existing := fullPath
	for {
		parent := filepath.Dir(existing)
		if parent == existing {
			break
		}
		existing = parent
		info, err := fs.Stat(existing)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("parent path exists but is not a directory: %s", existing)
			}
			break
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access parent directory: %w", err)
		}
	}

	if err := fs.MkdirAll(fullPath, 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}

	// Remove only what the check created.
	created := fullPath
	if rel, err := filepath.Rel(existing, fullPath); err == nil && rel != "." {
		created = filepath.Join(existing, strings.Split(rel, string(filepath.Separator))[0])
	}
	return fs.RemoveAll(created)
}
