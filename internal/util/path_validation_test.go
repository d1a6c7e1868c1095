package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDownloadsPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/data/downloads", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/data/file", []byte("x"), 0o644))

	tests := []struct {
		name        string
		path        string
		expectError bool
	}{
		{"existing directory", "/data/downloads", false},
		{"missing directory can be created", "/data/new/nested", false},
		{"empty path", "", true},
		{"blank path", "   ", true},
		{"directory traversal", "/data/../etc", true},
		{"path is a file", "/data/file", true},
		{"parent is a file", "/data/file/sub", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDownloadsPath(fs, tt.path)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDownloadsPathLeavesNoTrace(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/data/downloads", 0o755))

	require.NoError(t, ValidateDownloadsPath(fs, "/data/downloads"))
	exists, _ := afero.Exists(fs, filepath.Join("/data/downloads", writeCheckFile))
	assert.False(t, exists, "write probe should be removed")

	require.NoError(t, ValidateDownloadsPath(fs, "/data/new/nested/dir"))
	exists, _ = afero.Exists(fs, "/data/new")
	assert.False(t, exists, "directories created by the check should be removed")
	exists, _ = afero.DirExists(fs, "/data")
	assert.True(t, exists)
}

func TestValidateDownloadsPathReadOnly(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll("/data/downloads", 0o755))
	fs := afero.NewReadOnlyFs(base)

	assert.Error(t, ValidateDownloadsPath(fs, "/data/downloads"))
	assert.Error(t, ValidateDownloadsPath(fs, "/data/missing"))
}

func TestValidateDownloadsPathOnDisk(t *testing.T) {
	dir := t.TempDir()
	fs := afero.NewOsFs()

	assert.NoError(t, ValidateDownloadsPath(fs, dir))
	assert.NoError(t, ValidateDownloadsPath(fs, filepath.Join(dir, "library", "manga")))

	_, err := os.Stat(filepath.Join(dir, "library"))
	assert.True(t, os.IsNotExist(err))
}
