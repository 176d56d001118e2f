package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/initkit/sysvgen/internal/config"
	"github.com/initkit/sysvgen/internal/log"
)

func TestInitScriptPath(t *testing.T) {
	cfg := &config.Settings{InitDir: "/test/init.d"}
	provider := &config.MockProvider{Config: cfg}
	service := NewServiceWithLogger(provider, log.Nop())

	assert.Equal(t, "/test/init.d/demo", service.InitScriptPath("demo"))
	assert.Equal(t, "/test/init.d/worker@1", service.InitScriptPath("worker@1"))
}

func TestHasScriptChanged(t *testing.T) {
	logger := log.Nop()
	tempDir := t.TempDir()

	tests := []struct {
		name            string
		existingContent string
		newContent      string
		fileExists      bool
		expected        bool
	}{
		{
			name:       "file doesn't exist",
			newContent: "new content",
			expected:   true,
		},
		{
			name:            "content unchanged",
			existingContent: "same content",
			newContent:      "same content",
			fileExists:      true,
			expected:        false,
		},
		{
			name:            "content changed",
			existingContent: "old content",
			newContent:      "new content",
			fileExists:      true,
			expected:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scriptPath := filepath.Join(tempDir, "demo")

			if tt.fileExists {
				require.NoError(t, os.WriteFile(scriptPath, []byte(tt.existingContent), 0600))
			}

			cfg := &config.Settings{InitDir: tempDir}
			service := NewServiceWithLogger(&config.MockProvider{Config: cfg}, logger)
			assert.Equal(t, tt.expected, service.HasScriptChanged(scriptPath, tt.newContent))

			if tt.fileExists {
				require.NoError(t, os.Remove(scriptPath))
			}
		})
	}
}

func TestWriteScriptSetsExecutePermissions(t *testing.T) {
	tempDir := t.TempDir()
	cfg := &config.Settings{InitDir: tempDir}
	service := NewServiceWithLogger(&config.MockProvider{Config: cfg}, log.Nop())

	path := filepath.Join(tempDir, "demo")
	require.NoError(t, service.WriteScript(path, "#!/bin/sh\n"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\n", string(content))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestWriteScriptCreatesParentDirectories(t *testing.T) {
	tempDir := t.TempDir()
	cfg := &config.Settings{InitDir: tempDir}
	service := NewServiceWithLogger(&config.MockProvider{Config: cfg}, log.Nop())

	path := filepath.Join(tempDir, "subdir", "demo")
	require.NoError(t, service.WriteScript(path, "#!/bin/sh\n"))
	assert.True(t, service.Exists(path))
}

func TestCheckInstallDir(t *testing.T) {
	tempDir := t.TempDir()
	cfg := &config.Settings{InitDir: tempDir}
	service := NewServiceWithLogger(&config.MockProvider{Config: cfg}, log.Nop())

	assert.NoError(t, service.CheckInstallDir(tempDir))

	err := service.CheckInstallDir(filepath.Join(tempDir, "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")

	file := filepath.Join(tempDir, "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))
	err = service.CheckInstallDir(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestExists(t *testing.T) {
	tempDir := t.TempDir()
	cfg := &config.Settings{InitDir: tempDir}
	service := NewServiceWithLogger(&config.MockProvider{Config: cfg}, log.Nop())

	path := filepath.Join(tempDir, "demo")
	assert.False(t, service.Exists(path))

	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
	assert.True(t, service.Exists(path))
}
