package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/initkit/sysvgen/internal/unitfile"
)

func TestServiceNameOf(t *testing.T) {
	tests := []struct {
		baseName string
		expected string
	}{
		{"demo.service", "demo"},
		{"worker@1.service", "worker@1"},
		{"demo", "demo"},
		{"demo.timer", "demo.timer"},
	}

	for _, tt := range tests {
		t.Run(tt.baseName, func(t *testing.T) {
			assert.Equal(t, tt.expected, serviceNameOf(tt.baseName))
		})
	}
}

func TestUnitKind(t *testing.T) {
	assert.Equal(t, "service", unitKind("demo.service"))
	assert.Equal(t, "template", unitKind("worker@.service"))
	assert.Equal(t, "template", unitKind("worker@1.service"))
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.service")
	unit := "[Unit]\nDescription=Demo\n\n[Service]\nExecStart=/bin/demo\n"
	require.NoError(t, os.WriteFile(path, []byte(unit), 0600))

	content, serviceName, err := convertFile(path)
	require.NoError(t, err)

	assert.Equal(t, "demo", serviceName)
	assert.Contains(t, content, "#!/bin/sh")
	assert.Contains(t, content, "# Provides:          demo")
}

func TestConvertFileMissingInput(t *testing.T) {
	_, _, err := convertFile(filepath.Join(t.TempDir(), "absent.service"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading service file")
}

func TestConvertFileParseErrorPassesThrough(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.service")
	require.NoError(t, os.WriteFile(path, []byte("[Unit]\nDescription=no service section\n"), 0600))

	_, _, err := convertFile(path)
	require.Error(t, err)
	assert.True(t, unitfile.IsParseError(err))
}
