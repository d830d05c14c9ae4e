package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRootFromMainScript(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "raspai_integrated.py"), []byte("#!/usr/bin/env python3\n"), 0644))

	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	root, err := FindRootFrom(nested)
	require.NoError(t, err)
	assert.Equal(t, dir, root)
}

func TestFindRootFromTemplatePair(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.example"), []byte("GOOGLE_API_KEY=your_api_key_here\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "requirements.txt"), []byte("pyaudio\n"), 0644))

	root, err := FindRootFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, root)
}

func TestFindRootTemplateAloneIsNotEnough(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.example"), []byte("GOOGLE_API_KEY=\n"), 0644))

	_, err := FindRootFrom(dir)
	assert.Error(t, err)
}

func TestFindRootNotFound(t *testing.T) {
	_, err := FindRootFrom(t.TempDir())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "payload directory")
}
