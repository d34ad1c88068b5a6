package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserViewer_View(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var opened string
	v := &BrowserViewer{Dir: dir, Open: func(path string) error {
		opened = path
		return nil
	}}

	require.NoError(t, v.View(&pageFigure{}))
	require.NotEmpty(t, opened)
	assert.Equal(t, dir, filepath.Dir(opened))
	assert.Equal(t, ".html", filepath.Ext(opened))

	data, err := os.ReadFile(opened)
	require.NoError(t, err)
	assert.Contains(t, string(data), "scattermap")
}

func TestBrowserViewer_OpenError(t *testing.T) {
	t.Parallel()

	v := &BrowserViewer{Dir: t.TempDir(), Open: func(string) error {
		return errors.New("no display")
	}}
	err := v.View(&pageFigure{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no display")
}

func TestBrowserViewer_WriteError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	called := false
	v := &BrowserViewer{Dir: dir, Open: func(string) error {
		called = true
		return nil
	}}

	err := v.View(&pageFigure{err: errors.New("template")})
	assert.ErrorIs(t, err, ErrIOWrite)
	assert.False(t, called)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
