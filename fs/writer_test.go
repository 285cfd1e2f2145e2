package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/nametrail/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "title from url path",
			title: "_bio_john-smith",
			want:  "_bio_john-smith.txt",
		},
		{
			name:  "empty title becomes index",
			title: "",
			want:  "index.txt",
		},
		{
			name:  "whitespace replaced",
			title: "_a b\tc",
			want:  "_a_b_c.txt",
		},
		{
			name:  "unsafe characters replaced",
			title: `_q?x=1:"y"`,
			want:  "_q_x_1__y_.txt",
		},
		{
			name:  "keeps unicode letters",
			title: "_wiki_José_Martí",
			want:  "_wiki_José_Martí.txt",
		},
		{
			name:  "keeps dots",
			title: "_about.html",
			want:  "_about.html.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, fs.FileName(tt.title))
		})
	}
}

func TestTextWriter_Save(t *testing.T) {
	t.Parallel()

	t.Run("writes text to title file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewTextWriter(dir)

		err := w.Save(context.Background(), "_bio_john-smith", "# John Smith\nBorn in Ohio.")

		require.NoError(t, err)
		content, err := os.ReadFile(filepath.Join(dir, "_bio_john-smith.txt"))
		require.NoError(t, err)
		assert.Equal(t, "# John Smith\nBorn in Ohio.", string(content))
	})

	t.Run("creates missing output directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "output")
		w := fs.NewTextWriter(dir)

		err := w.Save(context.Background(), "_a", "text")

		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "_a.txt"))
	})

	t.Run("overwrites existing title", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewTextWriter(dir)

		require.NoError(t, w.Save(context.Background(), "_a", "first"))
		require.NoError(t, w.Save(context.Background(), "_a", "second"))

		content, err := os.ReadFile(filepath.Join(dir, "_a.txt"))
		require.NoError(t, err)
		assert.Equal(t, "second", string(content))
	})

	t.Run("leaves no temporary files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewTextWriter(dir)

		require.NoError(t, w.Save(context.Background(), "_a", "text"))
		require.NoError(t, w.Save(context.Background(), "", "root"))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		assert.ElementsMatch(t, []string{"_a.txt", "index.txt"}, names)
	})

	t.Run("returns error when context cancelled", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewTextWriter(dir)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := w.Save(ctx, "_a", "text")

		require.ErrorIs(t, err, context.Canceled)
		assert.NoFileExists(t, filepath.Join(dir, "_a.txt"))
	})

	t.Run("returns error when directory cannot be created", func(t *testing.T) {
		t.Parallel()

		parent := t.TempDir()
		blocker := filepath.Join(parent, "file")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
		w := fs.NewTextWriter(filepath.Join(blocker, "out"))

		err := w.Save(context.Background(), "_a", "text")

		require.Error(t, err)
	})
}
