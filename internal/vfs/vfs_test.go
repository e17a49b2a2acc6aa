package vfs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		cwd  string
		name string
		want string
	}{
		{"/", "file.txt", "/file.txt"},
		{"/home/user", "file.txt", "/home/user/file.txt"},
		{"/home/user", "/etc/conf", "/etc/conf"},
		{"/home/user", "..", "/home"},
		{"/home/user", "../other", "/home/other"},
		{"/home/user", ".", "/home/user"},
		{"/home/user", "", "/home/user"},
		{"/home/user", "a/./b", "/home/user/a/b"},
		{"/", "..", "/"},
		{"/a", "../../..", "/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Resolve(tt.cwd, tt.name), "Resolve(%q, %q)", tt.cwd, tt.name)
	}
}

func TestMemoryFileSystem(t *testing.T) {
	ctx := context.Background()

	t.Run("write then read", func(t *testing.T) {
		fs := NewMemory()
		assert.NoError(t, fs.WriteFile(ctx, "/f.txt", []byte("hello")))

		data, err := fs.ReadFile(ctx, "/f.txt")
		assert.NoError(t, err)
		assert.Equal(t, "hello", string(data))
	})

	t.Run("stat distinguishes files and directories", func(t *testing.T) {
		fs := NewMemory()
		assert.NoError(t, fs.MkdirAll(ctx, "/d/e"))
		assert.NoError(t, fs.WriteFile(ctx, "/d/f", nil))

		info, err := fs.Stat(ctx, "/d")
		assert.NoError(t, err)
		assert.True(t, info.IsDir())

		info, err = fs.Stat(ctx, "/d/f")
		assert.NoError(t, err)
		assert.False(t, info.IsDir())
	})

	t.Run("readdir lists entries", func(t *testing.T) {
		fs := NewMemory()
		assert.NoError(t, fs.MkdirAll(ctx, "/d"))
		assert.NoError(t, fs.WriteFile(ctx, "/d/a", nil))
		assert.NoError(t, fs.WriteFile(ctx, "/d/b", nil))

		entries, err := fs.ReadDir(ctx, "/d")
		assert.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("rename moves content", func(t *testing.T) {
		fs := NewMemory()
		assert.NoError(t, fs.WriteFile(ctx, "/old", []byte("x")))
		assert.NoError(t, fs.Rename(ctx, "/old", "/new"))

		_, err := fs.ReadFile(ctx, "/old")
		assert.Error(t, err)
		data, err := fs.ReadFile(ctx, "/new")
		assert.NoError(t, err)
		assert.Equal(t, "x", string(data))
	})

	t.Run("removeall removes trees", func(t *testing.T) {
		fs := NewMemory()
		assert.NoError(t, fs.MkdirAll(ctx, "/d/e"))
		assert.NoError(t, fs.WriteFile(ctx, "/d/e/f", nil))
		assert.NoError(t, fs.RemoveAll(ctx, "/d"))

		_, err := fs.Stat(ctx, "/d")
		assert.Error(t, err)
	})
}
