package vfs

import (
	"context"
	"os"

	"github.com/spf13/afero"
)

// aferoFS adapts any afero backend to the FileSystem interface.
type aferoFS struct {
	fs afero.Fs
}

// NewMemory returns an empty in-memory filesystem rooted at "/".
func NewMemory() FileSystem {
	return FromAfero(afero.NewMemMapFs())
}

// FromAfero wraps an existing afero backend. Useful for tests that want to
// pre-seed a tree, or for hosts that persist the session elsewhere.
func FromAfero(fs afero.Fs) FileSystem {
	return &aferoFS{fs: fs}
}

func (a *aferoFS) ReadFile(_ context.Context, name string) ([]byte, error) {
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFS) WriteFile(_ context.Context, name string, data []byte) error {
	return afero.WriteFile(a.fs, name, data, 0o644)
}

func (a *aferoFS) Stat(_ context.Context, name string) (os.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *aferoFS) Mkdir(_ context.Context, name string) error {
	return a.fs.Mkdir(name, 0o755)
}

func (a *aferoFS) MkdirAll(_ context.Context, name string) error {
	return a.fs.MkdirAll(name, 0o755)
}

func (a *aferoFS) ReadDir(_ context.Context, name string) ([]os.FileInfo, error) {
	return afero.ReadDir(a.fs, name)
}

func (a *aferoFS) Rename(_ context.Context, oldname, newname string) error {
	return a.fs.Rename(oldname, newname)
}

func (a *aferoFS) Remove(_ context.Context, name string) error {
	return a.fs.Remove(name)
}

func (a *aferoFS) RemoveAll(_ context.Context, name string) error {
	return a.fs.RemoveAll(name)
}

// Afero exposes the underlying afero backend so collaborators that speak
// afero (or billy, via the adapter in internal/gitx) can share one tree
// with the shell.
func (a *aferoFS) Afero() afero.Fs { return a.fs }

// AferoBackend unwraps the afero backend from a FileSystem created by
// NewMemory or FromAfero. The second return is false for foreign
// implementations.
func AferoBackend(fs FileSystem) (afero.Fs, bool) {
	if a, ok := fs.(*aferoFS); ok {
		return a.fs, true
	}
	return nil, false
}
