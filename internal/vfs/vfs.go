// Package vfs provides the virtual filesystem the shell runs against.
// Nothing in the shell ever touches the host filesystem; everything goes
// through the FileSystem interface so sessions stay fully in memory.
package vfs

import (
	"context"
	"os"
	"path"
	"strings"
)

// FileSystem is the narrow collaborator surface the shell consumes.
// Implementations must signal a missing path with an error satisfying
// os.IsNotExist / errors.Is(err, fs.ErrNotExist).
type FileSystem interface {
	ReadFile(ctx context.Context, name string) ([]byte, error)
	WriteFile(ctx context.Context, name string, data []byte) error
	Stat(ctx context.Context, name string) (os.FileInfo, error)
	Mkdir(ctx context.Context, name string) error
	MkdirAll(ctx context.Context, name string) error
	ReadDir(ctx context.Context, name string) ([]os.FileInfo, error)
	Rename(ctx context.Context, oldname, newname string) error
	Remove(ctx context.Context, name string) error
	RemoveAll(ctx context.Context, name string) error
}

// Resolve joins a possibly relative path against the current working
// directory and normalizes it. A bare filename always resolves against
// cwd, never against any other base.
func Resolve(cwd, name string) string {
	if name == "" {
		return path.Clean(cwd)
	}
	if strings.HasPrefix(name, "/") {
		return path.Clean(name)
	}
	resolved := path.Clean(cwd + "/" + name)
	if !strings.HasPrefix(resolved, "/") {
		resolved = "/" + resolved
	}
	return resolved
}

// Base returns the final element of a slash-separated path.
func Base(name string) string {
	return path.Base(name)
}

// Dir returns all but the final element of a slash-separated path.
func Dir(name string) string {
	return path.Dir(name)
}
