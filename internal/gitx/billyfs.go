package gitx

import (
	"os"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/helper/chroot"
	"github.com/spf13/afero"
)

// billyFS bridges the shell's afero-backed filesystem to billy so go-git
// operates on the same in-memory tree the commands see.
type billyFS struct {
	fs afero.Fs
}

func newBillyFS(fs afero.Fs) billy.Filesystem {
	return &billyFS{fs: fs}
}

func (b *billyFS) Create(filename string) (billy.File, error) {
	return b.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o666)
}

func (b *billyFS) Open(filename string) (billy.File, error) {
	f, err := b.fs.Open(filename)
	if err != nil {
		return nil, err
	}
	return &billyFile{File: f}, nil
}

func (b *billyFS) OpenFile(filename string, flag int, perm os.FileMode) (billy.File, error) {
	if flag&os.O_CREATE != 0 {
		if err := b.fs.MkdirAll(path.Dir(filename), 0o755); err != nil {
			return nil, err
		}
	}
	f, err := b.fs.OpenFile(filename, flag, perm)
	if err != nil {
		return nil, err
	}
	return &billyFile{File: f}, nil
}

func (b *billyFS) Stat(filename string) (os.FileInfo, error) {
	return b.fs.Stat(filename)
}

func (b *billyFS) Rename(oldpath, newpath string) error {
	if err := b.fs.MkdirAll(path.Dir(newpath), 0o755); err != nil {
		return err
	}
	return b.fs.Rename(oldpath, newpath)
}

func (b *billyFS) Remove(filename string) error {
	return b.fs.Remove(filename)
}

func (b *billyFS) Join(elem ...string) string {
	return path.Join(elem...)
}

func (b *billyFS) TempFile(dir, prefix string) (billy.File, error) {
	if err := b.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	f, err := afero.TempFile(b.fs, dir, prefix)
	if err != nil {
		return nil, err
	}
	return &billyFile{File: f}, nil
}

func (b *billyFS) ReadDir(p string) ([]os.FileInfo, error) {
	return afero.ReadDir(b.fs, p)
}

func (b *billyFS) MkdirAll(filename string, perm os.FileMode) error {
	return b.fs.MkdirAll(filename, perm)
}

// The in-memory backend has no symlinks; Lstat degrades to Stat and link
// operations report billy.ErrNotSupported, which go-git tolerates.
func (b *billyFS) Lstat(filename string) (os.FileInfo, error) {
	return b.fs.Stat(filename)
}

func (b *billyFS) Symlink(_, _ string) error {
	return billy.ErrNotSupported
}

func (b *billyFS) Readlink(_ string) (string, error) {
	return "", billy.ErrNotSupported
}

func (b *billyFS) Chroot(p string) (billy.Filesystem, error) {
	return chroot.New(b, p), nil
}

func (b *billyFS) Root() string { return "/" }

type billyFile struct {
	afero.File
}

func (f *billyFile) Lock() error   { return nil }
func (f *billyFile) Unlock() error { return nil }
