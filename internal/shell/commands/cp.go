package commands

import (
	"context"
	"fmt"

	"github.com/websh-dev/websh/internal/errors"
	"github.com/websh-dev/websh/internal/shell"
	"github.com/websh-dev/websh/internal/vfs"
)

type cpCommand struct {
	fs vfs.FileSystem
}

// NewCp returns the cp command. -r copies directories recursively; a copy
// into an existing directory lands under the source's basename.
func NewCp(fs vfs.FileSystem) shell.Command {
	return &cpCommand{fs: fs}
}

func (c *cpCommand) Name() string        { return "cp" }
func (c *cpCommand) Description() string { return "Copy files or directories" }
func (c *cpCommand) Usage() string       { return "cp [-r] <src> <dst>" }

func (c *cpCommand) Execute(ctx context.Context, args []string, cwd string, _ string) shell.Result {
	recursive := false
	var paths []string
	for _, arg := range args {
		if arg == "-r" || arg == "-R" {
			recursive = true
			continue
		}
		paths = append(paths, arg)
	}

	if len(paths) < 2 {
		return shell.Fail(1, errors.MissingOperand("cp"))
	}

	src := vfs.Resolve(cwd, paths[0])
	dst := vfs.Resolve(cwd, paths[1])

	info, err := c.fs.Stat(ctx, src)
	if err != nil {
		return shell.Fail(1, errors.NoSuchFileOrDirectory("cp", paths[0]))
	}

	if dstInfo, err := c.fs.Stat(ctx, dst); err == nil && dstInfo.IsDir() {
		dst = dst + "/" + vfs.Base(src)
	}

	if info.IsDir() {
		if !recursive {
			return shell.Fail(1, fmt.Sprintf("cp: -r not specified; omitting directory '%s'", paths[0]))
		}
		if err := c.copyTree(ctx, src, dst); err != nil {
			return shell.Fail(1, fmt.Sprintf("cp: cannot copy '%s': %v", paths[0], err))
		}
		return shell.OK("")
	}

	if err := c.copyFile(ctx, src, dst); err != nil {
		return shell.Fail(1, fmt.Sprintf("cp: cannot copy '%s': %v", paths[0], err))
	}
	return shell.OK("")
}

func (c *cpCommand) copyFile(ctx context.Context, src, dst string) error {
	data, err := c.fs.ReadFile(ctx, src)
	if err != nil {
		return err
	}
	return c.fs.WriteFile(ctx, dst, data)
}

func (c *cpCommand) copyTree(ctx context.Context, src, dst string) error {
	if err := c.fs.MkdirAll(ctx, dst); err != nil {
		return err
	}
	entries, err := c.fs.ReadDir(ctx, src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		from := src + "/" + entry.Name()
		to := dst + "/" + entry.Name()
		if entry.IsDir() {
			if err := c.copyTree(ctx, from, to); err != nil {
				return err
			}
			continue
		}
		if err := c.copyFile(ctx, from, to); err != nil {
			return err
		}
	}
	return nil
}
