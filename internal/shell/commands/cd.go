package commands

import (
	"context"

	"github.com/websh-dev/websh/internal/errors"
	"github.com/websh-dev/websh/internal/shell"
	"github.com/websh-dev/websh/internal/vfs"
)

type cdCommand struct {
	fs   vfs.FileSystem
	home string
}

// NewCd returns the cd command. With no argument it changes to the session
// home directory ("/" unless configured otherwise). On success the result
// carries NewCwd; the executor owns the actual mutation.
func NewCd(fs vfs.FileSystem) shell.Command {
	return NewCdWithHome(fs, "/")
}

// NewCdWithHome returns cd with an explicit home directory.
func NewCdWithHome(fs vfs.FileSystem, home string) shell.Command {
	return &cdCommand{fs: fs, home: home}
}

func (c *cdCommand) Name() string        { return "cd" }
func (c *cdCommand) Description() string { return "Change the working directory" }
func (c *cdCommand) Usage() string       { return "cd [path]" }

func (c *cdCommand) Execute(ctx context.Context, args []string, cwd string, _ string) shell.Result {
	target := c.home
	if len(args) > 0 {
		target = args[0]
	}

	resolved := vfs.Resolve(cwd, target)
	info, err := c.fs.Stat(ctx, resolved)
	if err != nil {
		return shell.Fail(1, errors.NoSuchFileOrDirectory("cd", target))
	}
	if !info.IsDir() {
		return shell.Fail(1, errors.NotADirectory("cd", target))
	}

	return shell.Result{ExitCode: 0, NewCwd: resolved}
}
