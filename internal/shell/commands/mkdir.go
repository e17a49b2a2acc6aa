package commands

import (
	"context"
	"fmt"

	"github.com/websh-dev/websh/internal/errors"
	"github.com/websh-dev/websh/internal/shell"
	"github.com/websh-dev/websh/internal/vfs"
)

type mkdirCommand struct {
	fs vfs.FileSystem
}

// NewMkdir returns the mkdir command. -p creates parents and tolerates
// existing directories.
func NewMkdir(fs vfs.FileSystem) shell.Command {
	return &mkdirCommand{fs: fs}
}

func (c *mkdirCommand) Name() string        { return "mkdir" }
func (c *mkdirCommand) Description() string { return "Create directories" }
func (c *mkdirCommand) Usage() string       { return "mkdir [-p] <dir...>" }

func (c *mkdirCommand) Execute(ctx context.Context, args []string, cwd string, _ string) shell.Result {
	parents := false
	var paths []string
	for _, arg := range args {
		if arg == "-p" {
			parents = true
			continue
		}
		paths = append(paths, arg)
	}

	if len(paths) == 0 {
		return shell.Fail(1, errors.MissingOperand("mkdir"))
	}

	for _, p := range paths {
		resolved := vfs.Resolve(cwd, p)
		if parents {
			if err := c.fs.MkdirAll(ctx, resolved); err != nil {
				return shell.Fail(1, fmt.Sprintf("mkdir: cannot create directory '%s': %v", p, err))
			}
			continue
		}
		if _, err := c.fs.Stat(ctx, resolved); err == nil {
			return shell.Fail(1, fmt.Sprintf("mkdir: cannot create directory '%s': File exists", p))
		}
		if err := c.fs.Mkdir(ctx, resolved); err != nil {
			return shell.Fail(1, fmt.Sprintf("mkdir: cannot create directory '%s': %v", p, err))
		}
	}
	return shell.OK("")
}
