package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/websh-dev/websh/internal/errors"
	"github.com/websh-dev/websh/internal/shell"
	"github.com/websh-dev/websh/internal/vfs"
)

type rmCommand struct {
	fs vfs.FileSystem
}

// NewRm returns the rm command. -r removes directories recursively, -f
// silences missing-path failures.
func NewRm(fs vfs.FileSystem) shell.Command {
	return &rmCommand{fs: fs}
}

func (c *rmCommand) Name() string        { return "rm" }
func (c *rmCommand) Description() string { return "Remove files or directories" }
func (c *rmCommand) Usage() string       { return "rm [-rf] <path...>" }

func (c *rmCommand) Execute(ctx context.Context, args []string, cwd string, _ string) shell.Result {
	recursive := false
	force := false
	var paths []string

	for _, arg := range args {
		if strings.HasPrefix(arg, "-") && len(arg) > 1 {
			for _, f := range arg[1:] {
				switch f {
				case 'r', 'R':
					recursive = true
				case 'f':
					force = true
				default:
					return shell.Fail(1, fmt.Sprintf("rm: invalid option -- '%c'", f))
				}
			}
			continue
		}
		paths = append(paths, arg)
	}

	if len(paths) == 0 {
		return shell.Fail(1, errors.MissingOperand("rm"))
	}

	for _, p := range paths {
		resolved := vfs.Resolve(cwd, p)
		info, err := c.fs.Stat(ctx, resolved)
		if err != nil {
			if force {
				continue
			}
			return shell.Fail(1, errors.NoSuchFileOrDirectory("rm", p))
		}

		if info.IsDir() {
			if !recursive {
				return shell.Fail(1, fmt.Sprintf("rm: cannot remove '%s': Is a directory", p))
			}
			if err := c.fs.RemoveAll(ctx, resolved); err != nil {
				return shell.Fail(1, fmt.Sprintf("rm: cannot remove '%s': %v", p, err))
			}
			continue
		}

		if err := c.fs.Remove(ctx, resolved); err != nil {
			return shell.Fail(1, fmt.Sprintf("rm: cannot remove '%s': %v", p, err))
		}
	}
	return shell.OK("")
}
