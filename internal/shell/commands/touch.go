package commands

import (
	"context"

	"github.com/websh-dev/websh/internal/errors"
	"github.com/websh-dev/websh/internal/shell"
	"github.com/websh-dev/websh/internal/vfs"
)

type touchCommand struct {
	fs vfs.FileSystem
}

// NewTouch returns the touch command: create empty files, or rewrite an
// existing file's content to refresh its modification time.
func NewTouch(fs vfs.FileSystem) shell.Command {
	return &touchCommand{fs: fs}
}

func (c *touchCommand) Name() string        { return "touch" }
func (c *touchCommand) Description() string { return "Create empty files" }
func (c *touchCommand) Usage() string       { return "touch <file...>" }

func (c *touchCommand) Execute(ctx context.Context, args []string, cwd string, _ string) shell.Result {
	if len(args) == 0 {
		return shell.Fail(1, errors.MissingOperand("touch"))
	}

	for _, arg := range args {
		p := vfs.Resolve(cwd, arg)
		existing, err := c.fs.ReadFile(ctx, p)
		if err != nil {
			existing = nil
		}
		if err := c.fs.WriteFile(ctx, p, existing); err != nil {
			return shell.Fail(1, errors.NoSuchFileOrDirectory("touch", arg))
		}
	}
	return shell.OK("")
}
