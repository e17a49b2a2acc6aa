package commands

import (
	"context"
	"fmt"

	"github.com/websh-dev/websh/internal/errors"
	"github.com/websh-dev/websh/internal/shell"
	"github.com/websh-dev/websh/internal/vfs"
)

type mvCommand struct {
	fs vfs.FileSystem
}

// NewMv returns the mv command. A move into an existing directory lands
// under the source's basename. The rename is not atomic with respect to
// concurrent external mutation of the underlying filesystem.
func NewMv(fs vfs.FileSystem) shell.Command {
	return &mvCommand{fs: fs}
}

func (c *mvCommand) Name() string        { return "mv" }
func (c *mvCommand) Description() string { return "Move or rename files" }
func (c *mvCommand) Usage() string       { return "mv <src> <dst>" }

func (c *mvCommand) Execute(ctx context.Context, args []string, cwd string, _ string) shell.Result {
	if len(args) < 2 {
		return shell.Fail(1, errors.MissingOperand("mv"))
	}

	src := vfs.Resolve(cwd, args[0])
	dst := vfs.Resolve(cwd, args[1])

	if _, err := c.fs.Stat(ctx, src); err != nil {
		return shell.Fail(1, errors.NoSuchFileOrDirectory("mv", args[0]))
	}

	if dstInfo, err := c.fs.Stat(ctx, dst); err == nil && dstInfo.IsDir() {
		dst = dst + "/" + vfs.Base(src)
	}

	if err := c.fs.Rename(ctx, src, dst); err != nil {
		return shell.Fail(1, fmt.Sprintf("mv: cannot move '%s': %v", args[0], err))
	}
	return shell.OK("")
}
