package commands

import (
	"context"

	"github.com/websh-dev/websh/internal/shell"
	"github.com/websh-dev/websh/internal/vfs"
)

type tailCommand struct {
	fs vfs.FileSystem
}

// NewTail returns the tail command (last N lines, default 10).
func NewTail(fs vfs.FileSystem) shell.Command {
	return &tailCommand{fs: fs}
}

func (c *tailCommand) Name() string        { return "tail" }
func (c *tailCommand) Description() string { return "Print the last lines of input" }
func (c *tailCommand) Usage() string       { return "tail [-n count] [file...]" }

func (c *tailCommand) Execute(ctx context.Context, args []string, cwd string, stdin string) shell.Result {
	count, paths, failure := parseLineCount("tail", args)
	if failure != nil {
		return *failure
	}

	input, readFail := gatherInput(ctx, c.fs, "tail", cwd, paths, stdin)
	if readFail != nil {
		return *readFail
	}

	lines := splitLines(input)
	if len(lines) > count {
		lines = lines[len(lines)-count:]
	}
	if len(lines) == 0 {
		return shell.OK("")
	}
	return shell.OK(joinLines(lines))
}
