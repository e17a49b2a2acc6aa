package commands

import (
	"context"
	"strings"

	"github.com/websh-dev/websh/internal/errors"
	"github.com/websh-dev/websh/internal/shell"
	"github.com/websh-dev/websh/internal/vfs"
)

type catCommand struct {
	fs vfs.FileSystem
}

// NewCat returns the cat command: concatenate files, or echo stdin when no
// files are named.
func NewCat(fs vfs.FileSystem) shell.Command {
	return &catCommand{fs: fs}
}

func (c *catCommand) Name() string        { return "cat" }
func (c *catCommand) Description() string { return "Concatenate and print files" }
func (c *catCommand) Usage() string       { return "cat [file...]" }

func (c *catCommand) Execute(ctx context.Context, args []string, cwd string, stdin string) shell.Result {
	if len(args) == 0 {
		return shell.OK(stdin)
	}

	var out strings.Builder
	exitCode := 0
	var errs []string

	for _, arg := range args {
		p := vfs.Resolve(cwd, arg)
		info, err := c.fs.Stat(ctx, p)
		if err != nil {
			errs = append(errs, errors.NoSuchFileOrDirectory("cat", arg))
			exitCode = 1
			continue
		}
		if info.IsDir() {
			errs = append(errs, errors.IsADirectory("cat", arg))
			exitCode = 1
			continue
		}
		data, err := c.fs.ReadFile(ctx, p)
		if err != nil {
			errs = append(errs, errors.NoSuchFileOrDirectory("cat", arg))
			exitCode = 1
			continue
		}
		out.Write(data)
	}

	return shell.Result{
		ExitCode: exitCode,
		Stdout:   out.String(),
		Stderr:   strings.Join(errs, "\n"),
	}
}
