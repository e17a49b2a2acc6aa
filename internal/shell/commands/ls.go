package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/websh-dev/websh/internal/errors"
	"github.com/websh-dev/websh/internal/shell"
	"github.com/websh-dev/websh/internal/vfs"
)

type lsCommand struct {
	fs vfs.FileSystem
}

// NewLs returns the ls command. Supports -a (include dotfiles) and -l
// (one entry per line with type marker and size).
func NewLs(fs vfs.FileSystem) shell.Command {
	return &lsCommand{fs: fs}
}

func (c *lsCommand) Name() string        { return "ls" }
func (c *lsCommand) Description() string { return "List directory contents" }
func (c *lsCommand) Usage() string       { return "ls [-a] [-l] [path...]" }

func (c *lsCommand) Execute(ctx context.Context, args []string, cwd string, _ string) shell.Result {
	showAll := false
	long := false
	var paths []string

	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			for _, f := range arg[1:] {
				switch f {
				case 'a':
					showAll = true
				case 'l':
					long = true
				default:
					return shell.Fail(1, fmt.Sprintf("ls: invalid option -- '%c'", f))
				}
			}
		default:
			paths = append(paths, arg)
		}
	}

	if len(paths) == 0 {
		paths = []string{"."}
	}

	var sections []string
	for _, p := range paths {
		resolved := vfs.Resolve(cwd, p)
		info, err := c.fs.Stat(ctx, resolved)
		if err != nil {
			return shell.Fail(1, errors.NoSuchFileOrDirectory("ls", p))
		}

		if !info.IsDir() {
			sections = append(sections, c.format(p, info.Size(), false, long))
			continue
		}

		entries, err := c.fs.ReadDir(ctx, resolved)
		if err != nil {
			return shell.Fail(1, errors.NoSuchFileOrDirectory("ls", p))
		}
		var lines []string
		for _, entry := range entries {
			if !showAll && strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			lines = append(lines, c.format(entry.Name(), entry.Size(), entry.IsDir(), long))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	out := strings.Join(sections, "\n")
	if out != "" {
		out += "\n"
	}
	return shell.OK(out)
}

func (c *lsCommand) format(name string, size int64, isDir, long bool) string {
	if !long {
		return name
	}
	kind := "-"
	if isDir {
		kind = "d"
	}
	return fmt.Sprintf("%s %8d %s", kind, size, name)
}
