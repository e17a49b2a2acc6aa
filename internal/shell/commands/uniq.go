package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/websh-dev/websh/internal/shell"
	"github.com/websh-dev/websh/internal/vfs"
)

type uniqCommand struct {
	fs vfs.FileSystem
}

// NewUniq returns the uniq command. Like the POSIX tool it only
// collapses adjacent duplicates, so input is normally sorted first.
func NewUniq(fs vfs.FileSystem) shell.Command {
	return &uniqCommand{fs: fs}
}

func (c *uniqCommand) Name() string        { return "uniq" }
func (c *uniqCommand) Description() string { return "Collapse adjacent duplicate lines" }
func (c *uniqCommand) Usage() string       { return "uniq [-cd] [file...]" }

func (c *uniqCommand) Execute(ctx context.Context, args []string, cwd string, stdin string) shell.Result {
	showCounts := false
	dupesOnly := false
	var paths []string

	for _, arg := range args {
		if strings.HasPrefix(arg, "-") && len(arg) > 1 {
			for _, f := range arg[1:] {
				switch f {
				case 'c':
					showCounts = true
				case 'd':
					dupesOnly = true
				default:
					return shell.Fail(1, "uniq: invalid option -- '"+string(f)+"'")
				}
			}
			continue
		}
		paths = append(paths, arg)
	}

	input, failure := gatherInput(ctx, c.fs, "uniq", cwd, paths, stdin)
	if failure != nil {
		return *failure
	}

	lines := splitLines(input)
	var out []string
	for i := 0; i < len(lines); {
		j := i + 1
		for j < len(lines) && lines[j] == lines[i] {
			j++
		}
		run := j - i
		if !dupesOnly || run > 1 {
			if showCounts {
				out = append(out, fmt.Sprintf("%7d %s", run, lines[i]))
			} else {
				out = append(out, lines[i])
			}
		}
		i = j
	}

	if len(out) == 0 {
		return shell.OK("")
	}
	return shell.OK(joinLines(out))
}
