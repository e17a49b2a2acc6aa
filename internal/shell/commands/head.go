package commands

import (
	"context"
	"strconv"
	"strings"

	"github.com/websh-dev/websh/internal/errors"
	"github.com/websh-dev/websh/internal/shell"
	"github.com/websh-dev/websh/internal/vfs"
)

type headCommand struct {
	fs vfs.FileSystem
}

// NewHead returns the head command (first N lines, default 10).
func NewHead(fs vfs.FileSystem) shell.Command {
	return &headCommand{fs: fs}
}

func (c *headCommand) Name() string        { return "head" }
func (c *headCommand) Description() string { return "Print the first lines of input" }
func (c *headCommand) Usage() string       { return "head [-n count] [file...]" }

func (c *headCommand) Execute(ctx context.Context, args []string, cwd string, stdin string) shell.Result {
	count, paths, failure := parseLineCount("head", args)
	if failure != nil {
		return *failure
	}

	input, readFail := gatherInput(ctx, c.fs, "head", cwd, paths, stdin)
	if readFail != nil {
		return *readFail
	}

	lines := splitLines(input)
	if len(lines) > count {
		lines = lines[:count]
	}
	if len(lines) == 0 {
		return shell.OK("")
	}
	return shell.OK(joinLines(lines))
}

// parseLineCount handles both "-n 5" and the historical "-5" spelling.
func parseLineCount(name string, args []string) (int, []string, *shell.Result) {
	count := 10
	var paths []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-n":
			if i+1 >= len(args) {
				res := shell.Fail(1, name+": option requires an argument -- 'n'")
				return 0, nil, &res
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 0 {
				res := shell.Fail(1, name+": invalid number of lines: '"+args[i+1]+"'")
				return 0, nil, &res
			}
			count = n
			i++
		case strings.HasPrefix(arg, "-n"):
			n, err := strconv.Atoi(arg[2:])
			if err != nil || n < 0 {
				res := shell.Fail(1, name+": invalid number of lines: '"+arg[2:]+"'")
				return 0, nil, &res
			}
			count = n
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			n, err := strconv.Atoi(arg[1:])
			if err != nil {
				res := shell.Fail(1, errors.Usage(name, name+" [-n count] [file...]"))
				return 0, nil, &res
			}
			count = n
		default:
			paths = append(paths, arg)
		}
	}
	return count, paths, nil
}
