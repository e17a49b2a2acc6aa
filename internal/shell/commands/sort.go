package commands

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/websh-dev/websh/internal/shell"
	"github.com/websh-dev/websh/internal/vfs"
)

type sortCommand struct {
	fs vfs.FileSystem
}

// NewSort returns the sort command with -r, -n and -u flags.
func NewSort(fs vfs.FileSystem) shell.Command {
	return &sortCommand{fs: fs}
}

func (c *sortCommand) Name() string        { return "sort" }
func (c *sortCommand) Description() string { return "Sort lines of text" }
func (c *sortCommand) Usage() string       { return "sort [-nru] [file...]" }

func (c *sortCommand) Execute(ctx context.Context, args []string, cwd string, stdin string) shell.Result {
	reverse := false
	numeric := false
	unique := false
	var paths []string

	for _, arg := range args {
		if strings.HasPrefix(arg, "-") && len(arg) > 1 {
			for _, f := range arg[1:] {
				switch f {
				case 'r':
					reverse = true
				case 'n':
					numeric = true
				case 'u':
					unique = true
				default:
					return shell.Fail(1, "sort: invalid option -- '"+string(f)+"'")
				}
			}
			continue
		}
		paths = append(paths, arg)
	}

	input, failure := gatherInput(ctx, c.fs, "sort", cwd, paths, stdin)
	if failure != nil {
		return *failure
	}

	lines := splitLines(input)
	if numeric {
		sort.SliceStable(lines, func(i, j int) bool {
			a, _ := strconv.ParseFloat(strings.TrimSpace(lines[i]), 64)
			b, _ := strconv.ParseFloat(strings.TrimSpace(lines[j]), 64)
			if a != b {
				return a < b
			}
			return lines[i] < lines[j]
		})
	} else {
		sort.Strings(lines)
	}
	if reverse {
		for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
			lines[i], lines[j] = lines[j], lines[i]
		}
	}
	if unique {
		deduped := lines[:0]
		var prev string
		for i, line := range lines {
			if i == 0 || line != prev {
				deduped = append(deduped, line)
			}
			prev = line
		}
		lines = deduped
	}

	if len(lines) == 0 {
		return shell.OK("")
	}
	return shell.OK(joinLines(lines))
}
