package commands

import (
	"context"
	"strconv"
	"strings"

	"github.com/websh-dev/websh/internal/shell"
	"github.com/websh-dev/websh/internal/vfs"
)

type cutCommand struct {
	fs vfs.FileSystem
}

// NewCut returns the cut command. Exactly one of -f (fields) or -c
// (character positions) must be given; -d sets the field delimiter
// (default tab). Out-of-range selections are silently dropped.
func NewCut(fs vfs.FileSystem) shell.Command {
	return &cutCommand{fs: fs}
}

func (c *cutCommand) Name() string        { return "cut" }
func (c *cutCommand) Description() string { return "Select fields or characters from lines" }
func (c *cutCommand) Usage() string {
	return "cut -f list [-d delim] [file...] | cut -c list [file...]"
}

// cutRange selects positions start..end, 1-based inclusive. end == -1
// means open-ended.
type cutRange struct {
	start int
	end   int
}

func parseCutList(list string) ([]cutRange, bool) {
	var ranges []cutRange
	for _, part := range strings.Split(list, ",") {
		if part == "" {
			return nil, false
		}
		if !strings.Contains(part, "-") {
			n, err := strconv.Atoi(part)
			if err != nil || n < 1 {
				return nil, false
			}
			ranges = append(ranges, cutRange{start: n, end: n})
			continue
		}
		bounds := strings.SplitN(part, "-", 2)
		start, end := 1, -1
		if bounds[0] != "" {
			n, err := strconv.Atoi(bounds[0])
			if err != nil || n < 1 {
				return nil, false
			}
			start = n
		}
		if bounds[1] != "" {
			n, err := strconv.Atoi(bounds[1])
			if err != nil || n < 1 {
				return nil, false
			}
			end = n
		}
		if end != -1 && end < start {
			return nil, false
		}
		ranges = append(ranges, cutRange{start: start, end: end})
	}
	return ranges, len(ranges) > 0
}

// positions expands the ranges into 1-based positions in the order the
// list gave them, clipped to n. Out-of-range selections drop silently.
func positions(ranges []cutRange, n int) []int {
	var idx []int
	for _, r := range ranges {
		end := r.end
		if end == -1 || end > n {
			end = n
		}
		for pos := r.start; pos <= end; pos++ {
			idx = append(idx, pos)
		}
	}
	return idx
}

func (c *cutCommand) Execute(ctx context.Context, args []string, cwd string, stdin string) shell.Result {
	delim := "\t"
	var fieldList, charList string
	var paths []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-d":
			if i+1 >= len(args) {
				return shell.Fail(1, "cut: option requires an argument -- 'd'")
			}
			delim = args[i+1]
			i++
		case strings.HasPrefix(arg, "-d"):
			delim = arg[2:]
		case arg == "-f":
			if i+1 >= len(args) {
				return shell.Fail(1, "cut: option requires an argument -- 'f'")
			}
			fieldList = args[i+1]
			i++
		case strings.HasPrefix(arg, "-f"):
			fieldList = arg[2:]
		case arg == "-c":
			if i+1 >= len(args) {
				return shell.Fail(1, "cut: option requires an argument -- 'c'")
			}
			charList = args[i+1]
			i++
		case strings.HasPrefix(arg, "-c"):
			charList = arg[2:]
		default:
			paths = append(paths, arg)
		}
	}

	if (fieldList == "") == (charList == "") {
		return shell.Fail(1, "cut: usage: "+c.Usage())
	}
	list := fieldList
	if charList != "" {
		list = charList
	}
	ranges, ok := parseCutList(list)
	if !ok {
		return shell.Fail(1, "cut: invalid list value: '"+list+"'")
	}

	input, failure := gatherInput(ctx, c.fs, "cut", cwd, paths, stdin)
	if failure != nil {
		return *failure
	}

	var out []string
	for _, line := range splitLines(input) {
		if charList != "" {
			runes := []rune(line)
			var picked []rune
			for _, pos := range positions(ranges, len(runes)) {
				picked = append(picked, runes[pos-1])
			}
			out = append(out, string(picked))
			continue
		}
		fields := strings.Split(line, delim)
		var picked []string
		for _, pos := range positions(ranges, len(fields)) {
			picked = append(picked, fields[pos-1])
		}
		out = append(out, strings.Join(picked, delim))
	}

	if len(out) == 0 {
		return shell.OK("")
	}
	return shell.OK(joinLines(out))
}
