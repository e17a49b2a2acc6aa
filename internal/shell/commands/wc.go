package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/websh-dev/websh/internal/errors"
	"github.com/websh-dev/websh/internal/shell"
	"github.com/websh-dev/websh/internal/vfs"
)

type wcCommand struct {
	fs vfs.FileSystem
}

// NewWc returns the wc command. Lines are counted as completed lines,
// so input without a trailing newline contributes one fewer line than
// the number of visible rows.
func NewWc(fs vfs.FileSystem) shell.Command {
	return &wcCommand{fs: fs}
}

func (c *wcCommand) Name() string        { return "wc" }
func (c *wcCommand) Description() string { return "Count lines, words and characters" }
func (c *wcCommand) Usage() string       { return "wc [-clmw] [file...]" }

type wcCounts struct {
	lines int
	words int
	chars int
}

func count(s string) wcCounts {
	return wcCounts{
		lines: strings.Count(s, "\n"),
		words: len(strings.Fields(s)),
		chars: len(s),
	}
}

func (c *wcCommand) Execute(ctx context.Context, args []string, cwd string, stdin string) shell.Result {
	showLines := false
	showWords := false
	showChars := false
	var paths []string

	for _, arg := range args {
		if strings.HasPrefix(arg, "-") && len(arg) > 1 {
			for _, f := range arg[1:] {
				switch f {
				case 'l':
					showLines = true
				case 'w':
					showWords = true
				case 'c', 'm':
					showChars = true
				default:
					return shell.Fail(1, fmt.Sprintf("wc: invalid option -- '%c'", f))
				}
			}
			continue
		}
		paths = append(paths, arg)
	}
	if !showLines && !showWords && !showChars {
		showLines, showWords, showChars = true, true, true
	}

	format := func(n wcCounts, name string) string {
		var fields []string
		if showLines {
			fields = append(fields, fmt.Sprintf("%8d", n.lines))
		}
		if showWords {
			fields = append(fields, fmt.Sprintf("%8d", n.words))
		}
		if showChars {
			fields = append(fields, fmt.Sprintf("%8d", n.chars))
		}
		line := strings.Join(fields, "")
		if name != "" {
			line += " " + name
		}
		return line
	}

	if len(paths) == 0 {
		return shell.OK(format(count(stdin), "") + "\n")
	}

	var out []string
	var total wcCounts
	for _, p := range paths {
		data, err := c.fs.ReadFile(ctx, vfs.Resolve(cwd, p))
		if err != nil {
			return shell.Fail(1, errors.NoSuchFileOrDirectory("wc", p))
		}
		n := count(string(data))
		total.lines += n.lines
		total.words += n.words
		total.chars += n.chars
		out = append(out, format(n, p))
	}
	if len(paths) > 1 {
		out = append(out, format(total, "total"))
	}
	return shell.OK(joinLines(out))
}
