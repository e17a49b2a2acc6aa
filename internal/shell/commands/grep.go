package commands

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/websh-dev/websh/internal/errors"
	"github.com/websh-dev/websh/internal/shell"
	"github.com/websh-dev/websh/internal/vfs"
)

type grepCommand struct {
	fs vfs.FileSystem
}

// NewGrep returns the grep command. The pattern is a regular expression;
// flags: -i case-insensitive, -n line numbers, -v invert, -r recursive.
// Exit code 1 means no matches, which is distinct from a usage failure.
func NewGrep(fs vfs.FileSystem) shell.Command {
	return &grepCommand{fs: fs}
}

func (c *grepCommand) Name() string        { return "grep" }
func (c *grepCommand) Description() string { return "Search text for a pattern" }
func (c *grepCommand) Usage() string       { return "grep [-inrv] <pattern> [file...]" }

func (c *grepCommand) Execute(ctx context.Context, args []string, cwd string, stdin string) shell.Result {
	ignoreCase := false
	lineNumbers := false
	invert := false
	recursive := false
	var rest []string

	for _, arg := range args {
		if strings.HasPrefix(arg, "-") && len(arg) > 1 {
			for _, f := range arg[1:] {
				switch f {
				case 'i':
					ignoreCase = true
				case 'n':
					lineNumbers = true
				case 'v':
					invert = true
				case 'r', 'R':
					recursive = true
				default:
					return shell.Fail(2, fmt.Sprintf("grep: invalid option -- '%c'", f))
				}
			}
			continue
		}
		rest = append(rest, arg)
	}

	if len(rest) == 0 {
		return shell.Fail(2, errors.Usage("grep", c.Usage()))
	}

	pattern := rest[0]
	if ignoreCase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return shell.Fail(2, fmt.Sprintf("grep: invalid pattern: %v", err))
	}

	files := rest[1:]
	if recursive {
		start := "."
		if len(files) > 0 {
			start = files[0]
		}
		collected, failure := c.collect(ctx, cwd, start)
		if failure != nil {
			return *failure
		}
		files = collected
	}

	if len(files) == 0 {
		matched := c.scan(re, stdin, "", false, lineNumbers, invert)
		return grepResult(matched)
	}

	showName := len(files) > 1 || recursive
	var out []string
	for _, f := range files {
		data, err := c.fs.ReadFile(ctx, vfs.Resolve(cwd, f))
		if err != nil {
			return shell.Fail(1, errors.NoSuchFileOrDirectory("grep", f))
		}
		out = append(out, c.scan(re, string(data), f, showName, lineNumbers, invert)...)
	}
	return grepResult(out)
}

func grepResult(lines []string) shell.Result {
	if len(lines) == 0 {
		return shell.Result{ExitCode: 1}
	}
	return shell.OK(joinLines(lines))
}

func (c *grepCommand) scan(re *regexp.Regexp, content, name string, showName, lineNumbers, invert bool) []string {
	var matched []string
	for i, line := range splitLines(content) {
		ok := re.MatchString(line)
		if invert {
			ok = !ok
		}
		if !ok {
			continue
		}
		prefix := ""
		if showName {
			prefix = name + ":"
		}
		if lineNumbers {
			prefix += fmt.Sprintf("%d:", i+1)
		}
		matched = append(matched, prefix+line)
	}
	return matched
}

func (c *grepCommand) collect(ctx context.Context, cwd, start string) ([]string, *shell.Result) {
	resolved := vfs.Resolve(cwd, start)
	info, err := c.fs.Stat(ctx, resolved)
	if err != nil {
		res := shell.Fail(1, errors.NoSuchFileOrDirectory("grep", start))
		return nil, &res
	}
	if !info.IsDir() {
		return []string{start}, nil
	}

	var files []string
	var walk func(display, resolved string) *shell.Result
	walk = func(display, resolved string) *shell.Result {
		entries, err := c.fs.ReadDir(ctx, resolved)
		if err != nil {
			res := shell.Fail(1, errors.NoSuchFileOrDirectory("grep", display))
			return &res
		}
		for _, entry := range entries {
			childDisplay := display + "/" + entry.Name()
			childResolved := resolved + "/" + entry.Name()
			if entry.IsDir() {
				if failure := walk(childDisplay, childResolved); failure != nil {
					return failure
				}
				continue
			}
			files = append(files, childDisplay)
		}
		return nil
	}
	if failure := walk(strings.TrimSuffix(start, "/"), resolved); failure != nil {
		return nil, failure
	}
	return files, nil
}
