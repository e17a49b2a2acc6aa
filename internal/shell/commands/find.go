package commands

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/websh-dev/websh/internal/errors"
	"github.com/websh-dev/websh/internal/shell"
	"github.com/websh-dev/websh/internal/vfs"
)

type findCommand struct {
	fs vfs.FileSystem
}

// NewFind returns the find command with -name, -type and -maxdepth
// predicates. Traversal is depth-first pre-order, so a directory is
// printed before its contents.
func NewFind(fs vfs.FileSystem) shell.Command {
	return &findCommand{fs: fs}
}

func (c *findCommand) Name() string        { return "find" }
func (c *findCommand) Description() string { return "Walk a directory tree" }
func (c *findCommand) Usage() string       { return "find [path] [-name pattern] [-type f|d] [-maxdepth n]" }

// globToRegexp anchors the pattern and maps the shell wildcards * and ?
// onto their regexp equivalents.
func globToRegexp(pattern string) (*regexp.Regexp, error) {
	quoted := regexp.QuoteMeta(pattern)
	quoted = strings.ReplaceAll(quoted, `\*`, `.*`)
	quoted = strings.ReplaceAll(quoted, `\?`, `.`)
	return regexp.Compile("^" + quoted + "$")
}

func (c *findCommand) Execute(ctx context.Context, args []string, cwd string, stdin string) shell.Result {
	start := "."
	var namePattern string
	typeFilter := ""
	maxDepth := -1

	i := 0
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		start = args[0]
		i = 1
	}
	for ; i < len(args); i++ {
		switch args[i] {
		case "-name":
			if i+1 >= len(args) {
				return shell.Fail(1, "find: missing argument to '-name'")
			}
			namePattern = args[i+1]
			i++
		case "-type":
			if i+1 >= len(args) {
				return shell.Fail(1, "find: missing argument to '-type'")
			}
			typeFilter = args[i+1]
			if typeFilter != "f" && typeFilter != "d" {
				return shell.Fail(1, "find: unknown argument to -type: "+typeFilter)
			}
			i++
		case "-maxdepth":
			if i+1 >= len(args) {
				return shell.Fail(1, "find: missing argument to '-maxdepth'")
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 0 {
				return shell.Fail(1, "find: invalid argument to -maxdepth: "+args[i+1])
			}
			maxDepth = n
			i++
		default:
			return shell.Fail(1, "find: unknown predicate: '"+args[i]+"'")
		}
	}

	var nameRe *regexp.Regexp
	if namePattern != "" {
		re, err := globToRegexp(namePattern)
		if err != nil {
			return shell.Fail(1, "find: invalid pattern: '"+namePattern+"'")
		}
		nameRe = re
	}

	resolved := vfs.Resolve(cwd, start)
	info, err := c.fs.Stat(ctx, resolved)
	if err != nil {
		return shell.Fail(1, errors.NoSuchFileOrDirectory("find", start))
	}

	matches := func(name string, isDir bool) bool {
		if typeFilter == "f" && isDir {
			return false
		}
		if typeFilter == "d" && !isDir {
			return false
		}
		if nameRe != nil && !nameRe.MatchString(name) {
			return false
		}
		return true
	}

	var out []string
	var walk func(display, resolved string, isDir bool, depth int) error
	walk = func(display, resolved string, isDir bool, depth int) error {
		if matches(vfs.Base(display), isDir) {
			out = append(out, display)
		}
		if !isDir || (maxDepth >= 0 && depth >= maxDepth) {
			return nil
		}
		entries, err := c.fs.ReadDir(ctx, resolved)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			child := strings.TrimSuffix(display, "/") + "/" + entry.Name()
			if err := walk(child, resolved+"/"+entry.Name(), entry.IsDir(), depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	display := strings.TrimSuffix(start, "/")
	if display == "" {
		// trimming must not erase the root itself
		display = "/"
	}
	if err := walk(display, resolved, info.IsDir(), 0); err != nil {
		return shell.Fail(1, "find: "+err.Error())
	}

	if len(out) == 0 {
		return shell.OK("")
	}
	return shell.OK(joinLines(out))
}
