package commands

import (
	"context"
	"regexp"
	"strings"

	"github.com/websh-dev/websh/internal/errors"
	"github.com/websh-dev/websh/internal/shell"
	"github.com/websh-dev/websh/internal/vfs"
)

type sedCommand struct {
	fs vfs.FileSystem
}

// NewSed returns the sed command. Only the substitute form is
// supported: s<delim>pattern<delim>replacement<delim>[g], with any
// single-character delimiter. The -i flag edits files in place.
func NewSed(fs vfs.FileSystem) shell.Command {
	return &sedCommand{fs: fs}
}

func (c *sedCommand) Name() string        { return "sed" }
func (c *sedCommand) Description() string { return "Substitute text on each line" }
func (c *sedCommand) Usage() string       { return "sed [-i] s/pattern/replacement/[g] [file...]" }

type sedScript struct {
	re     *regexp.Regexp
	repl   string
	global bool
}

func parseSedScript(expr string) (*sedScript, bool) {
	if len(expr) < 4 || expr[0] != 's' {
		return nil, false
	}
	delim := expr[1]
	var parts []string
	var cur strings.Builder
	escaped := false
	for i := 2; i < len(expr); i++ {
		ch := expr[i]
		switch {
		case escaped:
			if ch != delim {
				cur.WriteByte('\\')
			}
			cur.WriteByte(ch)
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == delim:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	parts = append(parts, cur.String())
	if len(parts) != 3 {
		return nil, false
	}
	flags := parts[2]
	if flags != "" && flags != "g" {
		return nil, false
	}
	re, err := regexp.Compile(parts[0])
	if err != nil {
		return nil, false
	}
	// sed uses \1..\9 for backreferences; Go's Regexp wants $1.
	repl := regexp.MustCompile(`\\([0-9])`).ReplaceAllString(parts[1], "$$$1")
	return &sedScript{re: re, repl: repl, global: flags == "g"}, true
}

func (s *sedScript) apply(line string) string {
	if s.global {
		return s.re.ReplaceAllString(line, s.repl)
	}
	loc := s.re.FindStringSubmatchIndex(line)
	if loc == nil {
		return line
	}
	expanded := s.re.ExpandString(nil, s.repl, line, loc)
	return line[:loc[0]] + string(expanded) + line[loc[1]:]
}

func (c *sedCommand) Execute(ctx context.Context, args []string, cwd string, stdin string) shell.Result {
	inPlace := false
	var rest []string
	for _, arg := range args {
		if arg == "-i" {
			inPlace = true
			continue
		}
		rest = append(rest, arg)
	}

	if len(rest) == 0 {
		return shell.Fail(1, errors.Usage("sed", c.Usage()))
	}
	script, ok := parseSedScript(rest[0])
	if !ok {
		return shell.Fail(1, "sed: invalid expression: '"+rest[0]+"'")
	}
	paths := rest[1:]

	transform := func(content string) string {
		lines := splitLines(content)
		for i, line := range lines {
			lines[i] = script.apply(line)
		}
		if len(lines) == 0 {
			return ""
		}
		joined := strings.Join(lines, "\n")
		if strings.HasSuffix(content, "\n") {
			joined += "\n"
		}
		return joined
	}

	if inPlace {
		if len(paths) == 0 {
			return shell.Fail(1, "sed: -i requires a file argument")
		}
		for _, p := range paths {
			resolved := vfs.Resolve(cwd, p)
			data, err := c.fs.ReadFile(ctx, resolved)
			if err != nil {
				return shell.Fail(1, errors.NoSuchFileOrDirectory("sed", p))
			}
			if err := c.fs.WriteFile(ctx, resolved, []byte(transform(string(data)))); err != nil {
				return shell.Fail(1, "sed: "+p+": "+err.Error())
			}
		}
		return shell.OK("")
	}

	input, failure := gatherInput(ctx, c.fs, "sed", cwd, paths, stdin)
	if failure != nil {
		return *failure
	}
	return shell.OK(transform(input))
}
