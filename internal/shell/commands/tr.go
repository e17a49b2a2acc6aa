package commands

import (
	"context"
	"strings"

	"github.com/websh-dev/websh/internal/errors"
	"github.com/websh-dev/websh/internal/shell"
)

type trCommand struct{}

// NewTr returns the tr command. It reads stdin only, translating
// characters from SET1 to SET2, or deleting SET1 with -d. Sets support
// a-z style ranges and the \n and \t escapes.
func NewTr() shell.Command {
	return &trCommand{}
}

func (c *trCommand) Name() string        { return "tr" }
func (c *trCommand) Description() string { return "Translate or delete characters" }
func (c *trCommand) Usage() string       { return "tr [-d] set1 [set2]" }

func expandSet(set string) []rune {
	var out []rune
	runes := []rune(set)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\\' && i+1 < len(runes) {
			switch runes[i+1] {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case '\\':
				out = append(out, '\\')
			default:
				out = append(out, runes[i+1])
			}
			i++
			continue
		}
		if i+2 < len(runes) && runes[i+1] == '-' && runes[i+2] >= runes[i] {
			for r := runes[i]; r <= runes[i+2]; r++ {
				out = append(out, r)
			}
			i += 2
			continue
		}
		out = append(out, runes[i])
	}
	return out
}

func (c *trCommand) Execute(ctx context.Context, args []string, cwd string, stdin string) shell.Result {
	del := false
	var sets []string
	for _, arg := range args {
		if arg == "-d" {
			del = true
			continue
		}
		sets = append(sets, arg)
	}

	if del {
		if len(sets) != 1 {
			return shell.Fail(1, errors.Usage("tr", "tr -d set1"))
		}
		drop := make(map[rune]bool)
		for _, r := range expandSet(sets[0]) {
			drop[r] = true
		}
		var b strings.Builder
		for _, r := range stdin {
			if !drop[r] {
				b.WriteRune(r)
			}
		}
		return shell.OK(b.String())
	}

	if len(sets) != 2 {
		return shell.Fail(1, errors.Usage("tr", c.Usage()))
	}
	from := expandSet(sets[0])
	to := expandSet(sets[1])
	if len(from) == 0 || len(to) == 0 {
		return shell.Fail(1, errors.Usage("tr", c.Usage()))
	}
	// POSIX pads set2 with its last character.
	mapping := make(map[rune]rune, len(from))
	for i, r := range from {
		j := i
		if j >= len(to) {
			j = len(to) - 1
		}
		mapping[r] = to[j]
	}
	var b strings.Builder
	for _, r := range stdin {
		if repl, ok := mapping[r]; ok {
			b.WriteRune(repl)
		} else {
			b.WriteRune(r)
		}
	}
	return shell.OK(b.String())
}
