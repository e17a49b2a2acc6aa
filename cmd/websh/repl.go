package main

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/urfave/cli/v3"

	termio "github.com/websh-dev/websh/internal/io"
	"github.com/websh-dev/websh/internal/shell"
)

// NewReplCommand creates the interactive shell command.
func NewReplCommand() *cli.Command {
	return &cli.Command{
		Name:    "repl",
		Aliases: []string{"shell"},
		Usage:   "Start an interactive shell session",
		Description: "Run an interactive shell over a fresh in-memory filesystem.\n" +
			"Type 'exit' or press Ctrl-D to leave.",
		Action: runRepl,
	}
}

// registryCompleter completes the first word of a line from the
// registry. Later words are paths, which the in-memory layout changes
// too often to complete usefully.
type registryCompleter struct {
	registry *shell.Registry
}

func (c *registryCompleter) Do(line []rune, pos int) ([][]rune, int) {
	prefix := string(line[:pos])
	if strings.ContainsAny(prefix, " \t") {
		return nil, 0
	}
	var out [][]rune
	for _, name := range c.registry.Completions(prefix) {
		out = append(out, []rune(name[len(prefix):]))
	}
	return out, len(prefix)
}

func runRepl(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sess, err := newSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = sess.log.Sync() }()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Session.Prompt,
		AutoComplete:    &registryCompleter{registry: sess.registry},
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	out := termio.NewFlushingWriter(os.Stdout)
	errOut := termio.NewFlushingWriter(os.Stderr)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" {
			return nil
		}

		res := sess.exec.Execute(ctx, line)
		if err := out.WriteBlock(res.Stdout); err != nil {
			return err
		}
		if err := errOut.WriteBlock(res.Stderr); err != nil {
			return err
		}
	}
}
