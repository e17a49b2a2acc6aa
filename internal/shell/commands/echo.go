package commands

import (
	"context"
	"strings"

	"github.com/websh-dev/websh/internal/shell"
)

type echoCommand struct{}

// NewEcho returns the echo command. -n suppresses the trailing newline.
func NewEcho() shell.Command {
	return &echoCommand{}
}

func (c *echoCommand) Name() string        { return "echo" }
func (c *echoCommand) Description() string { return "Print arguments" }
func (c *echoCommand) Usage() string       { return "echo [-n] [text...]" }

func (c *echoCommand) Execute(_ context.Context, args []string, _ string, _ string) shell.Result {
	newline := true
	if len(args) > 0 && args[0] == "-n" {
		newline = false
		args = args[1:]
	}
	out := strings.Join(args, " ")
	if newline {
		out += "\n"
	}
	return shell.OK(out)
}
