package commands

import (
	"context"
	"strings"

	"github.com/websh-dev/websh/internal/shell"
)

// SendMessage forwards a prompt to the hosting agent and returns its
// textual reply.
type SendMessage func(ctx context.Context, prompt string) (string, error)

type ralphCommand struct {
	send SendMessage
}

// NewRalph returns the agent loopback command. It is only registered
// when the host supplies a message callback, and stays out of the
// public command listing.
func NewRalph(send SendMessage) shell.Command {
	return &ralphCommand{send: send}
}

func (c *ralphCommand) Name() string        { return "ralph" }
func (c *ralphCommand) Description() string { return "Ask the agent a question" }
func (c *ralphCommand) Usage() string       { return "ralph <prompt>" }
func (c *ralphCommand) Hidden() bool        { return true }

func (c *ralphCommand) Execute(ctx context.Context, args []string, cwd string, stdin string) shell.Result {
	prompt := strings.Join(args, " ")
	if prompt == "" {
		prompt = strings.TrimRight(stdin, "\n")
	}
	if prompt == "" {
		return shell.Fail(1, "ralph: empty prompt")
	}
	reply, err := c.send(ctx, prompt)
	if err != nil {
		return shell.Fail(1, "ralph: "+err.Error())
	}
	if reply != "" && !strings.HasSuffix(reply, "\n") {
		reply += "\n"
	}
	return shell.OK(reply)
}
