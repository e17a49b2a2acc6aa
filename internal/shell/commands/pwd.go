package commands

import (
	"context"

	"github.com/websh-dev/websh/internal/shell"
)

type pwdCommand struct{}

// NewPwd returns the pwd command.
func NewPwd() shell.Command {
	return &pwdCommand{}
}

func (c *pwdCommand) Name() string        { return "pwd" }
func (c *pwdCommand) Description() string { return "Print the working directory" }
func (c *pwdCommand) Usage() string       { return "pwd" }

func (c *pwdCommand) Execute(_ context.Context, _ []string, cwd string, _ string) shell.Result {
	return shell.OK(cwd + "\n")
}
