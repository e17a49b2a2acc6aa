package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
)

// NewCommandsCommand creates the command listing subcommand.
func NewCommandsCommand() *cli.Command {
	return &cli.Command{
		Name:   "commands",
		Usage:  "List the shell commands available in a session",
		Action: listCommands,
	}
}

func listCommands(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sess, err := newSession(ctx, cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, c := range sess.registry.List() {
		fmt.Fprintf(w, "%s\t%s\n", c.Name(), c.Description())
	}
	return w.Flush()
}
