package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
)

// NewRunCommand creates the one-shot command runner.
func NewRunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run a single command line and exit",
		Description: "Execute one command line in a fresh session and print its output.\n\n" +
			"Examples:\n" +
			"  websh run -c 'echo hello > greeting && cat greeting'\n" +
			"  websh run -c 'git init && git add . && git commit -m start'",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "command",
				Aliases: []string{"c"},
				Usage:   "Command line to execute",
			},
		},
		ArgsUsage: "[command line]",
		Action:    runOnce,
	}
}

func runOnce(ctx context.Context, cmd *cli.Command) error {
	line := cmd.String("command")
	if line == "" {
		line = strings.Join(cmd.Args().Slice(), " ")
	}
	if strings.TrimSpace(line) == "" {
		return fmt.Errorf("no command given; use -c or positional arguments")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sess, err := newSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = sess.log.Sync() }()

	res := sess.exec.Execute(ctx, line)
	if res.Stdout != "" {
		fmt.Fprint(os.Stdout, res.Stdout)
	}
	if res.Stderr != "" {
		fmt.Fprintln(os.Stderr, strings.TrimRight(res.Stderr, "\n"))
	}
	if res.ExitCode != 0 {
		return cli.Exit("", res.ExitCode)
	}
	return nil
}
