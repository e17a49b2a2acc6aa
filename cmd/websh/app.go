package main

import "github.com/urfave/cli/v3"

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "websh",
		Usage: "Sandboxed in-memory shell",
		Description: "websh runs a POSIX-style shell over an in-memory filesystem with " +
			"git support, usable interactively or as a one-shot command runner.",
		Version:               version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config-dir",
				Usage: "Directory containing " + configFileName(),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			NewRunCommand(),
			NewReplCommand(),
			NewCommandsCommand(),
		},
	}
}
