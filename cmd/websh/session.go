package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/websh-dev/websh/internal/config"
	"github.com/websh-dev/websh/internal/gitx"
	"github.com/websh-dev/websh/internal/shell"
	"github.com/websh-dev/websh/internal/shell/commands"
	"github.com/websh-dev/websh/internal/vfs"
)

func configFileName() string { return config.ConfigFileName }

// session is one fully wired shell instance: its own filesystem, git
// client, registry and executor. Sessions are independent of each
// other.
type session struct {
	cfg      *config.Config
	fs       vfs.FileSystem
	registry *shell.Registry
	exec     *shell.Executor
	log      *zap.Logger
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	dir := cmd.String("config-dir")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return config.Default(), nil
		}
		dir = home
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	if cmd.Bool("debug") {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

func newSession(ctx context.Context, cfg *config.Config) (*session, error) {
	log, err := newLogger(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	fs := vfs.NewMemory()
	home := cfg.Session.Home
	if err := fs.MkdirAll(ctx, home); err != nil {
		return nil, fmt.Errorf("failed to create home directory: %w", err)
	}
	for _, seed := range cfg.Seed {
		if err := fs.MkdirAll(ctx, vfs.Dir(seed.Path)); err != nil {
			return nil, fmt.Errorf("failed to seed %s: %w", seed.Path, err)
		}
		if err := fs.WriteFile(ctx, seed.Path, []byte(seed.Content)); err != nil {
			return nil, fmt.Errorf("failed to seed %s: %w", seed.Path, err)
		}
	}

	git, err := gitx.NewClient(fs, home, gitx.Identity{
		Name:  cfg.Git.Name,
		Email: cfg.Git.Email,
	})
	if err != nil {
		return nil, err
	}

	registry := shell.NewRegistry()
	registry.RegisterAll(commands.Builtins(fs, git)...)

	exec := shell.NewExecutor(fs, registry,
		shell.WithWorkingDir(home),
		shell.WithLogger(log),
	)

	return &session{cfg: cfg, fs: fs, registry: registry, exec: exec, log: log}, nil
}

// attachAgent registers the agent loopback command. It stays out of the
// public listing.
func (s *session) attachAgent(send commands.SendMessage) {
	s.registry.Register(commands.NewRalph(send))
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "" {
		return zap.NewNop(), nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
