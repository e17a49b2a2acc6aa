package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/websh-dev/websh/internal/config"
	"github.com/websh-dev/websh/internal/shell"
)

func TestAttachAgent(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a working loopback command", func(t *testing.T) {
		sess, err := newSession(ctx, config.Default())
		require.NoError(t, err)

		sess.attachAgent(func(ctx context.Context, prompt string) (string, error) {
			return "reply to: " + prompt, nil
		})

		res := sess.exec.Execute(ctx, "ralph hello there")
		assert.Equal(t, 0, res.ExitCode)
		assert.Equal(t, "reply to: hello there\n", res.Stdout)
	})

	t.Run("stays out of the public listing", func(t *testing.T) {
		sess, err := newSession(ctx, config.Default())
		require.NoError(t, err)

		sess.attachAgent(func(ctx context.Context, prompt string) (string, error) {
			return "", nil
		})

		for _, cmd := range sess.registry.List() {
			assert.NotEqual(t, "ralph", cmd.Name())
		}
	})

	t.Run("absent until attached", func(t *testing.T) {
		sess, err := newSession(ctx, config.Default())
		require.NoError(t, err)

		res := sess.exec.Execute(ctx, "ralph hello")
		assert.Equal(t, shell.ExitCodeNotFound, res.ExitCode)
	})
}
