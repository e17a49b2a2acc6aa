package gitx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/websh-dev/websh/internal/vfs"
)

func newTestClient(t *testing.T) (Client, vfs.FileSystem) {
	t.Helper()
	ctx := context.Background()
	fs := vfs.NewMemory()
	require.NoError(t, fs.MkdirAll(ctx, "/repo"))

	client, err := NewClient(fs, "/repo", Identity{Name: "tester", Email: "tester@example.com"})
	require.NoError(t, err)
	return client, fs
}

func TestClient_InitAddCommit(t *testing.T) {
	ctx := context.Background()
	client, fs := newTestClient(t)

	require.NoError(t, client.Init(ctx))

	t.Run("double init fails", func(t *testing.T) {
		assert.Error(t, client.Init(ctx))
	})

	require.NoError(t, fs.WriteFile(ctx, "/repo/readme.md", []byte("hello\n")))

	t.Run("status shows the untracked file", func(t *testing.T) {
		entries, err := client.Status(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "readme.md", entries[0].Path)
	})

	require.NoError(t, client.Add(ctx, "readme.md"))

	hash, err := client.Commit(ctx, CommitOptions{Message: "first"})
	require.NoError(t, err)
	assert.Len(t, hash, 40)

	t.Run("log returns the commit with the configured identity", func(t *testing.T) {
		entries, err := client.Log(ctx, 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "first", entries[0].Message)
		assert.Equal(t, "tester", entries[0].Author)
		assert.Equal(t, "tester@example.com", entries[0].Email)
	})

	t.Run("status is clean after commit", func(t *testing.T) {
		entries, err := client.Status(ctx)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestClient_LogLimit(t *testing.T) {
	ctx := context.Background()
	client, fs := newTestClient(t)
	require.NoError(t, client.Init(ctx))

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, fs.WriteFile(ctx, "/repo/"+name, []byte(name)))
		require.NoError(t, client.Add(ctx, name))
		_, err := client.Commit(ctx, CommitOptions{Message: "add " + name})
		require.NoError(t, err)
	}

	entries, err := client.Log(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "add c", entries[0].Message)
}

func TestClient_BranchesAndCheckout(t *testing.T) {
	ctx := context.Background()
	client, fs := newTestClient(t)
	require.NoError(t, client.Init(ctx))
	require.NoError(t, fs.WriteFile(ctx, "/repo/f", []byte("x")))
	require.NoError(t, client.Add(ctx, "f"))
	_, err := client.Commit(ctx, CommitOptions{Message: "base"})
	require.NoError(t, err)

	require.NoError(t, client.CreateBranch(ctx, "feature"))

	current, names, err := client.Branches(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "feature")
	assert.NotEqual(t, "feature", current)

	require.NoError(t, client.Checkout(ctx, "feature", false))
	current, _, err = client.Branches(ctx)
	require.NoError(t, err)
	assert.Equal(t, "feature", current)
}

func TestClient_DiffRefs(t *testing.T) {
	ctx := context.Background()
	client, fs := newTestClient(t)
	require.NoError(t, client.Init(ctx))

	require.NoError(t, fs.WriteFile(ctx, "/repo/kept", []byte("1")))
	require.NoError(t, fs.WriteFile(ctx, "/repo/gone", []byte("1")))
	require.NoError(t, client.Add(ctx, "."))
	first, err := client.Commit(ctx, CommitOptions{Message: "first"})
	require.NoError(t, err)

	require.NoError(t, fs.WriteFile(ctx, "/repo/kept", []byte("2")))
	require.NoError(t, fs.WriteFile(ctx, "/repo/fresh", []byte("1")))
	require.NoError(t, fs.Remove(ctx, "/repo/gone"))
	require.NoError(t, client.Add(ctx, "."))
	second, err := client.Commit(ctx, CommitOptions{Message: "second"})
	require.NoError(t, err)

	entries, err := client.DiffRefs(ctx, first, second)
	require.NoError(t, err)

	byPath := map[string]string{}
	for _, e := range entries {
		byPath[e.Path] = e.Action
	}
	assert.Equal(t, "A", byPath["fresh"])
	assert.Equal(t, "D", byPath["gone"])
	assert.Equal(t, "M", byPath["kept"])
}

func TestClient_DiffWorktree(t *testing.T) {
	ctx := context.Background()
	client, fs := newTestClient(t)
	require.NoError(t, client.Init(ctx))
	require.NoError(t, fs.WriteFile(ctx, "/repo/f", []byte("1")))
	require.NoError(t, client.Add(ctx, "f"))
	_, err := client.Commit(ctx, CommitOptions{Message: "base"})
	require.NoError(t, err)

	require.NoError(t, fs.WriteFile(ctx, "/repo/f", []byte("2")))
	require.NoError(t, fs.WriteFile(ctx, "/repo/new", []byte("x")))

	entries, err := client.DiffWorktree(ctx)
	require.NoError(t, err)

	byPath := map[string]string{}
	for _, e := range entries {
		byPath[e.Path] = e.Action
	}
	assert.Equal(t, "M", byPath["f"])
	assert.Equal(t, "A", byPath["new"])
}

func TestClient_Stash(t *testing.T) {
	client, _ := newTestClient(t)
	assert.ErrorIs(t, client.Stash(context.Background()), ErrStashUnsupported)
}

func TestNewClient_RequiresAferoBackend(t *testing.T) {
	_, err := NewClient(foreignFS{}, "/repo", Identity{})
	assert.Error(t, err)
}

type foreignFS struct {
	vfs.FileSystem
}
