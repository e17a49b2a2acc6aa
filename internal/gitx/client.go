// Package gitx wraps go-git into the narrow porcelain surface the shell's
// git command consumes. The repository lives on the same in-memory
// filesystem as the rest of the session.
package gitx

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/go-git/go-git/v5/utils/merkletrie"

	"github.com/websh-dev/websh/internal/vfs"
)

// ErrStashUnsupported is returned for stash operations, which the
// in-memory backend does not implement.
var ErrStashUnsupported = errors.New("stash is not supported by the in-memory git backend")

// Identity is the commit author used when the caller supplies none.
type Identity struct {
	Name  string
	Email string
}

// DefaultIdentity is the fixed fallback identity.
var DefaultIdentity = Identity{Name: "websh", Email: "websh@localhost"}

// CommitOptions carries the commit message and an optional author override.
type CommitOptions struct {
	Message string
	Author  Identity
}

// StatusEntry is one path in the worktree status.
type StatusEntry struct {
	Path     string
	Staging  byte
	Worktree byte
}

// LogEntry is one commit in the history walk.
type LogEntry struct {
	Hash    string
	Author  string
	Email   string
	When    time.Time
	Message string
}

// DiffEntry classifies one changed path: "A" added, "D" removed,
// "M" modified.
type DiffEntry struct {
	Action string
	Path   string
}

// Client is the porcelain surface consumed by the shell's git command.
type Client interface {
	Init(ctx context.Context) error
	Add(ctx context.Context, path string) error
	Commit(ctx context.Context, opts CommitOptions) (string, error)
	Status(ctx context.Context) ([]StatusEntry, error)
	Log(ctx context.Context, limit int) ([]LogEntry, error)
	Branches(ctx context.Context) (current string, names []string, err error)
	CreateBranch(ctx context.Context, name string) error
	Checkout(ctx context.Context, ref string, create bool) error
	DiffWorktree(ctx context.Context) ([]DiffEntry, error)
	DiffRefs(ctx context.Context, from, to string) ([]DiffEntry, error)
	Tags(ctx context.Context) ([]string, error)
	CreateTag(ctx context.Context, name string) error
	Stash(ctx context.Context) error
	Push(ctx context.Context) error
	Pull(ctx context.Context) error
	Fetch(ctx context.Context) error
}

type client struct {
	root     billy.Filesystem
	dir      string
	identity Identity
}

// NewClient builds a go-git backed client over the session filesystem,
// rooted at dir (the repository worktree).
func NewClient(fs vfs.FileSystem, dir string, identity Identity) (Client, error) {
	backend, ok := vfs.AferoBackend(fs)
	if !ok {
		return nil, errors.New("gitx: filesystem does not expose an afero backend")
	}
	if identity.Name == "" {
		identity = DefaultIdentity
	}
	return &client{root: newBillyFS(backend), dir: path.Clean(dir), identity: identity}, nil
}

func (c *client) storage() (*filesystem.Storage, billy.Filesystem, error) {
	wt, err := c.root.Chroot(c.dir)
	if err != nil {
		return nil, nil, err
	}
	dot, err := c.root.Chroot(path.Join(c.dir, git.GitDirName))
	if err != nil {
		return nil, nil, err
	}
	return filesystem.NewStorage(dot, cache.NewObjectLRUDefault()), wt, nil
}

func (c *client) open() (*git.Repository, error) {
	st, wt, err := c.storage()
	if err != nil {
		return nil, err
	}
	repo, err := git.Open(st, wt)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("not a git repository: %s", c.dir)
	}
	return repo, err
}

func (c *client) worktree() (*git.Worktree, error) {
	repo, err := c.open()
	if err != nil {
		return nil, err
	}
	return repo.Worktree()
}

func (c *client) Init(_ context.Context) error {
	st, wt, err := c.storage()
	if err != nil {
		return err
	}
	_, err = git.Init(st, wt)
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		return fmt.Errorf("repository already exists: %s", c.dir)
	}
	return err
}

func (c *client) Add(_ context.Context, p string) error {
	w, err := c.worktree()
	if err != nil {
		return err
	}
	if p == "." || p == "" {
		return w.AddWithOptions(&git.AddOptions{All: true})
	}
	_, err = w.Add(p)
	return err
}

func (c *client) Commit(_ context.Context, opts CommitOptions) (string, error) {
	w, err := c.worktree()
	if err != nil {
		return "", err
	}
	author := opts.Author
	if author.Name == "" {
		author = c.identity
	}
	hash, err := w.Commit(opts.Message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  author.Name,
			Email: author.Email,
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", err
	}
	return hash.String(), nil
}

func (c *client) Status(_ context.Context) ([]StatusEntry, error) {
	w, err := c.worktree()
	if err != nil {
		return nil, err
	}
	status, err := w.Status()
	if err != nil {
		return nil, err
	}
	entries := make([]StatusEntry, 0, len(status))
	for p, fs := range status {
		entries = append(entries, StatusEntry{
			Path:     p,
			Staging:  byte(fs.Staging),
			Worktree: byte(fs.Worktree),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

func (c *client) Log(_ context.Context, limit int) ([]LogEntry, error) {
	repo, err := c.open()
	if err != nil {
		return nil, err
	}
	iter, err := repo.Log(&git.LogOptions{})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var entries []LogEntry
	err = iter.ForEach(func(commit *object.Commit) error {
		if limit > 0 && len(entries) >= limit {
			return errLogDone
		}
		entries = append(entries, LogEntry{
			Hash:    commit.Hash.String(),
			Author:  commit.Author.Name,
			Email:   commit.Author.Email,
			When:    commit.Author.When,
			Message: strings.TrimRight(commit.Message, "\n"),
		})
		return nil
	})
	if err != nil && !errors.Is(err, errLogDone) {
		return nil, err
	}
	return entries, nil
}

var errLogDone = errors.New("log walk done")

func (c *client) Branches(_ context.Context) (string, []string, error) {
	repo, err := c.open()
	if err != nil {
		return "", nil, err
	}

	current := ""
	if head, err := repo.Head(); err == nil && head.Name().IsBranch() {
		current = head.Name().Short()
	}

	iter, err := repo.Branches()
	if err != nil {
		return "", nil, err
	}
	var names []string
	_ = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	sort.Strings(names)
	return current, names, nil
}

func (c *client) CreateBranch(_ context.Context, name string) error {
	repo, err := c.open()
	if err != nil {
		return err
	}
	head, err := repo.Head()
	if err != nil {
		return err
	}
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), head.Hash())
	return repo.Storer.SetReference(ref)
}

func (c *client) Checkout(_ context.Context, ref string, create bool) error {
	w, err := c.worktree()
	if err != nil {
		return err
	}
	return w.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(ref),
		Create: create,
	})
}

// DiffWorktree compares the working tree against HEAD via the status
// matrix, which avoids a double tree walk.
func (c *client) DiffWorktree(ctx context.Context) ([]DiffEntry, error) {
	status, err := c.Status(ctx)
	if err != nil {
		return nil, err
	}
	var entries []DiffEntry
	for _, s := range status {
		code := s.Worktree
		if code == ' ' {
			code = s.Staging
		}
		switch code {
		case '?', 'A':
			entries = append(entries, DiffEntry{Action: "A", Path: s.Path})
		case 'M', 'R', 'C':
			entries = append(entries, DiffEntry{Action: "M", Path: s.Path})
		case 'D':
			entries = append(entries, DiffEntry{Action: "D", Path: s.Path})
		}
	}
	return entries, nil
}

// DiffRefs walks both trees and classifies each changed path, skipping
// unchanged and directory-only entries.
func (c *client) DiffRefs(_ context.Context, from, to string) ([]DiffEntry, error) {
	repo, err := c.open()
	if err != nil {
		return nil, err
	}

	fromTree, err := resolveTree(repo, from)
	if err != nil {
		return nil, err
	}
	toTree, err := resolveTree(repo, to)
	if err != nil {
		return nil, err
	}

	changes, err := object.DiffTree(fromTree, toTree)
	if err != nil {
		return nil, err
	}

	var entries []DiffEntry
	for _, change := range changes {
		action, err := change.Action()
		if err != nil {
			return nil, err
		}
		switch action {
		case merkletrie.Insert:
			entries = append(entries, DiffEntry{Action: "A", Path: change.To.Name})
		case merkletrie.Delete:
			entries = append(entries, DiffEntry{Action: "D", Path: change.From.Name})
		case merkletrie.Modify:
			entries = append(entries, DiffEntry{Action: "M", Path: change.To.Name})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

func resolveTree(repo *git.Repository, rev string) (*object.Tree, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("unknown revision %q: %w", rev, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, err
	}
	return commit.Tree()
}

func (c *client) Tags(_ context.Context) ([]string, error) {
	repo, err := c.open()
	if err != nil {
		return nil, err
	}
	iter, err := repo.Tags()
	if err != nil {
		return nil, err
	}
	var names []string
	_ = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	sort.Strings(names)
	return names, nil
}

func (c *client) CreateTag(_ context.Context, name string) error {
	repo, err := c.open()
	if err != nil {
		return err
	}
	head, err := repo.Head()
	if err != nil {
		return err
	}
	_, err = repo.CreateTag(name, head.Hash(), nil)
	return err
}

func (c *client) Stash(_ context.Context) error {
	return ErrStashUnsupported
}

func (c *client) Push(_ context.Context) error {
	repo, err := c.open()
	if err != nil {
		return err
	}
	err = repo.Push(&git.PushOptions{})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	return err
}

func (c *client) Pull(_ context.Context) error {
	w, err := c.worktree()
	if err != nil {
		return err
	}
	err = w.Pull(&git.PullOptions{})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	return err
}

func (c *client) Fetch(_ context.Context) error {
	repo, err := c.open()
	if err != nil {
		return err
	}
	err = repo.Fetch(&git.FetchOptions{})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	return err
}
