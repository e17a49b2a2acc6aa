package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/websh-dev/websh/internal/gitx"
	"github.com/websh-dev/websh/internal/shell"
)

type gitCommand struct {
	git gitx.Client
}

// NewGit returns the git porcelain command over an injected client.
func NewGit(git gitx.Client) shell.Command {
	return &gitCommand{git: git}
}

func (c *gitCommand) Name() string        { return "git" }
func (c *gitCommand) Description() string { return "Version control operations" }
func (c *gitCommand) Usage() string {
	return "git <init|add|commit|status|log|branch|checkout|diff|tag|stash|push|pull|fetch> [args]"
}

func (c *gitCommand) Execute(ctx context.Context, args []string, cwd string, stdin string) shell.Result {
	if len(args) == 0 {
		return shell.Fail(1, "git: missing subcommand\nusage: "+c.Usage())
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "init":
		return gitStatusLine(c.git.Init(ctx), "Initialized empty Git repository")
	case "add":
		return c.add(ctx, rest)
	case "commit":
		return c.commit(ctx, rest)
	case "status":
		return c.status(ctx)
	case "log":
		return c.log(ctx, rest)
	case "branch":
		return c.branch(ctx, rest)
	case "checkout":
		return c.checkout(ctx, rest)
	case "diff":
		return c.diff(ctx, rest)
	case "tag":
		return c.tag(ctx, rest)
	case "stash":
		return gitFailure(c.git.Stash(ctx))
	case "push":
		return gitStatusLine(c.git.Push(ctx), "Everything up-to-date")
	case "pull":
		return gitStatusLine(c.git.Pull(ctx), "Already up to date.")
	case "fetch":
		return gitStatusLine(c.git.Fetch(ctx), "")
	default:
		return shell.Fail(1, "git: '"+sub+"' is not a git command")
	}
}

func gitFailure(err error) shell.Result {
	if err != nil {
		return shell.Fail(1, "git: "+err.Error())
	}
	return shell.OK("")
}

func gitStatusLine(err error, line string) shell.Result {
	if err != nil {
		return shell.Fail(1, "git: "+err.Error())
	}
	if line == "" {
		return shell.OK("")
	}
	return shell.OK(line + "\n")
}

func (c *gitCommand) add(ctx context.Context, args []string) shell.Result {
	if len(args) == 0 {
		return shell.Fail(1, "git add: nothing specified, nothing added")
	}
	for _, p := range args {
		if err := c.git.Add(ctx, p); err != nil {
			return shell.Fail(1, "git: "+err.Error())
		}
	}
	return shell.OK("")
}

func (c *gitCommand) commit(ctx context.Context, args []string) shell.Result {
	message := ""
	for i := 0; i < len(args); i++ {
		if args[i] == "-m" {
			if i+1 >= len(args) {
				return shell.Fail(1, "error: switch `m' requires a value")
			}
			message = args[i+1]
			i++
		}
	}
	if message == "" {
		return shell.Fail(1, "error: switch `m' requires a value")
	}
	hash, err := c.git.Commit(ctx, gitx.CommitOptions{Message: message})
	if err != nil {
		return shell.Fail(1, "git: "+err.Error())
	}
	short := hash
	if len(short) > 7 {
		short = short[:7]
	}
	return shell.OK(fmt.Sprintf("[%s] %s\n", short, message))
}

func (c *gitCommand) status(ctx context.Context) shell.Result {
	entries, err := c.git.Status(ctx)
	if err != nil {
		return shell.Fail(1, "git: "+err.Error())
	}
	if len(entries) == 0 {
		return shell.OK("nothing to commit, working tree clean\n")
	}
	var out []string
	for _, e := range entries {
		out = append(out, fmt.Sprintf("%c%c %s", e.Staging, e.Worktree, e.Path))
	}
	return shell.OK(joinLines(out))
}

func (c *gitCommand) log(ctx context.Context, args []string) shell.Result {
	limit := 0
	for i := 0; i < len(args); i++ {
		if args[i] == "-n" && i+1 < len(args) {
			fmt.Sscanf(args[i+1], "%d", &limit)
			i++
		} else if strings.HasPrefix(args[i], "-") {
			fmt.Sscanf(args[i][1:], "%d", &limit)
		}
	}
	entries, err := c.git.Log(ctx, limit)
	if err != nil {
		return shell.Fail(1, "git: "+err.Error())
	}
	var out []string
	for _, e := range entries {
		out = append(out,
			"commit "+e.Hash,
			fmt.Sprintf("Author: %s <%s>", e.Author, e.Email),
			"Date:   "+e.When.Format("Mon Jan 2 15:04:05 2006 -0700"),
			"",
			"    "+e.Message,
			"")
	}
	if len(out) == 0 {
		return shell.OK("")
	}
	return shell.OK(joinLines(out))
}

func (c *gitCommand) branch(ctx context.Context, args []string) shell.Result {
	if len(args) > 0 {
		return gitFailure(c.git.CreateBranch(ctx, args[0]))
	}
	current, names, err := c.git.Branches(ctx)
	if err != nil {
		return shell.Fail(1, "git: "+err.Error())
	}
	var out []string
	for _, name := range names {
		marker := "  "
		if name == current {
			marker = "* "
		}
		out = append(out, marker+name)
	}
	if len(out) == 0 {
		return shell.OK("")
	}
	return shell.OK(joinLines(out))
}

func (c *gitCommand) checkout(ctx context.Context, args []string) shell.Result {
	create := false
	var ref string
	for _, arg := range args {
		if arg == "-b" {
			create = true
			continue
		}
		ref = arg
	}
	if ref == "" {
		return shell.Fail(1, "git checkout: missing branch name")
	}
	if err := c.git.Checkout(ctx, ref, create); err != nil {
		return shell.Fail(1, "git: "+err.Error())
	}
	return shell.OK("Switched to branch '" + ref + "'\n")
}

func (c *gitCommand) diff(ctx context.Context, args []string) shell.Result {
	var entries []gitx.DiffEntry
	var err error
	switch len(args) {
	case 0:
		entries, err = c.git.DiffWorktree(ctx)
	case 2:
		entries, err = c.git.DiffRefs(ctx, args[0], args[1])
	case 1:
		entries, err = c.git.DiffRefs(ctx, args[0], "HEAD")
	default:
		return shell.Fail(1, "git diff: too many arguments")
	}
	if err != nil {
		return shell.Fail(1, "git: "+err.Error())
	}
	var out []string
	for _, e := range entries {
		out = append(out, e.Action+"\t"+e.Path)
	}
	if len(out) == 0 {
		return shell.OK("")
	}
	return shell.OK(joinLines(out))
}

func (c *gitCommand) tag(ctx context.Context, args []string) shell.Result {
	if len(args) > 0 {
		return gitFailure(c.git.CreateTag(ctx, args[0]))
	}
	names, err := c.git.Tags(ctx)
	if err != nil {
		return shell.Fail(1, "git: "+err.Error())
	}
	if len(names) == 0 {
		return shell.OK("")
	}
	return shell.OK(joinLines(names))
}
