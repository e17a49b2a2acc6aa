package shell

import (
	"context"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/websh-dev/websh/internal/errors"
	"github.com/websh-dev/websh/internal/vfs"
)

// Executor walks parsed chains: it resolves commands from the registry,
// threads stdout through pipes, applies redirects, evaluates short-circuit
// operators, and owns the session's only mutable state, the current working
// directory. One chain runs start-to-finish before the next is accepted;
// commands never race on cwd.
type Executor struct {
	fs       vfs.FileSystem
	registry *Registry
	cwd      string
	log      *zap.Logger
	session  string
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithLogger attaches a structured logger; the default discards everything.
func WithLogger(log *zap.Logger) ExecutorOption {
	return func(e *Executor) { e.log = log }
}

// WithWorkingDir sets the initial working directory (default "/").
func WithWorkingDir(cwd string) ExecutorOption {
	return func(e *Executor) { e.cwd = vfs.Resolve("/", cwd) }
}

// NewExecutor creates an executor over the given filesystem and registry.
func NewExecutor(fs vfs.FileSystem, registry *Registry, opts ...ExecutorOption) *Executor {
	e := &Executor{
		fs:       fs,
		registry: registry,
		cwd:      "/",
		log:      zap.NewNop(),
		session:  uuid.NewString(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With(zap.String("session", e.session))
	return e
}

// Cwd returns the current working directory.
func (e *Executor) Cwd() string { return e.cwd }

// Registry returns the command registry backing this session.
func (e *Executor) Registry() *Registry { return e.registry }

// Execute is the single outward entry point: it strips fd redirects,
// parses the line, and runs the resulting chain. Failures surface as a
// non-zero exit code plus stderr text, never as an error value.
// Heredoc lines are exempt from stripping: the body is literal text and
// may legitimately contain fd-redirect lookalikes.
func (e *Executor) Execute(ctx context.Context, line string) Result {
	if !heredocRe.MatchString(line) {
		line = StripFdRedirects(line)
	}
	entries := ParseCompoundCommand(line)
	return e.ExecuteCompoundCommands(ctx, entries)
}

// ExecuteCompoundCommands walks a parsed chain.
func (e *Executor) ExecuteCompoundCommands(ctx context.Context, entries []ChainEntry) Result {
	var last Result
	prevOp := OpNone
	pipeInput := ""

	for _, entry := range entries {
		if skip(prevOp, last) {
			prevOp = entry.Op
			pipeInput = ""
			continue
		}

		res := e.ExecuteSingleCommand(ctx, entry.Cmd, pipeInput)
		e.log.Debug("command executed",
			zap.String("name", entry.Cmd.Name),
			zap.Int("exitCode", res.ExitCode))

		if entry.Op == OpPipe {
			// output is consumed downstream; keep exit code and stderr
			// for chain bookkeeping
			pipeInput = res.Stdout
			res.Stdout = ""
		} else {
			pipeInput = ""
		}

		if prevOp == OpSeq {
			last = Result{
				ExitCode: res.ExitCode,
				Stdout:   joinNonEmpty(last.Stdout, res.Stdout),
				Stderr:   joinNonEmpty(last.Stderr, res.Stderr),
				NewCwd:   res.NewCwd,
			}
		} else {
			last = res
		}

		prevOp = entry.Op
	}

	return last
}

// ExecuteSingleCommand runs one parsed command: dispatch, cwd mutation on a
// successful directory change, then redirect application.
func (e *Executor) ExecuteSingleCommand(ctx context.Context, cmd ParsedCommand, stdin string) Result {
	if cmd.Heredoc != nil {
		return e.writeHeredoc(ctx, cmd.Heredoc)
	}
	if cmd.Name == "" {
		return Result{}
	}

	impl, ok := e.registry.Get(cmd.Name)
	if !ok {
		return Fail(ExitCodeNotFound, errors.CommandNotFound(cmd.Name))
	}

	res := impl.Execute(ctx, cmd.Args, e.cwd, stdin)

	// cwd updates are visible to the next command in the same chain
	if res.ExitCode == 0 && res.NewCwd != "" {
		e.cwd = res.NewCwd
	}

	if cmd.Redirect != nil && res.ExitCode == 0 {
		res = e.applyRedirect(ctx, cmd.Redirect, res)
	}

	return res
}

func (e *Executor) applyRedirect(ctx context.Context, r *Redirect, res Result) Result {
	target := vfs.Resolve(e.cwd, r.Target)
	content := res.Stdout

	if r.Mode == RedirectAppend {
		existing, err := e.fs.ReadFile(ctx, target)
		if err != nil && !os.IsNotExist(err) {
			return Fail(1, errors.CannotRedirect(r.Target, err))
		}
		content = string(existing) + content
	}

	if err := e.fs.WriteFile(ctx, target, []byte(content)); err != nil {
		return Fail(1, errors.CannotRedirect(r.Target, err))
	}

	// output went to the file, not the caller
	res.Stdout = ""
	return res
}

func (e *Executor) writeHeredoc(ctx context.Context, hd *HeredocWrite) Result {
	target := vfs.Resolve(e.cwd, hd.Path)
	content := hd.Body

	if hd.Mode == RedirectAppend {
		existing, err := e.fs.ReadFile(ctx, target)
		if err != nil && !os.IsNotExist(err) {
			return Fail(1, errors.CannotRedirect(hd.Path, err))
		}
		content = string(existing) + content
	}

	if err := e.fs.WriteFile(ctx, target, []byte(content)); err != nil {
		return Fail(1, errors.CannotRedirect(hd.Path, err))
	}
	return Result{}
}

// skip evaluates the short-circuit condition: the tie-break is the previous
// command's operator against the running result.
func skip(prevOp Operator, last Result) bool {
	switch prevOp {
	case OpAnd:
		return last.ExitCode != 0
	case OpOr:
		return last.ExitCode == 0
	default:
		return false
	}
}

func joinNonEmpty(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + "\n" + b
}
