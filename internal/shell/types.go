// Package shell implements the virtual command-line interpreter: a parser
// for a miniature shell grammar, a registry of POSIX-style commands, and an
// executor that threads pipes, redirects, and logical operators over an
// in-memory filesystem.
package shell

import "context"

// Operator connects a parsed command to the next one in a chain.
type Operator string

const (
	// OpNone marks the final element of a chain.
	OpNone Operator = ""
	OpAnd  Operator = "&&"
	OpOr   Operator = "||"
	OpPipe Operator = "|"
	OpSeq  Operator = ";"
)

// RedirectMode selects how redirected stdout is written to the target file.
type RedirectMode int

const (
	RedirectOverwrite RedirectMode = iota
	RedirectAppend
)

// Redirect sends a command's stdout to a file instead of the caller.
type Redirect struct {
	Mode   RedirectMode
	Target string
}

// HeredocWrite is the internal rewrite of a `cat > path << DELIM` block.
// It is a distinguished variant handled by the parser/executor pair and is
// never registered as a public command.
type HeredocWrite struct {
	Path string
	Body string
	Mode RedirectMode
}

// ParsedCommand is one command segment of a chain. Name is empty only for
// a blank segment, which executes as a no-op with exit code 0.
type ParsedCommand struct {
	Name     string
	Args     []string
	Redirect *Redirect
	Heredoc  *HeredocWrite
}

// ChainEntry pairs a parsed command with the operator connecting it to the
// next command. The final entry carries OpNone.
type ChainEntry struct {
	Cmd ParsedCommand
	Op  Operator
}

// Result is the outcome of executing a command or a whole chain.
// ExitCode 0 signals success; ExitCodeNotFound means the command name could
// not be resolved. NewCwd is set only by a successful directory change.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	NewCwd   string
}

// ExitCodeNotFound is returned when a command name is not in the registry.
const ExitCodeNotFound = 127

// Command is the contract every shell command implements. Commands are
// stateless: the current working directory is owned by the executor and
// passed by value into each call, and collaborators (filesystem, git) are
// constructor-injected.
type Command interface {
	Name() string
	Description() string
	Usage() string
	Execute(ctx context.Context, args []string, cwd string, stdin string) Result
}

// Hidden is an optional capability: commands reporting true are excluded
// from Registry.List and tab completion but still dispatchable by name.
type Hidden interface {
	Hidden() bool
}

// OK builds a successful result carrying stdout.
func OK(stdout string) Result {
	return Result{ExitCode: 0, Stdout: stdout}
}

// Fail builds a failed result carrying stderr.
func Fail(exitCode int, stderr string) Result {
	return Result{ExitCode: exitCode, Stderr: stderr}
}
