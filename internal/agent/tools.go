// Package agent exposes the shell session as a set of model tool calls.
// Every tool is a thin wrapper that builds a command line and runs it
// through the same executor a human session uses, so the agent and the
// user always observe the same filesystem state.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	"github.com/eino-contrib/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"

	"github.com/websh-dev/websh/internal/shell"
)

// Executor is the slice of the shell session the tools consume.
type Executor interface {
	Execute(ctx context.Context, line string) shell.Result
	Cwd() string
}

// Config wires the tool set to a shell session.
type Config struct {
	Executor Executor
	Logger   *zap.Logger
}

// NewTools returns the full tool set for one session: shell, read_file,
// write_file, list_files and search.
func NewTools(_ context.Context, cfg *Config) ([]tool.InvokableTool, error) {
	if cfg == nil || cfg.Executor == nil {
		return nil, errors.New("executor is required")
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	base := &toolBase{exec: cfg.Executor, log: log}
	return []tool.InvokableTool{
		&shellTool{toolBase: base},
		&readFileTool{toolBase: base},
		&writeFileTool{toolBase: base},
		&listFilesTool{toolBase: base},
		&searchTool{toolBase: base},
	}, nil
}

type toolBase struct {
	exec Executor
	log  *zap.Logger
}

// run executes a command line and renders the result as tool output.
// Failures come back as text, not Go errors, so the model can react to
// them the way a person reads a shell error.
func (b *toolBase) run(ctx context.Context, name, line string) (string, error) {
	res := b.exec.Execute(ctx, line)
	b.log.Debug("tool command finished",
		zap.String("tool", name),
		zap.String("command", line),
		zap.Int("exit_code", res.ExitCode))
	if res.ExitCode != 0 {
		msg := res.Stderr
		if msg == "" {
			msg = fmt.Sprintf("command failed with exit code %d", res.ExitCode)
		}
		return "Error: " + strings.TrimRight(msg, "\n"), nil
	}
	out := res.Stdout
	if res.Stderr != "" {
		out = joinSections(out, res.Stderr)
	}
	if out == "" {
		out = "(no output)"
	}
	return out, nil
}

func joinSections(a, b string) string {
	a = strings.TrimRight(a, "\n")
	b = strings.TrimRight(b, "\n")
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "\n" + b
	}
}

func stringProp(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: string(schema.String), Description: desc}
}

func boolProp(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: string(schema.Boolean), Description: desc}
}

func objectSchema(pairs ...orderedmap.Pair[string, *jsonschema.Schema]) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: string(schema.Object),
		Properties: orderedmap.New[string, *jsonschema.Schema](
			orderedmap.WithInitialData[string, *jsonschema.Schema](pairs...),
		),
	}
}

func prop(key string, value *jsonschema.Schema) orderedmap.Pair[string, *jsonschema.Schema] {
	return orderedmap.Pair[string, *jsonschema.Schema]{Key: key, Value: value}
}

// quoteArg wraps an argument in single quotes so the parser treats it
// as one token regardless of spaces. Embedded single quotes are closed,
// backslash-escaped, and reopened.
func quoteArg(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

type shellTool struct {
	*toolBase
}

type shellInput struct {
	Command string `json:"command"`
}

func (t *shellTool) Info(_ context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: "shell",
		Desc: "Run a shell command in the session. Supports pipes, &&, ||, ;, output redirection and heredocs.",
		ParamsOneOf: schema.NewParamsOneOfByJSONSchema(objectSchema(
			prop("command", stringProp("The command line to run.")),
		)),
	}, nil
}

func (t *shellTool) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	in := &shellInput{}
	if err := json.Unmarshal([]byte(argumentsInJSON), in); err != nil {
		return "", fmt.Errorf("extract argument fail: %w", err)
	}
	if strings.TrimSpace(in.Command) == "" {
		return "Error: command is required", nil
	}
	return t.run(ctx, "shell", in.Command)
}

type readFileTool struct {
	*toolBase
}

type readFileInput struct {
	Path string `json:"path"`
}

func (t *readFileTool) Info(_ context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: "read_file",
		Desc: "Read the contents of a file.",
		ParamsOneOf: schema.NewParamsOneOfByJSONSchema(objectSchema(
			prop("path", stringProp("Path of the file to read, relative to the working directory.")),
		)),
	}, nil
}

func (t *readFileTool) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	in := &readFileInput{}
	if err := json.Unmarshal([]byte(argumentsInJSON), in); err != nil {
		return "", fmt.Errorf("extract argument fail: %w", err)
	}
	if in.Path == "" {
		return "Error: path is required", nil
	}
	return t.run(ctx, "read_file", "cat "+quoteArg(in.Path))
}

type writeFileTool struct {
	*toolBase
}

type writeFileInput struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

func (t *writeFileTool) Info(_ context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: "write_file",
		Desc: "Write content to a file, replacing whatever is there.",
		ParamsOneOf: schema.NewParamsOneOfByJSONSchema(objectSchema(
			prop("path", stringProp("Path of the file to write.")),
			prop("content", stringProp("The full content of the file.")),
		)),
	}, nil
}

func (t *writeFileTool) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	in := &writeFileInput{}
	if err := json.Unmarshal([]byte(argumentsInJSON), in); err != nil {
		return "", fmt.Errorf("extract argument fail: %w", err)
	}
	if in.Path == "" {
		return "Error: path is required", nil
	}
	// the heredoc grammar takes the target as a single bare word, so
	// quoting cannot protect these characters
	if strings.ContainsAny(in.Path, " \t\n<") {
		return "Error: unsupported path " + strconv.Quote(in.Path) + ": whitespace and '<' cannot appear in a writable path", nil
	}
	delim := heredocDelimiter(in.Content)
	content := in.Content
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	line := fmt.Sprintf("cat > %s << %s\n%s%s", in.Path, delim, content, delim)
	out, err := t.run(ctx, "write_file", line)
	if err != nil {
		return "", err
	}
	if out == "(no output)" {
		return "Wrote " + in.Path, nil
	}
	return out, nil
}

// heredocDelimiter picks a terminator that does not occur as a line of
// the content itself.
func heredocDelimiter(content string) string {
	delim := "EOF"
	for i := 0; ; i++ {
		hit := false
		for _, line := range strings.Split(content, "\n") {
			if strings.TrimSpace(line) == delim {
				hit = true
				break
			}
		}
		if !hit {
			return delim
		}
		delim = "EOF_" + strconv.Itoa(i)
	}
}

type listFilesTool struct {
	*toolBase
}

type listFilesInput struct {
	Path      string `json:"path"`
	Recursive bool   `json:"recursive"`
}

func (t *listFilesTool) Info(_ context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: "list_files",
		Desc: "List files in a directory. Set recursive to walk the whole tree.",
		ParamsOneOf: schema.NewParamsOneOfByJSONSchema(objectSchema(
			prop("path", stringProp("Directory to list. Defaults to the working directory.")),
			prop("recursive", boolProp("Walk subdirectories as well.")),
		)),
	}, nil
}

func (t *listFilesTool) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	in := &listFilesInput{}
	if err := json.Unmarshal([]byte(argumentsInJSON), in); err != nil {
		return "", fmt.Errorf("extract argument fail: %w", err)
	}
	path := in.Path
	if path == "" {
		path = "."
	}
	if in.Recursive {
		return t.run(ctx, "list_files", "find "+quoteArg(path))
	}
	return t.run(ctx, "list_files", "ls "+quoteArg(path))
}

type searchTool struct {
	*toolBase
}

type searchInput struct {
	Pattern   string `json:"pattern"`
	Path      string `json:"path"`
	Recursive bool   `json:"recursive"`
}

func (t *searchTool) Info(_ context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: "search",
		Desc: "Search file contents for a regular expression, reporting file, line number and matching line.",
		ParamsOneOf: schema.NewParamsOneOfByJSONSchema(objectSchema(
			prop("pattern", stringProp("Regular expression to search for.")),
			prop("path", stringProp("File or directory to search. Defaults to the working directory.")),
			prop("recursive", boolProp("Search directories recursively. Defaults to true when path is a directory.")),
		)),
	}, nil
}

func (t *searchTool) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	in := &searchInput{}
	if err := json.Unmarshal([]byte(argumentsInJSON), in); err != nil {
		return "", fmt.Errorf("extract argument fail: %w", err)
	}
	if in.Pattern == "" {
		return "Error: pattern is required", nil
	}
	path := in.Path
	if path == "" {
		path = "."
		in.Recursive = true
	}
	flags := "-n"
	if in.Recursive {
		flags = "-rn"
	}
	out, err := t.run(ctx, "search", strings.Join([]string{"grep", flags, quoteArg(in.Pattern), quoteArg(path)}, " "))
	if err != nil {
		return "", err
	}
	// grep exits 1 with no output when nothing matched.
	if out == "(no output)" || out == "Error: command failed with exit code 1" {
		return "No matches found", nil
	}
	return out, nil
}
