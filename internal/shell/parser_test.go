package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand_Tokenization(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ParsedCommand
	}{
		{
			name:  "simple command with args",
			input: "echo hello world",
			want:  ParsedCommand{Name: "echo", Args: []string{"hello", "world"}},
		},
		{
			name:  "collapses runs of whitespace",
			input: "  ls   -l   /tmp ",
			want:  ParsedCommand{Name: "ls", Args: []string{"-l", "/tmp"}},
		},
		{
			name:  "single quotes preserve spaces",
			input: "echo 'hello world'",
			want:  ParsedCommand{Name: "echo", Args: []string{"hello world"}},
		},
		{
			name:  "single quotes suppress backslash",
			input: `echo 'a\nb'`,
			want:  ParsedCommand{Name: "echo", Args: []string{`a\nb`}},
		},
		{
			name:  "double quotes preserve spaces",
			input: `echo "hello world"`,
			want:  ParsedCommand{Name: "echo", Args: []string{"hello world"}},
		},
		{
			name:  "escaped quote inside double quotes",
			input: `echo "say \"hi\""`,
			want:  ParsedCommand{Name: "echo", Args: []string{`say "hi"`}},
		},
		{
			name:  "backslash keeps other chars inside double quotes",
			input: `echo "a\nb"`,
			want:  ParsedCommand{Name: "echo", Args: []string{`a\nb`}},
		},
		{
			name:  "unquoted backslash escapes space",
			input: `cat my\ file`,
			want:  ParsedCommand{Name: "cat", Args: []string{"my file"}},
		},
		{
			name:  "quotes splice into one token",
			input: `echo a'b c'd`,
			want:  ParsedCommand{Name: "echo", Args: []string{"ab cd"}},
		},
		{
			name:  "operator characters inside quotes stay literal",
			input: `echo 'a && b | c'`,
			want:  ParsedCommand{Name: "echo", Args: []string{"a && b | c"}},
		},
		{
			name:  "unterminated quote is accepted as literal",
			input: "echo 'unclosed",
			want:  ParsedCommand{Name: "echo", Args: []string{"unclosed"}},
		},
		{
			name:  "empty input",
			input: "",
			want:  ParsedCommand{},
		},
		{
			name:  "whitespace only input",
			input: "   ",
			want:  ParsedCommand{},
		},
		{
			name:  "lone ampersand stays literal",
			input: "echo a&b",
			want:  ParsedCommand{Name: "echo", Args: []string{"a&b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCommand(tt.input)
			assert.Equal(t, tt.want.Name, got.Name)
			assert.Equal(t, tt.want.Args, got.Args)
		})
	}
}

func TestParseCommand_Redirects(t *testing.T) {
	t.Run("overwrite redirect", func(t *testing.T) {
		got := ParseCommand("echo hi > out.txt")
		assert.Equal(t, "echo", got.Name)
		assert.Equal(t, []string{"hi"}, got.Args)
		if assert.NotNil(t, got.Redirect) {
			assert.Equal(t, RedirectOverwrite, got.Redirect.Mode)
			assert.Equal(t, "out.txt", got.Redirect.Target)
		}
	})

	t.Run("append redirect", func(t *testing.T) {
		got := ParseCommand("echo hi >> out.txt")
		if assert.NotNil(t, got.Redirect) {
			assert.Equal(t, RedirectAppend, got.Redirect.Mode)
			assert.Equal(t, "out.txt", got.Redirect.Target)
		}
	})

	t.Run("redirect without spaces", func(t *testing.T) {
		got := ParseCommand("echo hi>out.txt")
		assert.Equal(t, []string{"hi"}, got.Args)
		if assert.NotNil(t, got.Redirect) {
			assert.Equal(t, "out.txt", got.Redirect.Target)
		}
	})

	t.Run("redirect target is not an argument", func(t *testing.T) {
		got := ParseCommand("ls -l > listing")
		assert.Equal(t, []string{"-l"}, got.Args)
	})
}

func TestParseCompoundCommand_Operators(t *testing.T) {
	tests := []struct {
		name  string
		input string
		names []string
		ops   []Operator
	}{
		{
			name:  "and chain",
			input: "mkdir d && cd d",
			names: []string{"mkdir", "cd"},
			ops:   []Operator{OpAnd, OpNone},
		},
		{
			name:  "or chain",
			input: "cat a || echo missing",
			names: []string{"cat", "echo"},
			ops:   []Operator{OpOr, OpNone},
		},
		{
			name:  "pipe",
			input: "cat a | wc -l",
			names: []string{"cat", "wc"},
			ops:   []Operator{OpPipe, OpNone},
		},
		{
			name:  "sequence",
			input: "echo a; echo b",
			names: []string{"echo", "echo"},
			ops:   []Operator{OpSeq, OpNone},
		},
		{
			name:  "mixed operators longest match first",
			input: "a && b || c | d; e",
			names: []string{"a", "b", "c", "d", "e"},
			ops:   []Operator{OpAnd, OpOr, OpPipe, OpSeq, OpNone},
		},
		{
			name:  "trailing operator drops empty segment",
			input: "echo a &&",
			names: []string{"echo"},
			ops:   []Operator{OpNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := ParseCompoundCommand(tt.input)
			if !assert.Len(t, entries, len(tt.names)) {
				return
			}
			for i, entry := range entries {
				assert.Equal(t, tt.names[i], entry.Cmd.Name)
				assert.Equal(t, tt.ops[i], entry.Op)
			}
		})
	}
}

func TestParseCompoundCommand_FinalOperatorIsNone(t *testing.T) {
	for _, input := range []string{"echo a", "a && b", "a | b | c", "a;"} {
		entries := ParseCompoundCommand(input)
		assert.Equal(t, OpNone, entries[len(entries)-1].Op, "input %q", input)
	}
}

func TestDetectHeredoc(t *testing.T) {
	t.Run("overwrite heredoc", func(t *testing.T) {
		entries := ParseCompoundCommand("cat > notes.txt << EOF\nline one\nline two\nEOF")
		if !assert.Len(t, entries, 1) {
			return
		}
		hd := entries[0].Cmd.Heredoc
		if assert.NotNil(t, hd) {
			assert.Equal(t, "notes.txt", hd.Path)
			assert.Equal(t, "line one\nline two\n", hd.Body)
			assert.Equal(t, RedirectOverwrite, hd.Mode)
		}
	})

	t.Run("append heredoc", func(t *testing.T) {
		entries := ParseCompoundCommand("cat >> notes.txt << 'END'\nmore\nEND")
		hd := entries[0].Cmd.Heredoc
		if assert.NotNil(t, hd) {
			assert.Equal(t, RedirectAppend, hd.Mode)
			assert.Equal(t, "more\n", hd.Body)
		}
	})

	t.Run("body may contain operator characters", func(t *testing.T) {
		entries := ParseCompoundCommand("cat > s.sh << EOF\na && b | c\nEOF")
		hd := entries[0].Cmd.Heredoc
		if assert.NotNil(t, hd) {
			assert.Equal(t, "a && b | c\n", hd.Body)
		}
	})

	t.Run("missing terminator takes the rest of the input", func(t *testing.T) {
		entries := ParseCompoundCommand("cat > f << EOF\nhello\n")
		hd := entries[0].Cmd.Heredoc
		if assert.NotNil(t, hd) {
			assert.Equal(t, "hello\n", hd.Body)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		entries := ParseCompoundCommand("cat > f << EOF\nEOF")
		hd := entries[0].Cmd.Heredoc
		if assert.NotNil(t, hd) {
			assert.Equal(t, "", hd.Body)
		}
	})
}

func TestStripFdRedirects(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ls missing 2>/dev/null", "ls missing"},
		{"ls missing 2> /dev/null", "ls missing"},
		{"cmd 2>&1", "cmd"},
		{"cmd 1>/dev/null", "cmd"},
		{"echo plain", "echo plain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripFdRedirects(tt.input))
	}

	t.Run("idempotent", func(t *testing.T) {
		once := StripFdRedirects("ls x 2>/dev/null && echo ok")
		assert.Equal(t, once, StripFdRedirects(once))
	})
}
