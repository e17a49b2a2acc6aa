package shell

import (
	"regexp"
	"strings"
	"unicode"
)

type parseState int

const (
	stateOutside parseState = iota
	stateSingleQuote
	stateDoubleQuote
)

// heredocRe matches the opening line of the one heredoc form the shell
// supports: cat [>|>>] <path> << ['"]DELIM['"], followed by body lines.
// Heredoc detection runs before generic tokenization because the body may
// contain characters that look like operators.
var heredocRe = regexp.MustCompile(`^\s*cat\s+(>>?)\s*([^\s<]+)\s*<<\s*['"]?([A-Za-z0-9_]+)['"]?[ \t]*\n`)

// fdRedirectRe matches bare file-descriptor redirects (2>/dev/null, 2>&1,
// 1>/dev/null, with or without a space). The virtual shell has no
// stderr-as-fd concept, so these are stripped before tokenization.
var fdRedirectRe = regexp.MustCompile(`\s*(?:[12]>\s*/dev/null|2>&1)`)

// StripFdRedirects removes bare fd redirects from a raw command line.
// All other redirect forms pass through untouched, so the function is
// idempotent on inputs without fd-redirects.
func StripFdRedirects(raw string) string {
	return fdRedirectRe.ReplaceAllString(raw, "")
}

// ParseCommand parses a single command segment. When the input contains
// operators, only the first segment is returned.
func ParseCommand(input string) ParsedCommand {
	return ParseCompoundCommand(input)[0].Cmd
}

// ParseCompoundCommand turns one logical command line into an ordered chain
// of commands. The final entry always carries OpNone.
//
// Quoting rules: single quotes suppress everything including backslashes;
// double quotes suppress splitting but keep escape processing; an unquoted
// backslash escapes the next character. Unterminated quotes are accepted
// as literal text rather than rejected.
func ParseCompoundCommand(input string) []ChainEntry {
	if hd, ok := detectHeredoc(input); ok {
		return []ChainEntry{{Cmd: ParsedCommand{Heredoc: hd}, Op: OpNone}}
	}

	var (
		entries  []ChainEntry
		tokens   []string
		cur      strings.Builder
		redirect *Redirect
	)

	flushToken := func() {
		if cur.Len() == 0 {
			return
		}
		tok := cur.String()
		cur.Reset()
		if redirect != nil && redirect.Target == "" {
			redirect.Target = tok
			return
		}
		tokens = append(tokens, tok)
	}

	finishSegment := func(op Operator) {
		cmd := ParsedCommand{}
		if len(tokens) > 0 {
			cmd.Name = tokens[0]
			cmd.Args = tokens[1:]
		}
		if redirect != nil && redirect.Target != "" {
			cmd.Redirect = redirect
		}
		entries = append(entries, ChainEntry{Cmd: cmd, Op: op})
		tokens = nil
		redirect = nil
	}

	runes := []rune(input)
	state := stateOutside
	escaped := false

	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		switch state {
		case stateSingleQuote:
			if ch == '\'' {
				state = stateOutside
			} else {
				cur.WriteRune(ch)
			}

		case stateDoubleQuote:
			if escaped {
				if ch != '\\' && ch != '"' {
					cur.WriteRune('\\')
				}
				cur.WriteRune(ch)
				escaped = false
			} else if ch == '"' {
				state = stateOutside
			} else if ch == '\\' {
				escaped = true
			} else {
				cur.WriteRune(ch)
			}

		case stateOutside:
			if escaped {
				cur.WriteRune(ch)
				escaped = false
				continue
			}
			switch {
			case ch == '\\':
				escaped = true
			case ch == '\'':
				state = stateSingleQuote
			case ch == '"':
				state = stateDoubleQuote
			case unicode.IsSpace(ch):
				flushToken()
			case ch == ';':
				flushToken()
				finishSegment(OpSeq)
			case ch == '|':
				flushToken()
				if i+1 < len(runes) && runes[i+1] == '|' {
					i++
					finishSegment(OpOr)
				} else {
					finishSegment(OpPipe)
				}
			case ch == '&':
				if i+1 < len(runes) && runes[i+1] == '&' {
					flushToken()
					i++
					finishSegment(OpAnd)
				} else {
					// lone & has no meaning here, keep it literal
					cur.WriteRune(ch)
				}
			case ch == '>':
				flushToken()
				mode := RedirectOverwrite
				if i+1 < len(runes) && runes[i+1] == '>' {
					i++
					mode = RedirectAppend
				}
				redirect = &Redirect{Mode: mode}
			default:
				cur.WriteRune(ch)
			}
		}
	}

	flushToken()
	finishSegment(OpNone)

	// A trailing operator leaves an empty segment behind; drop it and
	// restore the final-entry invariant.
	if len(entries) > 1 {
		last := entries[len(entries)-1]
		if last.Cmd.Name == "" && last.Cmd.Redirect == nil {
			entries = entries[:len(entries)-1]
			entries[len(entries)-1].Op = OpNone
		}
	}

	return entries
}

func detectHeredoc(input string) (*HeredocWrite, bool) {
	m := heredocRe.FindStringSubmatch(input)
	if m == nil {
		return nil, false
	}

	mode := RedirectOverwrite
	if m[1] == ">>" {
		mode = RedirectAppend
	}
	delim := m[3]

	rest := input[len(m[0]):]
	lines := strings.Split(rest, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	var body []string
	for _, line := range lines {
		if strings.TrimRight(line, " \t") == delim {
			break
		}
		body = append(body, line)
	}

	content := strings.Join(body, "\n")
	if len(body) > 0 {
		content += "\n"
	}

	return &HeredocWrite{Path: m[2], Body: content, Mode: mode}, true
}
