// Package commands implements the POSIX-style utilities registered with
// the shell. Each command is a self-contained implementation over the
// injected filesystem (and git) collaborators; the current working
// directory is passed by value into every call.
package commands

import (
	"context"
	"strings"

	"github.com/websh-dev/websh/internal/errors"
	"github.com/websh-dev/websh/internal/gitx"
	"github.com/websh-dev/websh/internal/shell"
	"github.com/websh-dev/websh/internal/vfs"
)

// Builtins returns the full command set for a session. The git command is
// included only when a client is supplied.
func Builtins(fs vfs.FileSystem, git gitx.Client) []shell.Command {
	cmds := []shell.Command{
		NewCat(fs),
		NewLs(fs),
		NewCd(fs),
		NewPwd(),
		NewMkdir(fs),
		NewTouch(fs),
		NewRm(fs),
		NewCp(fs),
		NewMv(fs),
		NewEcho(),
		NewGrep(fs),
		NewHead(fs),
		NewTail(fs),
		NewWc(fs),
		NewSort(fs),
		NewUniq(fs),
		NewCut(fs),
		NewSed(fs),
		NewTr(),
		NewFind(fs),
	}
	if git != nil {
		cmds = append(cmds, NewGit(git))
	}
	return cmds
}

// gatherInput collects the text a filter command operates on: the named
// files concatenated, or stdin when no files are given. A missing path
// short-circuits with the standard failure result.
func gatherInput(ctx context.Context, fs vfs.FileSystem, name, cwd string, paths []string, stdin string) (string, *shell.Result) {
	if len(paths) == 0 {
		return stdin, nil
	}
	var b strings.Builder
	for _, p := range paths {
		data, err := fs.ReadFile(ctx, vfs.Resolve(cwd, p))
		if err != nil {
			res := shell.Fail(1, errors.NoSuchFileOrDirectory(name, p))
			return "", &res
		}
		b.Write(data)
	}
	return b.String(), nil
}

// splitLines splits content on newlines, dropping the empty artifact a
// trailing newline leaves behind.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// joinLines rejoins lines with a single trailing newline.
func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
