// Package errors centralizes the stderr texts the shell emits, so every
// command reports failures in the same shape.
package errors

import "fmt"

// CommandNotFound is the dispatch failure text paired with exit code 127.
func CommandNotFound(name string) string {
	return fmt.Sprintf("%s: command not found", name)
}

// NoSuchFileOrDirectory is the standard missing-path text. Commands never
// surface raw filesystem errors for absent paths.
func NoSuchFileOrDirectory(command, path string) string {
	return fmt.Sprintf("%s: %s: No such file or directory", command, path)
}

// IsADirectory reports a file operation attempted on a directory.
func IsADirectory(command, path string) string {
	return fmt.Sprintf("%s: %s: Is a directory", command, path)
}

// NotADirectory reports a directory operation attempted on a file.
func NotADirectory(command, path string) string {
	return fmt.Sprintf("%s: %s: Not a directory", command, path)
}

// MissingOperand reports a required positional argument that was not given.
func MissingOperand(command string) string {
	return fmt.Sprintf("%s: missing operand", command)
}

// CannotRedirect converts a redirect write failure into the chain-level
// stderr text; the executor pairs it with exit code 1.
func CannotRedirect(path string, reason error) string {
	return fmt.Sprintf("Cannot redirect to %s: %v", path, reason)
}

// Usage reports an invalid invocation together with the expected form.
func Usage(command, usage string) string {
	return fmt.Sprintf("%s: usage: %s", command, usage)
}
