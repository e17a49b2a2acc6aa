// Package io holds terminal output helpers for the interactive shell.
package io

import (
	"bufio"
	"io"
	"strings"
)

// FlushingWriter wraps an io.Writer and flushes after each write, so
// command output appears before the next prompt is drawn.
type FlushingWriter struct {
	w       io.Writer
	flusher interface{ Flush() error }
}

// NewFlushingWriter wraps w. A writer that already supports flushing is
// used as-is; anything else is wrapped in a bufio.Writer.
func NewFlushingWriter(w io.Writer) *FlushingWriter {
	fw := &FlushingWriter{w: w}
	if f, ok := w.(interface{ Flush() error }); ok {
		fw.flusher = f
		return fw
	}
	bw := bufio.NewWriter(w)
	fw.w = bw
	fw.flusher = bw
	return fw
}

func (fw *FlushingWriter) Write(p []byte) (n int, err error) {
	n, err = fw.w.Write(p)
	if err != nil {
		return n, err
	}
	if fw.flusher != nil {
		if flushErr := fw.flusher.Flush(); flushErr != nil {
			return n, flushErr
		}
	}
	return n, nil
}

// WriteBlock writes s followed by a newline unless s already ends with
// one, keeping prompts on their own line after command output.
func (fw *FlushingWriter) WriteBlock(s string) error {
	if s == "" {
		return nil
	}
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err := io.WriteString(fw, s)
	return err
}

// Flush forces out any buffered data.
func (fw *FlushingWriter) Flush() error {
	if fw.flusher != nil {
		return fw.flusher.Flush()
	}
	return nil
}
