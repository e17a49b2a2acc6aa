package io

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlushingWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	fw := NewFlushingWriter(&buf)

	n, err := fw.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.Equal(t, 5, n)
	// visible without an explicit Flush
	assert.Equal(t, "hello", buf.String())
}

func TestFlushingWriter_WriteBlock(t *testing.T) {
	t.Run("adds a missing trailing newline", func(t *testing.T) {
		var buf bytes.Buffer
		fw := NewFlushingWriter(&buf)
		assert.NoError(t, fw.WriteBlock("output"))
		assert.Equal(t, "output\n", buf.String())
	})

	t.Run("keeps an existing trailing newline", func(t *testing.T) {
		var buf bytes.Buffer
		fw := NewFlushingWriter(&buf)
		assert.NoError(t, fw.WriteBlock("output\n"))
		assert.Equal(t, "output\n", buf.String())
	})

	t.Run("empty block writes nothing", func(t *testing.T) {
		var buf bytes.Buffer
		fw := NewFlushingWriter(&buf)
		assert.NoError(t, fw.WriteBlock(""))
		assert.Zero(t, buf.Len())
	})
}
