package shell

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type hiddenStub struct {
	stubCommand
}

func (c *hiddenStub) Hidden() bool { return true }

func namedStub(name string) *stubCommand {
	return &stubCommand{name: name, run: func([]string, string, string) Result { return OK("") }}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(namedStub("ls"))

	cmd, ok := r.Get("ls")
	assert.True(t, ok)
	assert.Equal(t, "ls", cmd.Name())

	_, ok = r.Get("missing")
	assert.False(t, ok)
	assert.True(t, r.Has("ls"))
	assert.False(t, r.Has("missing"))
}

func TestRegistry_LaterRegistrationWins(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubCommand{name: "echo", run: func([]string, string, string) Result {
		return OK("old")
	}})
	r.Register(&stubCommand{name: "echo", run: func([]string, string, string) Result {
		return OK("new")
	}})

	cmd, _ := r.Get("echo")
	res := cmd.Execute(context.Background(), nil, "/", "")
	assert.Equal(t, "new", res.Stdout)
}

func TestRegistry_ListExcludesHidden(t *testing.T) {
	r := NewRegistry()
	r.RegisterAll(namedStub("wc"), namedStub("cat"))
	r.Register(&hiddenStub{stubCommand{name: "ralph"}})

	var names []string
	for _, cmd := range r.List() {
		names = append(names, cmd.Name())
	}
	assert.Equal(t, []string{"cat", "wc"}, names)

	names = nil
	for _, cmd := range r.ListAll() {
		names = append(names, cmd.Name())
	}
	assert.Equal(t, []string{"cat", "ralph", "wc"}, names)
}

func TestRegistry_Completions(t *testing.T) {
	r := NewRegistry()
	r.RegisterAll(namedStub("cat"), namedStub("cd"), namedStub("cp"), namedStub("ls"))
	r.Register(&hiddenStub{stubCommand{name: "cloak"}})

	assert.Equal(t, []string{"cat", "cd", "cp"}, r.Completions("c"))
	assert.Equal(t, []string{"cat"}, r.Completions("ca"))
	assert.Empty(t, r.Completions("zz"))
	assert.Equal(t, []string{"cat", "cd", "cp", "ls"}, r.Completions(""))
}
