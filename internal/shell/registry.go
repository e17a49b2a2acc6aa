package shell

import (
	"sort"
	"strings"
)

// Registry owns the name-to-command mapping used for dispatch. It is built
// once per session; a later registration under an existing name replaces
// the earlier one.
type Registry struct {
	commands map[string]Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds a command, overwriting any previous one with the same name.
func (r *Registry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

// RegisterAll registers every command in order.
func (r *Registry) RegisterAll(cmds ...Command) {
	for _, cmd := range cmds {
		r.Register(cmd)
	}
}

// Get looks a command up by name.
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Has reports whether a command with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.commands[name]
	return ok
}

// List returns registered commands sorted by name, excluding hidden ones.
func (r *Registry) List() []Command {
	cmds := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		if h, ok := cmd.(Hidden); ok && h.Hidden() {
			continue
		}
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })
	return cmds
}

// ListAll returns every registered command, hidden ones included, sorted by
// name.
func (r *Registry) ListAll() []Command {
	cmds := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })
	return cmds
}

// Completions returns the sorted visible command names matching prefix,
// for interactive tab completion.
func (r *Registry) Completions(prefix string) []string {
	var names []string
	for name, cmd := range r.commands {
		if h, ok := cmd.(Hidden); ok && h.Hidden() {
			continue
		}
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
