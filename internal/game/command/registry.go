package command

import (
	"fmt"
	"sort"
)

// Registry maps command names and aliases to command definitions.
type Registry struct {
	commands map[string]*Definition // canonical name → definition
	aliases  map[string]string      // alias → canonical name
}

// NewRegistry creates a Registry populated with the given definitions.
//
// Precondition: No two definitions may share a canonical name or alias.
// Postcondition: Returns a Registry or an error on name/alias collisions.
func NewRegistry(defs []Definition) (*Registry, error) {
	r := &Registry{
		commands: make(map[string]*Definition, len(defs)),
		aliases:  make(map[string]string),
	}

	for i := range defs {
		def := &defs[i]
		if _, exists := r.commands[def.Name]; exists {
			return nil, fmt.Errorf("duplicate command name: %q", def.Name)
		}
		if _, exists := r.aliases[def.Name]; exists {
			return nil, fmt.Errorf("command name %q conflicts with an existing alias", def.Name)
		}
		r.commands[def.Name] = def

		for _, alias := range def.Aliases {
			if _, exists := r.commands[alias]; exists {
				return nil, fmt.Errorf("alias %q conflicts with command name %q", alias, alias)
			}
			if existing, exists := r.aliases[alias]; exists {
				return nil, fmt.Errorf("duplicate alias %q: used by %q and %q", alias, existing, def.Name)
			}
			r.aliases[alias] = def.Name
		}
	}

	return r, nil
}

// DefaultRegistry creates a Registry with all built-in commands.
//
// Postcondition: Returns a Registry with all built-in commands registered.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinCommands())
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Resolve looks up a command by name or alias.
//
// Postcondition: Returns (definition, true) if found, or (nil, false).
func (r *Registry) Resolve(input string) (*Definition, bool) {
	if def, ok := r.commands[input]; ok {
		return def, true
	}
	if canonical, ok := r.aliases[input]; ok {
		return r.commands[canonical], true
	}
	return nil, false
}

// Commands returns all registered definitions sorted by name.
func (r *Registry) Commands() []*Definition {
	result := make([]*Definition, 0, len(r.commands))
	for _, def := range r.commands {
		result = append(result, def)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// CommandsByCategory returns definitions grouped by category, each group
// sorted by name.
func (r *Registry) CommandsByCategory() map[string][]*Definition {
	categories := make(map[string][]*Definition)
	for _, def := range r.Commands() {
		categories[def.Category] = append(categories[def.Category], def)
	}
	return categories
}
