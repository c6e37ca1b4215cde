// Package commands holds the static table of terminal commands.
//
// Each Spec declares what a command needs before it may run: whether an
// identity is required, how many positional arguments it takes and which
// flags it recognizes together with their defaults. The table carries no
// behavior; the executor binds a handler to every name.
package commands

import (
	"fmt"
	"sort"
	"sync"
)

// AuthMode describes the identity a command needs.
type AuthMode int

const (
	// AuthNone commands run the same with or without an identity.
	AuthNone AuthMode = iota
	// AuthRequired commands are refused before any backend call when anonymous.
	AuthRequired
	// AuthOptional commands run anonymously but send the token when present.
	AuthOptional
)

// String returns the mode name.
func (m AuthMode) String() string {
	switch m {
	case AuthRequired:
		return "required"
	case AuthOptional:
		return "optional"
	default:
		return "none"
	}
}

// FlagSpec describes one recognized flag.
type FlagSpec struct {
	Name     string
	Default  string
	Required bool
}

// Spec is the static description of a command.
type Spec struct {
	// Name is the lowercase command word.
	Name string
	// Summary is the line shown by help.
	Summary string
	// Usage is the error shown when arguments or required flags are missing.
	Usage string
	// Auth is the identity requirement.
	Auth AuthMode
	// AuthMessage is the single error line shown when Auth is AuthRequired
	// and nobody is logged in.
	AuthMessage string
	// MinArgs is the minimum number of positional arguments.
	MinArgs int
	// Flags lists the recognized flags.
	Flags []FlagSpec
}

// Flag returns the spec of a named flag.
func (s Spec) Flag(name string) (FlagSpec, bool) {
	for _, f := range s.Flags {
		if f.Name == name {
			return f, true
		}
	}
	return FlagSpec{}, false
}

// RequiredFlags returns the names of flags that must be given.
func (s Spec) RequiredFlags() []string {
	var names []string
	for _, f := range s.Flags {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Registry resolves command names to specs.
type Registry struct {
	specs []Spec
	index map[string]int
}

// NewRegistry builds a registry. Names must be unique and non-empty.
func NewRegistry(specs ...Spec) (*Registry, error) {
	r := &Registry{
		specs: make([]Spec, 0, len(specs)),
		index: make(map[string]int, len(specs)),
	}
	for _, s := range specs {
		if s.Name == "" {
			return nil, fmt.Errorf("command spec has no name")
		}
		if _, exists := r.index[s.Name]; exists {
			return nil, fmt.Errorf("duplicate command %q", s.Name)
		}
		r.index[s.Name] = len(r.specs)
		r.specs = append(r.specs, s)
	}
	return r, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the shared registry of built-in commands.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := NewRegistry(builtinSpecs()...)
		if err != nil {
			panic(err)
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Lookup resolves a command name.
func (r *Registry) Lookup(name string) (Spec, bool) {
	i, ok := r.index[name]
	if !ok {
		return Spec{}, false
	}
	return r.specs[i], true
}

// All returns every spec in registration order.
func (r *Registry) All() []Spec {
	out := make([]Spec, len(r.specs))
	copy(out, r.specs)
	return out
}

// Names returns the sorted command names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.specs))
	for _, s := range r.specs {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.specs)
}
