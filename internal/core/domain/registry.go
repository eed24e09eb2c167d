package domain

import "slices"

// Registry is the ordered set of declared targets plus the shared defaults
// they merge against. It is populated once at startup and read-only for the
// remainder of the process, so concurrent reads need no synchronization.
type Registry struct {
	defaults Defaults
	order    []string
	targets  map[string]Target
}

// NewRegistry builds a registry from an ordered target declaration.
// Declaration order is preserved and becomes the build and reporting order.
// Malformed or duplicate targets fail here, at startup, rather than
// surfacing mid-build.
func NewRegistry(defaults Defaults, targets []Target) (*Registry, error) {
	r := &Registry{
		defaults: defaults,
		order:    make([]string, 0, len(targets)),
		targets:  make(map[string]Target, len(targets)),
	}

	for _, target := range targets {
		if err := Validate(target); err != nil {
			return nil, err
		}
		if _, exists := r.targets[target.Name]; exists {
			return nil, Tag(ErrDuplicateTarget, "target", target.Name)
		}
		r.order = append(r.order, target.Name)
		r.targets[target.Name] = target
	}

	return r, nil
}

// Lookup returns the target declared under name.
func (r *Registry) Lookup(name string) (Target, error) {
	target, ok := r.targets[name]
	if !ok {
		return Target{}, Tag(ErrTargetNotFound, "target", name)
	}
	return target, nil
}

// Names returns the registered target names in declaration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// Defaults returns the shared defaults the targets merge against.
func (r *Registry) Defaults() Defaults {
	return r.defaults
}

// Len returns the number of registered targets.
func (r *Registry) Len() int {
	return len(r.order)
}
