package printer

import (
	"errors"
	"fmt"
	"sort"
)

// ErrTargetNotRegistered is returned by Print when no factory is registered
// for the resolved target.
var ErrTargetNotRegistered = errors.New("target is not registered")

// Target identifies a concrete printer variant by file format, instruction
// set architecture and output syntax.
type Target struct {
	Format string
	ISA    string
	Syntax string
}

// String implements fmt.Stringer.
func (t Target) String() string {
	return t.Format + "-" + t.ISA + "-" + t.Syntax
}

type formatISA struct {
	format string
	isa    string
}

// Registry maps targets to printer factories and tracks the default syntax
// per format and ISA pair. Registration is expected to happen during an
// initialization phase before any printing begins, mutating a registry
// concurrently with printing requires external synchronization by the caller.
type Registry struct {
	factories     map[Target]Factory
	defaultSyntax map[formatISA]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories:     map[Target]Factory{},
		defaultSyntax: map[formatISA]string{},
	}
}

// Register binds every combination of the given formats, ISAs and syntaxes
// to the factory, overwriting prior bindings for the same target. If
// isDefault is set, the syntax also becomes the default syntax for every
// format and ISA pair of the product. Nothing is registered if any of the
// three lists is empty or the factory is nil.
func (r *Registry) Register(formats, isas, syntaxes []string, factory Factory,
	isDefault bool) error {

	if len(formats) == 0 || len(isas) == 0 || len(syntaxes) == 0 {
		return fmt.Errorf("registering printer: format, ISA and syntax lists must not be empty")
	}
	if factory == nil {
		return fmt.Errorf("registering printer: missing factory")
	}

	for _, format := range formats {
		for _, isa := range isas {
			for _, syn := range syntaxes {
				r.factories[Target{Format: format, ISA: isa, Syntax: syn}] = factory
				if isDefault {
					r.defaultSyntax[formatISA{format: format, isa: isa}] = syn
				}
			}
		}
	}
	return nil
}

// RegisteredTargets returns all currently bound targets in sorted order.
func (r *Registry) RegisteredTargets() []Target {
	targets := make([]Target, 0, len(r.factories))
	for target := range r.factories {
		targets = append(targets, target)
	}
	sort.Slice(targets, func(i, j int) bool {
		return targets[i].String() < targets[j].String()
	})
	return targets
}

// Factory returns the factory bound to the target.
func (r *Registry) Factory(target Target) (Factory, bool) {
	factory, ok := r.factories[target]
	return factory, ok
}

// SetDefaultSyntax sets the default syntax for a format and ISA pair,
// overwriting any prior default.
func (r *Registry) SetDefaultSyntax(format, isa, syntax string) {
	r.defaultSyntax[formatISA{format: format, isa: isa}] = syntax
}

// DefaultSyntax returns the default syntax for a format and ISA pair.
func (r *Registry) DefaultSyntax(format, isa string) (string, bool) {
	syn, ok := r.defaultSyntax[formatISA{format: format, isa: isa}]
	return syn, ok
}

// defaultRegistry is the process wide registry used by the package level
// functions. It is populated once at startup by target registration.
var defaultRegistry = NewRegistry()

// Register registers a factory with the process wide registry.
func Register(formats, isas, syntaxes []string, factory Factory, isDefault bool) error {
	return defaultRegistry.Register(formats, isas, syntaxes, factory, isDefault)
}

// RegisteredTargets returns the targets of the process wide registry.
func RegisteredTargets() []Target {
	return defaultRegistry.RegisteredTargets()
}

// SetDefaultSyntax sets a default syntax in the process wide registry.
func SetDefaultSyntax(format, isa, syntax string) {
	defaultRegistry.SetDefaultSyntax(format, isa, syntax)
}

// DefaultSyntax returns a default syntax from the process wide registry.
func DefaultSyntax(format, isa string) (string, bool) {
	return defaultRegistry.DefaultSyntax(format, isa)
}
