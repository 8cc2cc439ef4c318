package printer

import (
	"fmt"
	"io"

	"github.com/retroenv/asmprinter/internal/ir"
)

// PrettyPrinter is the caller facing configuration object. The typical flow
// is to create a PrettyPrinter, configure it, then print one or more
// modules. The zero value selects the module's own format and ISA with the
// registered default syntax and the "default" policy.
type PrettyPrinter struct {
	format string
	isa    string
	syntax string
	debug  bool

	functionPolicy     *Override
	symbolPolicy       *Override
	sectionPolicy      *Override
	arraySectionPolicy *Override

	policyName string

	registry *Registry // nil selects the process wide registry
}

// New creates a pretty printer using the process wide registry.
func New() *PrettyPrinter {
	return &PrettyPrinter{
		functionPolicy:     NewOverride(),
		symbolPolicy:       NewOverride(),
		sectionPolicy:      NewOverride(),
		arraySectionPolicy: NewOverride(),
		policyName:         "default",
	}
}

// NewWithRegistry creates a pretty printer bound to an explicit registry.
func NewWithRegistry(registry *Registry) *PrettyPrinter {
	p := New()
	p.registry = registry
	return p
}

// SetTarget sets the target to print for. It is the caller's responsibility
// that the target has been registered, the binding is validated at print
// time.
func (p *PrettyPrinter) SetTarget(target Target) {
	p.format = target.Format
	p.isa = target.ISA
	p.syntax = target.Syntax
}

// SetFormat sets the format and ISA to print for and resolves the syntax
// from the registered default syntax table. The syntax stays unresolved if
// no default was registered for the pair.
func (p *PrettyPrinter) SetFormat(format, isa string) {
	p.format = format
	p.isa = isa
	if syntax, ok := p.reg().DefaultSyntax(format, isa); ok {
		p.syntax = syntax
	} else {
		p.syntax = ""
	}
}

// SetDebug enables or disables debugging messages inside the printed code.
func (p *PrettyPrinter) SetDebug(debug bool) {
	p.debug = debug
}

// GetDebug returns whether debugging messages are enabled.
func (p *PrettyPrinter) GetDebug() bool {
	return p.debug
}

// FunctionPolicy returns the override for the function skip set.
func (p *PrettyPrinter) FunctionPolicy() *Override {
	return p.functionPolicy
}

// SymbolPolicy returns the override for the symbol skip set.
func (p *PrettyPrinter) SymbolPolicy() *Override {
	return p.symbolPolicy
}

// SectionPolicy returns the override for the section skip set.
func (p *PrettyPrinter) SectionPolicy() *Override {
	return p.sectionPolicy
}

// ArraySectionPolicy returns the override for the array section set.
func (p *PrettyPrinter) ArraySectionPolicy() *Override {
	return p.arraySectionPolicy
}

// SetPolicyName selects the named policy to start from.
func (p *PrettyPrinter) SetPolicyName(name string) {
	p.policyName = name
}

// PolicyName returns the selected policy name.
func (p *PrettyPrinter) PolicyName() string {
	return p.policyName
}

// PolicyNames returns the policy names of the factory resolved for the
// module.
func (p *PrettyPrinter) PolicyNames(module *ir.Module) ([]string, error) {
	factory, err := p.getFactory(module)
	if err != nil {
		return nil, err
	}
	return factory.PolicyNames(), nil
}

// NamedPolicyExists returns whether the factory resolved for the module has
// a policy with the given name.
func (p *PrettyPrinter) NamedPolicyExists(module *ir.Module, name string) (bool, error) {
	factory, err := p.getFactory(module)
	if err != nil {
		return false, err
	}
	return factory.FindNamedPolicy(name) != nil, nil
}

// GetPolicy returns the effective policy for the module: the selected named
// policy with the four category overrides applied.
func (p *PrettyPrinter) GetPolicy(module *ir.Module) (*Policy, error) {
	factory, err := p.getFactory(module)
	if err != nil {
		return nil, err
	}
	return p.resolvePolicy(factory, module)
}

// Print prints the module as assembly text to the writer. The target is
// deduced from the module's own format and ISA if it was not set
// explicitly. No output is written if the target resolution fails.
func (p *PrettyPrinter) Print(w io.Writer, ctx *ir.Context, module *ir.Module) error {
	factory, err := p.getFactory(module)
	if err != nil {
		return err
	}

	policy, err := p.resolvePolicy(factory, module)
	if err != nil {
		return err
	}

	engine, err := factory.Create(ctx, module, policy)
	if err != nil {
		return fmt.Errorf("creating print engine: %w", err)
	}
	return engine.Print(w)
}

func (p *PrettyPrinter) reg() *Registry {
	if p.registry != nil {
		return p.registry
	}
	return defaultRegistry
}

// getFactory resolves the target triple and returns the factory bound to
// it. Format and ISA fall back to the module's own declared values, the
// syntax to the registered default for the pair.
func (p *PrettyPrinter) getFactory(module *ir.Module) (Factory, error) {
	format := p.format
	isa := p.isa
	if format == "" {
		format = module.Format
	}
	if isa == "" {
		isa = module.ISA
	}

	syn := p.syntax
	if syn == "" {
		var ok bool
		if syn, ok = p.reg().DefaultSyntax(format, isa); !ok {
			return nil, fmt.Errorf("%w: no default syntax for format '%s' and ISA '%s'",
				ErrTargetNotRegistered, format, isa)
		}
	}

	target := Target{Format: format, ISA: isa, Syntax: syn}
	factory, ok := p.reg().Factory(target)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTargetNotRegistered, target)
	}
	return factory, nil
}

// resolvePolicy starts from the selected named policy, falling back to the
// factory default for the conventional name "default", and applies the four
// category overrides to their respective sets.
func (p *PrettyPrinter) resolvePolicy(factory Factory, module *ir.Module) (*Policy, error) {
	base := factory.FindNamedPolicy(p.policyName)
	if base == nil {
		if p.policyName != "default" {
			return nil, fmt.Errorf("policy '%s' is not registered", p.policyName)
		}
		base = factory.DefaultPolicy(module)
	}

	policy := base.Clone()
	policy.SkipFunctions = p.functionPolicy.Apply(policy.SkipFunctions)
	policy.SkipSymbols = p.symbolPolicy.Apply(policy.SkipSymbols)
	policy.SkipSections = p.sectionPolicy.Apply(policy.SkipSections)
	policy.ArraySections = p.arraySectionPolicy.Apply(policy.ArraySections)

	if p.debug {
		policy.Debug = DebugMessages
	}
	return policy, nil
}
