// Package intel implements the Intel output dialect for ELF modules as
// accepted by GNU as in .intel_syntax noprefix mode.
package intel

import (
	"github.com/retroenv/asmprinter/internal/decode"
	"github.com/retroenv/asmprinter/internal/ir"
	"github.com/retroenv/asmprinter/internal/printer"
	"github.com/retroenv/asmprinter/internal/syntax"
	"github.com/retroenv/asmprinter/internal/targets/elf"
)

// Name of the output dialect.
const Name = "intel"

// Factory builds Intel print engines and owns the named policies of the
// target.
type Factory struct {
	printer.NamedPolicies
}

// NewFactory creates the factory and registers its named policies.
func NewFactory() *Factory {
	f := &Factory{}
	f.RegisterNamedPolicy("complete", elf.CompletePolicy())
	f.RegisterNamedPolicy("dynamic", elf.DynamicPolicy())
	f.RegisterNamedPolicy("static", elf.StaticPolicy())
	return f
}

// DefaultPolicy returns the policy used when no policy name was given,
// based on whether the module is dynamically linked.
func (f *Factory) DefaultPolicy(module *ir.Module) *printer.Policy {
	return f.FindNamedPolicy(elf.DefaultPolicyName(module))
}

// Create builds a print engine bound to the module and policy.
func (f *Factory) Create(ctx *ir.Context, module *ir.Module,
	policy *printer.Policy) (*printer.Engine, error) {

	decoder := decode.NewX86()
	if module.ISA == "x86" {
		decoder = decode.NewX86WithMode(32)
	}

	return printer.NewEngine(printer.Config{
		Context:  ctx,
		Module:   module,
		Syntax:   syntax.Intel(),
		Policy:   policy,
		Strategy: &Strategy{},
		Decoder:  decoder,
	})
}
