// Package att implements the AT&T output dialect for ELF modules as
// accepted by GNU as, for the x64 and arm64 instruction sets.
package att

import (
	"fmt"

	"github.com/retroenv/asmprinter/internal/decode"
	"github.com/retroenv/asmprinter/internal/ir"
	"github.com/retroenv/asmprinter/internal/printer"
	"github.com/retroenv/asmprinter/internal/syntax"
	"github.com/retroenv/asmprinter/internal/targets/elf"
)

// Name of the output dialect.
const Name = "att"

// Factory builds AT&T print engines and owns the named policies of the
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

	decoder, err := decoderForISA(module.ISA)
	if err != nil {
		return nil, err
	}

	syn := syntax.ATT()
	if module.ISA == "arm64" {
		// arm64 operands come out of the decoder as pre-rendered text in
		// final GNU order
		syn.ReverseOperandOrder = false
		syn.RegisterPrefix = ""
		syn.ImmediatePrefix = ""
	}

	return printer.NewEngine(printer.Config{
		Context:  ctx,
		Module:   module,
		Syntax:   syn,
		Policy:   policy,
		Strategy: &Strategy{},
		Decoder:  decoder,
	})
}

func decoderForISA(isa string) (decode.Decoder, error) {
	switch isa {
	case "x64":
		return decode.NewX86(), nil
	case "x86":
		return decode.NewX86WithMode(32), nil
	case "arm64":
		return decode.NewARM64(), nil
	default:
		return nil, fmt.Errorf("unsupported ISA '%s'", isa)
	}
}
