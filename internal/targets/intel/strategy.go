package intel

import (
	"strings"

	"github.com/retroenv/asmprinter/internal/decode"
	"github.com/retroenv/asmprinter/internal/ir"
	"github.com/retroenv/asmprinter/internal/printer"
	"github.com/retroenv/asmprinter/internal/targets/elf"
)

// Strategy supplies the Intel printing primitives to the print engine.
type Strategy struct {
}

// PrintHeader prints the output preamble including the syntax mode switch.
func (s *Strategy) PrintHeader(e *printer.Engine) {
	e.Out().Printf("%s module %s\n", e.Syntax().Comment, e.Module().Name)
	e.Out().WriteString(".intel_syntax noprefix\n")
}

// PrintFooter prints the output epilogue.
func (s *Strategy) PrintFooter(e *printer.Engine) {
	e.Out().Printf("\n%s end of module %s\n", e.Syntax().Comment, e.Module().Name)
}

// PrintSectionHeaderDirective prints the section switch directive.
func (s *Strategy) PrintSectionHeaderDirective(e *printer.Engine, section *ir.Section) {
	elf.PrintSectionHeaderDirective(e, section)
}

// PrintSectionProperties prints the ELF section flags and type.
func (s *Strategy) PrintSectionProperties(e *printer.Engine, section *ir.Section) {
	elf.PrintSectionProperties(e, section)
}

// PrintSectionFooterDirective prints nothing, GNU as closes sections
// implicitly.
func (s *Strategy) PrintSectionFooterDirective(_ *printer.Engine, _ *ir.Section) {
}

// PrintFunctionHeader prints the ELF function framing.
func (s *Strategy) PrintFunctionHeader(e *printer.Engine, name string, address uint64) {
	elf.PrintFunctionHeader(e, name, address)
}

// PrintFunctionFooter prints the ELF function size directive.
func (s *Strategy) PrintFunctionFooter(e *printer.Engine, name string, address uint64) {
	elf.PrintFunctionFooter(e, name, address)
}

// RegisterName renders a canonical register name in Intel style.
func (s *Strategy) RegisterName(reg string) string {
	return strings.ToLower(reg)
}

// PrintOpRegister prints a register operand.
func (s *Strategy) PrintOpRegister(e *printer.Engine, op decode.Operand) {
	e.Out().WriteString(s.RegisterName(op.Reg))
}

// PrintOpImmediate prints an immediate operand, using the attached symbolic
// expression instead of the raw value if present.
func (s *Strategy) PrintOpImmediate(e *printer.Engine, op decode.Operand, sym *ir.SymExpr) {
	if sym != nil && sym.Kind == ir.AddrConst && !sym.HasAttr(ir.AttrPCRel) {
		e.PrintSymbolicExpression(sym, true)
		return
	}
	e.Out().Printf("%d", op.Imm)
}

// PrintOpIndirect prints a memory indirect operand in the Intel
// [base+index*scale+displacement] form.
func (s *Strategy) PrintOpIndirect(e *printer.Engine, op decode.Operand, sym *ir.SymExpr) {
	mem := op.Mem
	out := e.Out()

	if mem.Segment != "" {
		out.Printf("%s:", s.RegisterName(mem.Segment))
	}
	out.WriteString("[")

	empty := true
	if mem.Base != "" {
		out.WriteString(s.RegisterName(mem.Base))
		empty = false
	}
	if mem.Index != "" {
		if !empty {
			out.WriteString("+")
		}
		out.Printf("%s*%d", s.RegisterName(mem.Index), mem.Scale)
		empty = false
	}

	switch {
	case sym != nil:
		if !empty {
			out.WriteString("+")
		}
		e.PrintSymbolicExpression(sym, true)
	case mem.Disp != 0 || empty:
		if !empty && mem.Disp >= 0 {
			out.WriteString("+")
		}
		out.Printf("%d", mem.Disp)
	}

	out.WriteString("]")
}

// PrintSymExprPrefix prints nothing.
func (s *Strategy) PrintSymExprPrefix(_ *printer.Engine, _ uint, _ bool) {
}

// PrintSymExprSuffix prints the PLT and GOT reference decorations.
func (s *Strategy) PrintSymExprSuffix(e *printer.Engine, attrs uint, _ bool) {
	switch {
	case attrs&ir.AttrPLT != 0:
		e.Out().WriteString("@PLT")
	case attrs&ir.AttrGOT != 0:
		e.Out().WriteString("@GOTPCREL")
	}
}
