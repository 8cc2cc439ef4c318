package att

import (
	"strings"

	"github.com/retroenv/asmprinter/internal/decode"
	"github.com/retroenv/asmprinter/internal/ir"
	"github.com/retroenv/asmprinter/internal/printer"
	"github.com/retroenv/asmprinter/internal/targets/elf"
)

// Strategy supplies the AT&T printing primitives to the print engine.
type Strategy struct {
}

// PrintHeader prints the output preamble.
func (s *Strategy) PrintHeader(e *printer.Engine) {
	e.Out().Printf("%s module %s\n", e.Syntax().Comment, e.Module().Name)
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

// RegisterName renders a canonical register name in AT&T style.
func (s *Strategy) RegisterName(reg string) string {
	return "%" + strings.ToLower(reg)
}

// PrintOpRegister prints a register operand.
func (s *Strategy) PrintOpRegister(e *printer.Engine, op decode.Operand) {
	e.Out().WriteString(s.RegisterName(op.Reg))
}

// PrintOpImmediate prints an immediate operand, using the attached symbolic
// expression instead of the raw value if present.
func (s *Strategy) PrintOpImmediate(e *printer.Engine, op decode.Operand, sym *ir.SymExpr) {
	e.Out().WriteString(e.Syntax().ImmediatePrefix)
	if sym != nil && sym.Kind == ir.AddrConst && !sym.HasAttr(ir.AttrPCRel) {
		e.PrintSymbolicExpression(sym, true)
		return
	}
	e.Out().Printf("%d", op.Imm)
}

// PrintOpIndirect prints a memory indirect operand in the AT&T
// segment:displacement(base,index,scale) form.
func (s *Strategy) PrintOpIndirect(e *printer.Engine, op decode.Operand, sym *ir.SymExpr) {
	mem := op.Mem
	out := e.Out()

	if mem.Segment != "" {
		out.Printf("%s:", s.RegisterName(mem.Segment))
	}

	switch {
	case sym != nil:
		e.PrintSymbolicExpression(sym, true)
	case mem.Disp != 0 || (mem.Base == "" && mem.Index == ""):
		out.Printf("%d", mem.Disp)
	}

	if mem.Base == "" && mem.Index == "" {
		return
	}

	out.WriteString("(")
	if mem.Base != "" {
		out.WriteString(s.RegisterName(mem.Base))
	}
	if mem.Index != "" {
		out.Printf(",%s,%d", s.RegisterName(mem.Index), mem.Scale)
	}
	out.WriteString(")")
}

// PrintSymExprPrefix prints nothing, AT&T decorates symbolic expressions
// with suffixes only.
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
