package printer

import (
	"github.com/retroenv/asmprinter/internal/decode"
	"github.com/retroenv/asmprinter/internal/ir"
)

// Strategy supplies the syntax and target specific printing primitives to
// the print engine. The engine owns the traversal control flow and calls the
// strategy for directive emission, operand formatting and register naming,
// it never branches on target identity itself.
type Strategy interface {
	// PrintHeader prints the output preamble.
	PrintHeader(e *Engine)
	// PrintFooter prints the output epilogue.
	PrintFooter(e *Engine)

	// PrintSectionHeaderDirective prints the directive that switches to the
	// section.
	PrintSectionHeaderDirective(e *Engine, section *ir.Section)
	// PrintSectionProperties prints the section properties following the
	// section directive, e.g. ELF section flags and type.
	PrintSectionProperties(e *Engine, section *ir.Section)
	// PrintSectionFooterDirective prints the directive closing the section.
	PrintSectionFooterDirective(e *Engine, section *ir.Section)

	// PrintFunctionHeader prints the framing before a function's first
	// block, e.g. global and type directives.
	PrintFunctionHeader(e *Engine, name string, address uint64)
	// PrintFunctionFooter prints the framing after a function's last block.
	PrintFunctionFooter(e *Engine, name string, address uint64)

	// RegisterName renders a canonical register name in the dialect.
	RegisterName(reg string) string

	// PrintOpRegister prints a register operand.
	PrintOpRegister(e *Engine, op decode.Operand)
	// PrintOpImmediate prints an immediate operand, using the symbolic
	// expression instead of the raw value if one is attached.
	PrintOpImmediate(e *Engine, op decode.Operand, sym *ir.SymExpr)
	// PrintOpIndirect prints a memory indirect operand, symbolizing the
	// displacement if a symbolic expression is attached.
	PrintOpIndirect(e *Engine, op decode.Operand, sym *ir.SymExpr)

	// PrintSymExprPrefix prints dialect specific text before a symbolic
	// expression, depending on its attributes.
	PrintSymExprPrefix(e *Engine, attrs uint, isNotBranch bool)
	// PrintSymExprSuffix prints dialect specific text after a symbolic
	// expression, depending on its attributes.
	PrintSymExprSuffix(e *Engine, attrs uint, isNotBranch bool)
}
