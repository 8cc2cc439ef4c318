package printer

import (
	"fmt"

	"github.com/retroenv/asmprinter/internal/ir"
)

// PrintSymbolicExpression prints a symbolic expression: a symbol reference
// plus addend, or the difference of two symbols. isNotBranch marks
// expressions outside branch targets, some dialects decorate those
// differently.
func (e *Engine) PrintSymbolicExpression(sym *ir.SymExpr, isNotBranch bool) {
	e.strategy.PrintSymExprPrefix(e, sym.Attrs, isNotBranch)

	switch sym.Kind {
	case ir.AddrConst:
		e.PrintSymbolReference(sym.Symbol)
		e.PrintAddend(sym.Addend, false)

	case ir.AddrAddr:
		e.PrintSymbolReference(sym.Symbol)
		e.out.WriteString("-")
		e.PrintSymbolReference(sym.Symbol2)
		e.PrintAddend(sym.Addend, false)
	}

	e.strategy.PrintSymExprSuffix(e, sym.Attrs, isNotBranch)
}

// PrintSymbolReference prints a reference to a symbol by name. An ambiguous
// symbol prints the literal numeric address with a diagnostic comment, a
// forwarded symbol prints the replacement name, a skipped symbol degrades
// to address literal printing.
func (e *Engine) PrintSymbolReference(name string) {
	symbol, found := e.module.FindSymbol(name)
	if !found {
		// no module symbol, treat as external reference
		e.out.WriteString(name)
		return
	}

	if symbol.Defined {
		if symbol.Address == 0 {
			e.AddComment("WARNING: symbol points to address 0")
		}
		if e.isAmbiguousAddress(symbol.Address) {
			e.printAddressLiteral(symbol.Address)
			e.AddComment(fmt.Sprintf("ambiguous symbol at 0x%x", symbol.Address))
			return
		}
	}

	if forwarded, ok := e.module.SymbolForwarding[name]; ok {
		name = forwarded
	}

	// an undefined symbol has no usable address to degrade to
	if symbol.Defined && e.policy.SkipSymbols.Contains(name) {
		e.printAddressLiteral(symbol.Address)
		return
	}
	e.out.WriteString(name)
}

// PrintTargetAddress prints a reference to an address, using a symbol name
// when an unambiguous one is bound to it.
func (e *Engine) PrintTargetAddress(address uint64) {
	symbols := e.module.SymbolsAt(address)

	if distinctNames(symbols) >= 2 {
		e.printAddressLiteral(address)
		e.AddComment(fmt.Sprintf("ambiguous symbol at 0x%x", address))
		return
	}
	if len(symbols) == 0 {
		e.printAddressLiteral(address)
		return
	}
	e.PrintSymbolReference(symbols[0].Name)
}

// PrintAddend prints a nonzero addend. An addend that starts the expression
// omits the plus sign of a positive value, an addend following a symbol
// always carries an explicit sign.
func (e *Engine) PrintAddend(number int64, first bool) {
	if number == 0 {
		return
	}
	if number < 0 || first {
		e.out.Printf("%d", number)
		return
	}
	e.out.Printf("+%d", number)
}

func (e *Engine) printAddressLiteral(address uint64) {
	e.out.Printf("0x%x", address)
}

// isAmbiguousAddress returns whether two or more distinct, differently
// named symbols are bound to the address.
func (e *Engine) isAmbiguousAddress(address uint64) bool {
	return distinctNames(e.module.SymbolsAt(address)) >= 2
}

func distinctNames(symbols []*ir.Symbol) int {
	names := map[string]struct{}{}
	for _, symbol := range symbols {
		names[symbol.Name] = struct{}{}
	}
	return len(names)
}
