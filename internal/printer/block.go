package printer

import (
	"github.com/retroenv/asmprinter/internal/ir"
	"github.com/retroenv/retrogolib/log"
)

// printBlock prints one block with its function framing. Blocks of a
// skipped function are omitted entirely, the skip scenario leaves the rest
// of the module's rendering untouched.
func (e *Engine) printBlock(section *ir.Section, block *ir.Block) {
	funcName, inFunction := e.containerFunctionName(block.Address)

	// a skipped section can swallow the block that would have closed the
	// previous function, close it on the function transition instead
	if e.functionOpen && (!inFunction || funcName != e.openFunction) {
		e.closeFunction()
	}

	if inFunction && e.policy.SkipFunctions.Contains(funcName) {
		if e.logger != nil {
			e.logger.Debug("Skipping function block",
				log.String("function", funcName),
				log.Hex("address", block.Address))
		}
		return
	}

	entry := e.isFunctionEntry(block.Address)

	if alignment, ok := e.blockAlignment(section, block); ok {
		e.printAlignment(alignment)
	}

	if entry {
		e.strategy.PrintFunctionHeader(e, funcName, block.Address)
		e.printCFIStart(block.Address)
		e.openFunction = funcName
		e.openFunctionAddr = block.Address
		e.functionOpen = true
	}
	e.printSymbolLabels(block, entry, funcName)

	switch block.Kind {
	case ir.CodeBlock:
		e.printCodeBlock(block)
	case ir.DataBlock:
		e.printDataBlock(section, block)
	}

	// the footer belongs to the function whose header was printed, a
	// function entered inside a skipped section gets no framing at all
	if e.isFunctionLastBlock(block.Address) && e.functionOpen && funcName == e.openFunction {
		e.closeFunction()
	}
}

// closeFunction closes the open function's call frame information region
// and prints its footer framing.
func (e *Engine) closeFunction() {
	e.printCFIEnd()
	e.strategy.PrintFunctionFooter(e, e.openFunction, e.openFunctionAddr)
	e.openFunction = ""
	e.functionOpen = false
}

// printSymbolLabels prints the labels of all symbols bound to the block's
// address. The function label is part of the function header framing, a
// symbol with the function's name is not labeled again.
func (e *Engine) printSymbolLabels(block *ir.Block, entry bool, funcName string) {
	for _, symbol := range e.module.SymbolsAt(block.Address) {
		if entry && symbol.Name == funcName {
			continue
		}
		if e.policy.SkipSymbols.Contains(symbol.Name) {
			continue
		}
		e.out.Printf("%s%s\n", symbol.Name, e.syntax.LabelSuffix)
	}
}
