package printer

import (
	"fmt"

	"github.com/retroenv/asmprinter/internal/decode"
	"github.com/retroenv/asmprinter/internal/ir"
)

// printCodeBlock decodes and prints the instructions of a code block. The
// instructions are supplied by the decoder collaborator, an undecodable
// tail degrades to raw data bytes with a diagnostic comment.
func (e *Engine) printCodeBlock(block *ir.Block) {
	code := block.Bytes
	for offset := uint64(0); offset < uint64(len(code)); {
		address := block.Address + offset
		e.pc = address

		e.printComments(address)
		e.printCFIDirectives(address)

		inst, err := e.decoder.Decode(code[offset:], block.DecodeMode)
		if err != nil {
			e.printWarning(fmt.Sprintf("could not decode instruction at 0x%x", address))
			e.printByteDirectives(code[offset:])
			return
		}

		e.printInstruction(block, inst, offset)
		offset += uint64(inst.Size)
	}
}

// printInstruction prints the mnemonic and operand list of one instruction.
// The program counter has already been advanced to the instruction's
// address, some operand kinds are printed relative to it.
func (e *Engine) printInstruction(block *ir.Block, inst decode.Instruction, offset uint64) {
	line := e.captureOutput(func() {
		e.out.WriteString(inst.Mnemonic)
		if len(inst.Operands) > 0 {
			e.out.WriteString(" ")
			e.printOperandList(block, inst, offset)
		}
	})

	if e.debugMessages() {
		e.AddComment(fmt.Sprintf("EA: 0x%x", e.pc))
	}
	e.flushComment(line)
}

// printOperandList prints the operands of an instruction, dispatching each
// operand kind to the matching strategy primitive. The operand order is a
// dialect convention. A symbolic expression on the instruction's byte range
// replaces the first address carrying literal operand, decoders that render
// operands as text have no operand kind to hang the annotation on.
func (e *Engine) printOperandList(block *ir.Block, inst decode.Instruction, offset uint64) {
	sym := e.findSymExpr(block, offset, offset+uint64(inst.Size))

	count := len(inst.Operands)
	for i := range count {
		idx := i
		if e.syntax.ReverseOperandOrder {
			idx = count - 1 - i
		}
		if i > 0 {
			e.out.WriteString(", ")
		}

		op := inst.Operands[idx]
		if op.Kind == decode.LiteralOperand && sym != nil && literalEncodesAddress(op.Text) {
			e.PrintSymbolicExpression(sym, false)
			sym = nil
			continue
		}
		e.printOperand(inst, op, sym)
	}
}

// literalEncodesAddress returns whether a pre-rendered operand text carries
// an address or immediate value rather than a register name.
func literalEncodesAddress(text string) bool {
	if text == "" {
		return false
	}
	switch text[0] {
	case '#', '.', '-':
		return true
	}
	return text[0] >= '0' && text[0] <= '9'
}

func (e *Engine) printOperand(inst decode.Instruction, op decode.Operand, sym *ir.SymExpr) {
	switch op.Kind {
	case decode.RegisterOperand:
		e.strategy.PrintOpRegister(e, op)

	case decode.ImmediateOperand:
		e.strategy.PrintOpImmediate(e, op, sym)

	case decode.MemoryOperand:
		e.strategy.PrintOpIndirect(e, op, sym)

	case decode.RelativeOperand:
		target := e.pc + uint64(inst.Size) + uint64(op.Rel)
		if sym != nil {
			e.PrintSymbolicExpression(sym, false)
		} else {
			e.PrintTargetAddress(target)
		}

	case decode.LiteralOperand:
		e.out.WriteString(op.Text)
	}
}

// findSymExpr returns the symbolic expression attached to a byte range of
// the block, if any.
func (e *Engine) findSymExpr(block *ir.Block, start, end uint64) *ir.SymExpr {
	for offset := start; offset < end; offset++ {
		if sym, ok := block.SymExprs[offset]; ok {
			return sym
		}
	}
	return nil
}
