package printer

import (
	"fmt"
	"strings"

	"github.com/retroenv/asmprinter/internal/ir"
)

// printDataBlock prints the contents of a data block. All zero blocks use a
// compact zero fill directive, printable NUL terminated blocks use the
// string directive, array section blocks force alignment 8 and omit
// compiler injected padding entries.
func (e *Engine) printDataBlock(section *ir.Section, block *ir.Block) {
	e.pc = block.Address
	e.printComments(block.Address)

	isArray := e.policy.ArraySections.Contains(section.Name)

	if !isArray {
		if isZeroBlock(block) {
			e.printZeroDataBlock(block)
			return
		}
		if text, ok := stringContents(block); ok {
			e.out.Printf("  %s \"%s\"\n", e.syntax.String, text)
			return
		}
	}

	e.printNonZeroDataBlock(block, isArray)
}

// printZeroDataBlock prints a zero filled block as a single fill directive.
func (e *Engine) printZeroDataBlock(block *ir.Block) {
	e.out.Printf("  %s %d\n", e.syntax.Zero, block.Size)
}

func (e *Engine) printNonZeroDataBlock(block *ir.Block, isArray bool) {
	for offset := uint64(0); offset < block.Size; {
		e.pc = block.Address + offset

		if sym, ok := block.SymExprs[offset]; ok {
			size := e.printSymbolicData(sym)
			offset += size
			continue
		}

		// bytes past the initialized content are zero fill
		if offset >= uint64(len(block.Bytes)) {
			e.out.Printf("  %s %d\n", e.syntax.Zero, block.Size-offset)
			return
		}

		// array sections contain entries that the compiler adds again,
		// an unannotated zero entry is such a padding marker
		if isArray && isPaddingEntry(block, offset) {
			offset += arrayEntrySize
			continue
		}

		run := e.plainDataRun(block, offset)
		e.printByteDirectives(block.Bytes[offset : offset+run])
		offset += run
	}
}

const arrayEntrySize = 8

// printSymbolicData prints one typed data entry encoding a symbolic
// expression and returns its encoded size.
func (e *Engine) printSymbolicData(sym *ir.SymExpr) uint64 {
	size := sym.Size
	if size == 0 {
		size = arrayEntrySize
	}

	var directive string
	switch size {
	case 1:
		directive = e.syntax.Byte
	case 2:
		directive = e.syntax.Word
	case 4:
		directive = e.syntax.Long
	default:
		directive = e.syntax.Quad
	}

	line := e.captureOutput(func() {
		e.out.Printf("%s ", directive)
		e.PrintSymbolicExpression(sym, true)
	})
	e.flushComment(line)
	return size
}

// plainDataRun returns the number of plain data bytes starting at offset,
// up to the next symbolic expression annotation or the end of the
// initialized content.
func (e *Engine) plainDataRun(block *ir.Block, offset uint64) uint64 {
	run := uint64(len(block.Bytes)) - offset
	for next := offset + 1; next < offset+run; next++ {
		if _, ok := block.SymExprs[next]; ok {
			run = next - offset
			break
		}
	}
	return run
}

// printByteDirectives prints data bytes bundled per line.
func (e *Engine) printByteDirectives(data []byte) {
	remaining := len(data)
	for i := 0; remaining > 0; {
		toWrite := min(remaining, dataBytesPerLine)

		buf := &strings.Builder{}
		fmt.Fprintf(buf, "%s ", e.syntax.Byte)
		for j := range toWrite {
			fmt.Fprintf(buf, "0x%02x, ", data[i+j])
		}
		line := strings.TrimRight(buf.String(), ", ")
		e.out.Printf("  %s\n", line)

		i += toWrite
		remaining -= toWrite
	}
}

// isZeroBlock returns whether all initialized bytes of the block are zero.
func isZeroBlock(block *ir.Block) bool {
	if len(block.SymExprs) > 0 {
		return false
	}
	for _, b := range block.Bytes {
		if b != 0 {
			return false
		}
	}
	return true
}

// isPaddingEntry returns whether the array entry at the offset is a
// compiler injected padding marker: a full width zero entry without a
// symbolic expression annotation.
func isPaddingEntry(block *ir.Block, offset uint64) bool {
	if offset+arrayEntrySize > uint64(len(block.Bytes)) {
		return false
	}
	for _, b := range block.Bytes[offset : offset+arrayEntrySize] {
		if b != 0 {
			return false
		}
	}
	return true
}

// stringContents returns the escaped contents of a block holding a
// printable NUL terminated string.
func stringContents(block *ir.Block) (string, bool) {
	data := block.Bytes
	if len(block.SymExprs) > 0 || len(data) < 2 || uint64(len(data)) != block.Size {
		return "", false
	}
	if data[len(data)-1] != 0 {
		return "", false
	}

	var buf strings.Builder
	for _, b := range data[:len(data)-1] {
		switch {
		case b == '"' || b == '\\':
			buf.WriteByte('\\')
			buf.WriteByte(b)
		case b < 0x20 || b > 0x7e:
			return "", false
		default:
			buf.WriteByte(b)
		}
	}
	return buf.String(), true
}
