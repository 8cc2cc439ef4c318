package printer

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/retroenv/asmprinter/internal/decode"
	"github.com/retroenv/asmprinter/internal/ir"
	"github.com/retroenv/asmprinter/internal/syntax"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

const dataBytesPerLine = 16

// Engine walks one module and produces assembly text. The traversal control
// flow lives here, all syntax and target specific behavior is supplied by
// the injected strategy. An engine prints one module per Print call, the
// session state is rebuilt at the start of the call and discarded at its
// end.
type Engine struct {
	ctx      *ir.Context
	module   *ir.Module
	syntax   syntax.Syntax
	policy   *Policy
	strategy Strategy
	decoder  decode.Decoder
	logger   *log.Logger

	// session state, valid for the duration of one Print call
	out               *Out
	functionEntry     set.Set[uint64]
	functionLastBlock set.Set[uint64]
	sortedEntries     []uint64
	pc                uint64
	cfiStartProc      *uint64
	accumComment      string
	openFunction      string
	openFunctionAddr  uint64
	functionOpen      bool
}

// Config contains the dependencies of a print engine.
type Config struct {
	Context  *ir.Context
	Module   *ir.Module
	Syntax   syntax.Syntax
	Policy   *Policy
	Strategy Strategy
	Decoder  decode.Decoder
}

// NewEngine creates a print engine bound to the module, policy and strategy.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Module == nil {
		return nil, fmt.Errorf("creating engine: missing module")
	}
	if cfg.Strategy == nil {
		return nil, fmt.Errorf("creating engine: missing strategy")
	}
	if cfg.Decoder == nil {
		return nil, fmt.Errorf("creating engine: missing decoder")
	}
	if cfg.Policy == nil {
		cfg.Policy = NewPolicy()
	}

	var logger *log.Logger
	if cfg.Context != nil {
		logger = cfg.Context.Logger()
	}

	return &Engine{
		ctx:      cfg.Context,
		module:   cfg.Module,
		syntax:   cfg.Syntax,
		policy:   cfg.Policy,
		strategy: cfg.Strategy,
		decoder:  cfg.Decoder,
		logger:   logger,
	}, nil
}

// Module returns the module being printed.
func (e *Engine) Module() *ir.Module {
	return e.module
}

// Policy returns the effective policy of the print call.
func (e *Engine) Policy() *Policy {
	return e.policy
}

// Syntax returns the syntax descriptor of the target dialect.
func (e *Engine) Syntax() syntax.Syntax {
	return e.syntax
}

// Out returns the output stream of the current print call.
func (e *Engine) Out() *Out {
	return e.out
}

// PC returns the address currently being printed.
func (e *Engine) PC() uint64 {
	return e.pc
}

// Print walks the module and writes assembly text to the writer. Structural
// errors abort the call, per item failures degrade to inline diagnostic
// comments.
func (e *Engine) Print(w io.Writer) error {
	if err := e.validateModule(); err != nil {
		return err
	}
	if err := e.buildSessionState(); err != nil {
		return err
	}

	e.out = newOut(w)
	e.pc = e.module.BaseAddress
	e.cfiStartProc = nil
	e.accumComment = ""
	e.openFunction = ""
	e.functionOpen = false

	e.strategy.PrintHeader(e)

	for _, section := range e.module.Sections {
		if e.policy.SkipSections.Contains(section.Name) {
			if e.logger != nil {
				e.logger.Debug("Skipping section", log.String("section", section.Name))
			}
			continue
		}
		e.printSection(section)
	}

	// a skipped section can swallow the last function's closing block
	if e.functionOpen {
		e.closeFunction()
	}

	e.strategy.PrintFooter(e)
	return e.out.Err()
}

// validateModule checks the structural invariants the traversal relies on:
// blocks in address order without overlaps.
func (e *Engine) validateModule() error {
	for _, section := range e.module.Sections {
		var lastEnd uint64
		for i, block := range section.Blocks {
			if i > 0 && block.Address < lastEnd {
				return fmt.Errorf("section '%s': block at 0x%x overlaps previous block",
					section.Name, block.Address)
			}
			lastEnd = block.Address + block.Size
			if end := section.Address + section.Size; lastEnd > end {
				return fmt.Errorf("section '%s': block at 0x%x exceeds section end 0x%x",
					section.Name, block.Address, end)
			}
		}
	}
	return nil
}

// buildSessionState computes the function entry and function last block
// address sets from the module's function boundary metadata. Functions are
// assumed to be contiguous and address sorted, the last function's range
// extends to the module's end.
func (e *Engine) buildSessionState() error {
	e.functionEntry = set.New[uint64]()
	e.functionLastBlock = set.New[uint64]()
	e.sortedEntries = e.module.FunctionEntryAddrs()

	for i, entry := range e.sortedEntries {
		e.functionEntry.Add(entry)

		boundary := e.module.End()
		if i+1 < len(e.sortedEntries) {
			boundary = e.sortedEntries[i+1]
		}

		last, ok := e.lastBlockInRange(entry, boundary)
		if !ok {
			return fmt.Errorf("inconsistent function boundary metadata: no block for function entry 0x%x", entry)
		}
		e.functionLastBlock.Add(last)
	}
	return nil
}

// lastBlockInRange returns the address of the block with the highest address
// in [start, end).
func (e *Engine) lastBlockInRange(start, end uint64) (uint64, bool) {
	var last uint64
	found := false
	for _, section := range e.module.Sections {
		for _, block := range section.Blocks {
			if block.Address >= start && block.Address < end {
				if !found || block.Address > last {
					last = block.Address
					found = true
				}
			}
		}
	}
	return last, found
}

// containerFunctionName returns the name of the function containing the
// address. Every address from one function entry up to the next entry
// belongs to the first function.
func (e *Engine) containerFunctionName(address uint64) (string, bool) {
	idx := sort.Search(len(e.sortedEntries), func(i int) bool {
		return e.sortedEntries[i] > address
	})
	if idx == 0 {
		return "", false
	}
	entry := e.sortedEntries[idx-1]
	name, ok := e.module.FunctionEntries[entry]
	return name, ok
}

func (e *Engine) isFunctionEntry(address uint64) bool {
	return e.functionEntry.Contains(address)
}

func (e *Engine) isFunctionLastBlock(address uint64) bool {
	return e.functionLastBlock.Contains(address)
}

func (e *Engine) debugMessages() bool {
	return e.policy.Debug == DebugMessages
}

// printBar prints a separator comment line.
func (e *Engine) printBar(heavy bool) {
	marker := "-"
	if heavy {
		marker = "="
	}
	e.out.Printf("%s%s\n", e.syntax.Comment, strings.Repeat(marker, 35))
}

func (e *Engine) printSection(section *ir.Section) {
	e.out.Newline()
	e.printBar(true)
	if e.debugMessages() {
		e.out.Printf("%s section %s\n", e.syntax.Comment, section.Name)
	}
	e.strategy.PrintSectionHeaderDirective(e, section)
	e.strategy.PrintSectionProperties(e, section)
	e.printBar(true)

	for _, block := range section.Blocks {
		e.printBlock(section, block)
	}

	e.strategy.PrintSectionFooterDirective(e, section)
}

// captureOutput runs fn with the output redirected into a buffer and returns
// the captured text. Used to render fragments that need post processing,
// e.g. aligning a trailing comment.
func (e *Engine) captureOutput(fn func()) string {
	var buf strings.Builder
	saved := e.out
	e.out = newOut(&buf)
	fn()
	e.out = saved
	return buf.String()
}

// AddComment accumulates a comment that is flushed at the end of the
// current output line.
func (e *Engine) AddComment(text string) {
	if e.accumComment != "" {
		e.accumComment += "; "
	}
	e.accumComment += text
}

// flushComment completes an output line, appending the accumulated comments
// if any.
func (e *Engine) flushComment(line string) {
	if e.accumComment == "" {
		e.out.Printf("  %s\n", line)
		return
	}
	e.out.Printf("  %-30s %s %s\n", line, e.syntax.Comment, e.accumComment)
	e.accumComment = ""
}

// printWarning prints an inline diagnostic comment. Per item failures are
// reported this way and the traversal continues, the printer is routinely
// applied to imperfect binaries and a single bad item must not forfeit the
// whole listing.
func (e *Engine) printWarning(text string) {
	e.out.Printf("%s WARNING: %s\n", e.syntax.Comment, text)
	if e.logger != nil {
		e.logger.Warn(text)
	}
}

// printComments prints the comment lines attached to an address.
func (e *Engine) printComments(address uint64) {
	for _, line := range e.module.Comments[address] {
		e.out.Printf("%s %s\n", e.syntax.Comment, line)
	}
}

// printCFIDirectives prints the call frame information directives attached
// to an address.
func (e *Engine) printCFIDirectives(address uint64) {
	for _, directive := range e.module.CFIRegions[address] {
		e.out.Printf("  %s", directive.Directive)
		for i, operand := range directive.Operands {
			if i > 0 {
				e.out.WriteString(",")
			}
			e.out.Printf(" %d", operand)
		}
		e.out.Newline()
	}
}

// printCFIStart opens the call frame information region of a function. The
// regions are paired and never nested.
func (e *Engine) printCFIStart(address uint64) {
	if !e.module.HasCFI() || e.cfiStartProc != nil {
		return
	}
	e.out.WriteString("  .cfi_startproc\n")
	addr := address
	e.cfiStartProc = &addr
}

// printCFIEnd closes the open call frame information region.
func (e *Engine) printCFIEnd() {
	if e.cfiStartProc == nil {
		return
	}
	e.out.WriteString("  .cfi_endproc\n")
	e.cfiStartProc = nil
}

// printAlignment prints an alignment directive.
func (e *Engine) printAlignment(alignment uint64) {
	if e.syntax.AlignIsPow2 {
		pow := uint64(0)
		for a := alignment; a > 1; a >>= 1 {
			pow++
		}
		e.out.Printf("%s %d\n", e.syntax.Align, pow)
		return
	}
	e.out.Printf("%s %d\n", e.syntax.Align, alignment)
}

// blockAlignment returns the effective alignment of a block: an explicit
// alignment wins, array sections force 8, otherwise the alignment is
// derived from the block's address and kind.
func (e *Engine) blockAlignment(section *ir.Section, block *ir.Block) (uint64, bool) {
	if alignment, ok := e.module.Alignment[block.Address]; ok {
		return alignment, alignment > 1
	}
	if e.policy.ArraySections.Contains(section.Name) {
		return 8, true
	}

	if block.Kind == ir.CodeBlock {
		if e.isFunctionEntry(block.Address) {
			return 16, true
		}
		return 0, false
	}

	if block.Address == 0 {
		return 0, false
	}
	derived := block.Address & (^block.Address + 1) // largest power of two divisor
	if derived > 8 {
		derived = 8
	}
	return derived, derived > 1
}
