// Package ir defines the intermediate representation of a binary program
// unit that the printer consumes. It acts as the contract between the
// upstream lifter that builds the representation and the assembly printer,
// it contains no loading or analysis logic of its own.
package ir

import (
	"sort"
)

// BlockKind classifies the content of a block.
type BlockKind int

const (
	// CodeBlock marks a block containing machine instructions.
	CodeBlock BlockKind = iota
	// DataBlock marks a block containing data bytes.
	DataBlock
)

// Section flag bits.
const (
	SectionLoaded uint = 1 << iota
	SectionInitialized
	SectionExecutable
	SectionWritable
	SectionBSS
)

// SymExpr attribute bits.
const (
	// AttrPCRel marks a symbolic expression that is program counter relative.
	AttrPCRel uint = 1 << iota
	// AttrPLT marks a reference that goes through a procedure linkage table stub.
	AttrPLT
	// AttrGOT marks a reference that goes through the global offset table.
	AttrGOT
)

// SymExprKind describes the form of a symbolic expression.
type SymExprKind int

const (
	// AddrConst references one symbol plus an addend.
	AddrConst SymExprKind = iota
	// AddrAddr references the difference of two symbols plus an addend.
	AddrAddr
)

// SymbolKind describes what a symbol refers to.
type SymbolKind int

const (
	SymbolNone SymbolKind = iota
	SymbolFunc
	SymbolObject
)

// Symbol is a named address in the module.
type Symbol struct {
	Name    string     `json:"name"`
	Address uint64     `json:"address"`
	Kind    SymbolKind `json:"kind,omitempty"`
	Defined bool       `json:"defined"`
	Global  bool       `json:"global,omitempty"`
}

// SymExpr is a symbolic expression annotation on a byte range. It marks the
// range as encoding a reference to a symbol's address, or to the difference
// of two symbols' addresses.
type SymExpr struct {
	Kind    SymExprKind `json:"kind"`
	Symbol  string      `json:"symbol"`
	Symbol2 string      `json:"symbol2,omitempty"` // subtrahend for AddrAddr
	Addend  int64       `json:"addend,omitempty"`
	Attrs   uint        `json:"attrs,omitempty"`
	Size    uint64      `json:"size,omitempty"` // encoded size in bytes, data blocks only
}

// HasAttr returns whether the attribute bit is set.
func (s *SymExpr) HasAttr(attr uint) bool {
	return s.Attrs&attr != 0
}

// Block is a contiguous run of bytes within a section, typed as code or data.
// Size can exceed len(Bytes) for uninitialized data.
type Block struct {
	Kind       BlockKind           `json:"kind"`
	Address    uint64              `json:"address"`
	Size       uint64              `json:"size"`
	Bytes      []byte              `json:"bytes,omitempty"`
	DecodeMode int                 `json:"decodeMode,omitempty"`
	SymExprs   map[uint64]*SymExpr `json:"symExprs,omitempty"` // keyed by offset in block
}

// Section is a named address range of the module containing blocks in
// address order.
type Section struct {
	Name    string   `json:"name"`
	Address uint64   `json:"address"`
	Size    uint64   `json:"size"`
	Flags   uint     `json:"flags"`
	Blocks  []*Block `json:"blocks"`
}

// HasFlag returns whether the section flag bit is set.
func (s *Section) HasFlag(flag uint) bool {
	return s.Flags&flag != 0
}

// CFIDirective is one call frame information directive attached to an address.
type CFIDirective struct {
	Directive string  `json:"directive"`
	Operands  []int64 `json:"operands,omitempty"`
}

// Module is the intermediate representation of one binary program unit.
type Module struct {
	Name        string `json:"name"`
	Format      string `json:"format"` // elf, pe, raw
	ISA         string `json:"isa"`    // x64, arm64
	BaseAddress uint64 `json:"baseAddress"`

	Sections []*Section `json:"sections"` // address order
	Symbols  []*Symbol  `json:"symbols,omitempty"`

	// FunctionEntries maps function entry addresses to function names.
	FunctionEntries map[uint64]string `json:"functionEntries,omitempty"`
	// CFIRegions maps addresses to call frame information directives.
	// A nil map means the module carries no unwind metadata.
	CFIRegions map[uint64][]CFIDirective `json:"cfiRegions,omitempty"`
	// Comments maps addresses to comment lines interleaved with the output.
	Comments map[uint64][]string `json:"comments,omitempty"`
	// SymbolForwarding maps symbol names to replacement names, e.g. an
	// import stub resolved to its target.
	SymbolForwarding map[string]string `json:"symbolForwarding,omitempty"`
	// Alignment maps addresses to explicit alignment requirements.
	Alignment map[uint64]uint64 `json:"alignment,omitempty"`
}

// End returns the first address past the last section of the module.
func (m *Module) End() uint64 {
	if len(m.Sections) == 0 {
		return m.BaseAddress
	}
	last := m.Sections[len(m.Sections)-1]
	return last.Address + last.Size
}

// SymbolsAt returns all symbols bound to the given address.
func (m *Module) SymbolsAt(address uint64) []*Symbol {
	var symbols []*Symbol
	for _, sym := range m.Symbols {
		if sym.Address == address && sym.Defined {
			symbols = append(symbols, sym)
		}
	}
	return symbols
}

// FindSymbol returns the symbol with the given name.
func (m *Module) FindSymbol(name string) (*Symbol, bool) {
	for _, sym := range m.Symbols {
		if sym.Name == name {
			return sym, true
		}
	}
	return nil, false
}

// FunctionEntryAddrs returns all function entry addresses in ascending order.
func (m *Module) FunctionEntryAddrs() []uint64 {
	addrs := make([]uint64, 0, len(m.FunctionEntries))
	for addr := range m.FunctionEntries {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs
}

// FunctionName returns the name of the function entered at the given address.
func (m *Module) FunctionName(address uint64) (string, bool) {
	name, ok := m.FunctionEntries[address]
	return name, ok
}

// HasCFI returns whether the module carries call frame information metadata.
func (m *Module) HasCFI() bool {
	return m.CFIRegions != nil
}
