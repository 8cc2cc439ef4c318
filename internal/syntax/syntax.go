// Package syntax describes the lexical conventions of one assembler output
// dialect. A Syntax value is pure data consumed by the print engine, the
// dialect specific printing behavior lives in the target strategies.
package syntax

// Syntax contains the lexical conventions of one output dialect.
type Syntax struct {
	Name string

	Comment     string // comment line marker
	LabelSuffix string // punctuation after a label

	Byte   string // 1 byte data directive
	Word   string // 2 byte data directive
	Long   string // 4 byte data directive
	Quad   string // 8 byte data directive
	Zero   string // zero fill directive
	String string // string data directive

	Align   string // alignment directive
	Global  string // global symbol directive
	Section string // section switch directive
	Text    string // text section directive
	Data    string // data section directive
	BSS     string // bss section directive

	// AlignIsPow2 marks dialects whose align directive takes a power of two
	// instead of a byte count.
	AlignIsPow2 bool

	// RegisterPrefix is printed before register names, e.g. "%" for AT&T.
	RegisterPrefix string
	// ImmediatePrefix is printed before immediate operands, e.g. "$" for AT&T.
	ImmediatePrefix string

	// ReverseOperandOrder marks dialects that print operands in reverse of
	// the decoder's canonical destination first order.
	ReverseOperandOrder bool
}

// ATT returns the conventions of the AT&T dialect as accepted by GNU as.
func ATT() Syntax {
	return Syntax{
		Name:                "att",
		Comment:             "#",
		LabelSuffix:         ":",
		Byte:                ".byte",
		Word:                ".word",
		Long:                ".long",
		Quad:                ".quad",
		Zero:                ".zero",
		String:              ".string",
		Align:               ".align",
		Global:              ".globl",
		Section:             ".section",
		Text:                ".text",
		Data:                ".data",
		BSS:                 ".bss",
		RegisterPrefix:      "%",
		ImmediatePrefix:     "$",
		ReverseOperandOrder: true,
	}
}

// Intel returns the conventions of the Intel dialect as accepted by GNU as
// in .intel_syntax noprefix mode.
func Intel() Syntax {
	return Syntax{
		Name:        "intel",
		Comment:     "#",
		LabelSuffix: ":",
		Byte:        ".byte",
		Word:        ".word",
		Long:        ".long",
		Quad:        ".quad",
		Zero:        ".zero",
		String:      ".string",
		Align:       ".align",
		Global:      ".globl",
		Section:     ".section",
		Text:        ".text",
		Data:        ".data",
		BSS:         ".bss",
	}
}
