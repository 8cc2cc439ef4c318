// Package decode provides the machine instruction decoder used by the
// printer. It wraps the architecture specific disassembler packages behind a
// small instruction model, decoding is byte buffer in, instruction out, with
// no state shared between calls beyond the decode mode.
package decode

// OperandKind classifies an instruction operand.
type OperandKind int

const (
	// RegisterOperand is a direct register reference.
	RegisterOperand OperandKind = iota
	// ImmediateOperand is an immediate value.
	ImmediateOperand
	// MemoryOperand is a memory indirect reference.
	MemoryOperand
	// RelativeOperand is a displacement relative to the next instruction.
	RelativeOperand
	// LiteralOperand carries pre-rendered operand text for architectures
	// whose operands the printer does not decompose.
	LiteralOperand
)

// Memory describes a memory indirect operand.
type Memory struct {
	Segment string
	Base    string
	Index   string
	Scale   int
	Disp    int64
}

// Operand is one instruction operand.
type Operand struct {
	Kind OperandKind

	Reg  string // canonical uppercase register name
	Imm  int64
	Mem  Memory
	Rel  int64
	Text string // LiteralOperand only
}

// Instruction is one decoded machine instruction.
type Instruction struct {
	Mnemonic string
	Operands []Operand
	Size     int
	Bytes    []byte
}

// Decoder decodes machine instructions from a byte buffer.
type Decoder interface {
	// Decode decodes the first instruction in the buffer using the given
	// decode mode. The mode is architecture specific, 0 selects the
	// architecture default.
	Decode(b []byte, mode int) (Instruction, error)
}
