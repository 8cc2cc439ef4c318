package decode

import (
	"fmt"
	"strings"

	"golang.org/x/arch/x86/x86asm"
)

// X86 decodes x86 instructions using the x86asm package.
type X86 struct {
	mode int // default bit mode, 64 or 32
}

// NewX86 creates a decoder for 64-bit mode.
func NewX86() *X86 {
	return &X86{mode: 64}
}

// NewX86WithMode creates a decoder with the given default bit mode.
func NewX86WithMode(mode int) *X86 {
	return &X86{mode: mode}
}

// Decode decodes the first instruction in the buffer. A non-zero mode
// overrides the default bit mode of the decoder.
func (d *X86) Decode(b []byte, mode int) (Instruction, error) {
	bitMode := d.mode
	if mode != 0 {
		bitMode = mode
	}

	inst, err := x86asm.Decode(b, bitMode)
	if err != nil {
		return Instruction{}, fmt.Errorf("decoding x86 instruction: %w", err)
	}

	result := Instruction{
		Mnemonic: strings.ToLower(inst.Op.String()),
		Size:     inst.Len,
		Bytes:    b[:inst.Len],
	}

	for _, arg := range inst.Args {
		if arg == nil {
			break
		}
		result.Operands = append(result.Operands, convertX86Arg(arg))
	}
	return result, nil
}

func convertX86Arg(arg x86asm.Arg) Operand {
	switch a := arg.(type) {
	case x86asm.Reg:
		return Operand{
			Kind: RegisterOperand,
			Reg:  a.String(),
		}

	case x86asm.Imm:
		return Operand{
			Kind: ImmediateOperand,
			Imm:  int64(a),
		}

	case x86asm.Rel:
		return Operand{
			Kind: RelativeOperand,
			Rel:  int64(a),
		}

	case x86asm.Mem:
		mem := Memory{
			Scale: int(a.Scale),
			Disp:  a.Disp,
		}
		if a.Segment != 0 {
			mem.Segment = a.Segment.String()
		}
		if a.Base != 0 {
			mem.Base = a.Base.String()
		}
		if a.Index != 0 {
			mem.Index = a.Index.String()
		}
		return Operand{
			Kind: MemoryOperand,
			Mem:  mem,
		}

	default:
		return Operand{
			Kind: LiteralOperand,
			Text: arg.String(),
		}
	}
}
