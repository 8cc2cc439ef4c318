package decode

import (
	"fmt"
	"strings"

	"golang.org/x/arch/arm64/arm64asm"
)

// ARM64 decodes arm64 instructions using the arm64asm package. Operands are
// carried as pre-rendered text in GNU syntax, the printer does not decompose
// them further.
type ARM64 struct {
}

// NewARM64 creates an arm64 decoder.
func NewARM64() *ARM64 {
	return &ARM64{}
}

// Decode decodes the first instruction in the buffer. arm64 instructions
// have a fixed size of 4 bytes, the mode parameter is ignored.
func (d *ARM64) Decode(b []byte, _ int) (Instruction, error) {
	inst, err := arm64asm.Decode(b)
	if err != nil {
		return Instruction{}, fmt.Errorf("decoding arm64 instruction: %w", err)
	}

	text := arm64asm.GNUSyntax(inst)
	mnemonic, operands := splitInstructionText(text)

	result := Instruction{
		Mnemonic: mnemonic,
		Size:     4,
		Bytes:    b[:4],
	}
	for _, op := range operands {
		result.Operands = append(result.Operands, Operand{
			Kind: LiteralOperand,
			Text: op,
		})
	}
	return result, nil
}

// splitInstructionText splits rendered instruction text into the mnemonic
// and its operand list.
func splitInstructionText(text string) (string, []string) {
	mnemonic, rest, found := strings.Cut(text, " ")
	if !found {
		return text, nil
	}

	parts := strings.Split(rest, ",")
	operands := make([]string, 0, len(parts))
	for _, part := range parts {
		operands = append(operands, strings.TrimSpace(part))
	}
	return mnemonic, operands
}
