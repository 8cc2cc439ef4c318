package decode

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestARM64Decode(t *testing.T) {
	decoder := NewARM64()

	t.Run("nop", func(t *testing.T) {
		inst, err := decoder.Decode([]byte{0x1f, 0x20, 0x03, 0xd5}, 0)
		assert.NoError(t, err)
		assert.Equal(t, "nop", inst.Mnemonic)
		assert.Equal(t, 4, inst.Size)
		assert.Equal(t, 0, len(inst.Operands))
	})

	t.Run("ret", func(t *testing.T) {
		inst, err := decoder.Decode([]byte{0xc0, 0x03, 0x5f, 0xd6}, 0)
		assert.NoError(t, err)
		assert.Equal(t, "ret", inst.Mnemonic)
		assert.Equal(t, 4, inst.Size)
	})

	t.Run("operands carried as text", func(t *testing.T) {
		// add x0, x1, x2
		inst, err := decoder.Decode([]byte{0x20, 0x00, 0x02, 0x8b}, 0)
		assert.NoError(t, err)
		assert.Equal(t, "add", inst.Mnemonic)
		assert.Equal(t, 3, len(inst.Operands))
		for _, op := range inst.Operands {
			assert.Equal(t, LiteralOperand, op.Kind)
		}
		assert.Equal(t, "x0", inst.Operands[0].Text)
		assert.Equal(t, "x1", inst.Operands[1].Text)
		assert.Equal(t, "x2", inst.Operands[2].Text)
	})

	t.Run("truncated buffer", func(t *testing.T) {
		_, err := decoder.Decode([]byte{0x1f, 0x20}, 0)
		assert.Error(t, err)
	})
}

func TestSplitInstructionText(t *testing.T) {
	mnemonic, operands := splitInstructionText("ret")
	assert.Equal(t, "ret", mnemonic)
	assert.Equal(t, 0, len(operands))

	mnemonic, operands = splitInstructionText("add x0, x1, x2")
	assert.Equal(t, "add", mnemonic)
	assert.Equal(t, []string{"x0", "x1", "x2"}, operands)
}
