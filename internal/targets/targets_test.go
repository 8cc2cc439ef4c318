package targets

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/asmprinter/internal/ir"
	"github.com/retroenv/asmprinter/internal/printer"
	"github.com/retroenv/retrogolib/assert"
)

// mov eax, 1 followed by ret
var testCode = []byte{0xb8, 0x01, 0x00, 0x00, 0x00, 0xc3}

func testModule() *ir.Module {
	return &ir.Module{
		Name:        "demo",
		Format:      "elf",
		ISA:         "x64",
		BaseAddress: 0x401000,
		Sections: []*ir.Section{{
			Name:    ".text",
			Address: 0x401000,
			Size:    uint64(len(testCode)),
			Flags:   ir.SectionLoaded | ir.SectionExecutable,
			Blocks: []*ir.Block{{
				Kind:    ir.CodeBlock,
				Address: 0x401000,
				Size:    uint64(len(testCode)),
				Bytes:   testCode,
			}},
		}},
		Symbols: []*ir.Symbol{
			{Name: "main", Address: 0x401000, Kind: ir.SymbolFunc, Defined: true, Global: true},
		},
		FunctionEntries: map[uint64]string{0x401000: "main"},
	}
}

func TestRegisterAllWith(t *testing.T) {
	registry := printer.NewRegistry()
	assert.NoError(t, RegisterAllWith(registry))

	// att covers three ISAs, intel two
	assert.Equal(t, 5, len(registry.RegisteredTargets()))

	syn, ok := registry.DefaultSyntax("elf", "x64")
	assert.True(t, ok)
	assert.Equal(t, "att", syn)
	syn, ok = registry.DefaultSyntax("elf", "arm64")
	assert.True(t, ok)
	assert.Equal(t, "att", syn)
}

func TestPrintATT(t *testing.T) {
	registry := printer.NewRegistry()
	assert.NoError(t, RegisterAllWith(registry))

	p := printer.NewWithRegistry(registry)

	var buf bytes.Buffer
	assert.NoError(t, p.Print(&buf, nil, testModule()))
	output := buf.String()

	assert.True(t, strings.Contains(output, "# module demo"))
	assert.True(t, strings.Contains(output, ".text"))
	assert.True(t, strings.Contains(output, ".globl main"))
	assert.True(t, strings.Contains(output, ".type main, @function"))
	assert.True(t, strings.Contains(output, "main:"))
	assert.True(t, strings.Contains(output, "mov $1, %eax"))
	assert.True(t, strings.Contains(output, "ret"))
	assert.True(t, strings.Contains(output, ".size main, .-main"))
	assert.True(t, strings.Contains(output, "# end of module demo"))
}

func TestPrintIntel(t *testing.T) {
	registry := printer.NewRegistry()
	assert.NoError(t, RegisterAllWith(registry))

	p := printer.NewWithRegistry(registry)
	p.SetTarget(printer.Target{Format: "elf", ISA: "x64", Syntax: "intel"})

	var buf bytes.Buffer
	assert.NoError(t, p.Print(&buf, nil, testModule()))
	output := buf.String()

	assert.True(t, strings.Contains(output, ".intel_syntax noprefix"))
	assert.True(t, strings.Contains(output, "mov eax, 1"))
	assert.False(t, strings.Contains(output, "%eax"))
}

func TestPrintARM64BranchSymbolization(t *testing.T) {
	// bl .+0x10 annotated with a symbolic expression
	code := []byte{0x04, 0x00, 0x00, 0x94}
	module := &ir.Module{
		Name:        "demo",
		Format:      "elf",
		ISA:         "arm64",
		BaseAddress: 0x1000,
		Sections: []*ir.Section{{
			Name:    ".text",
			Address: 0x1000,
			Size:    uint64(len(code)),
			Flags:   ir.SectionLoaded | ir.SectionExecutable,
			Blocks: []*ir.Block{{
				Kind:    ir.CodeBlock,
				Address: 0x1000,
				Size:    uint64(len(code)),
				Bytes:   code,
				SymExprs: map[uint64]*ir.SymExpr{
					0: {Kind: ir.AddrConst, Symbol: "helper"},
				},
			}},
		}},
		Symbols: []*ir.Symbol{
			{Name: "helper", Address: 0x1010, Defined: true},
		},
	}

	registry := printer.NewRegistry()
	assert.NoError(t, RegisterAllWith(registry))

	p := printer.NewWithRegistry(registry)

	var buf bytes.Buffer
	assert.NoError(t, p.Print(&buf, nil, module))
	assert.True(t, strings.Contains(buf.String(), "bl helper"))
}

func TestDefaultPolicySelection(t *testing.T) {
	registry := printer.NewRegistry()
	assert.NoError(t, RegisterAllWith(registry))

	p := printer.NewWithRegistry(registry)

	// statically linked module
	module := testModule()
	policy, err := p.GetPolicy(module)
	assert.NoError(t, err)
	assert.False(t, policy.SkipSections.Contains(".dynamic"))
	assert.True(t, policy.SkipSections.Contains(".eh_frame"))

	// the presence of a .dynamic section selects the dynamic policy
	module.Sections = append(module.Sections, &ir.Section{
		Name:    ".dynamic",
		Address: 0x402000,
	})
	policy, err = p.GetPolicy(module)
	assert.NoError(t, err)
	assert.True(t, policy.SkipSections.Contains(".dynamic"))
	assert.True(t, policy.SkipFunctions.Contains("_start"))

	// the complete policy skips nothing
	p.SetPolicyName("complete")
	policy, err = p.GetPolicy(module)
	assert.NoError(t, err)
	assert.False(t, policy.SkipSections.Contains(".dynamic"))
	assert.False(t, policy.SkipFunctions.Contains("_start"))
}
