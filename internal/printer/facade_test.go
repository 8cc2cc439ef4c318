package printer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/asmprinter/internal/ir"
	"github.com/retroenv/retrogolib/assert"
)

// printFactory builds working engines for facade tests.
type printFactory struct {
	NamedPolicies
}

func newPrintFactory() *printFactory {
	f := &printFactory{}
	f.RegisterNamedPolicy("complete", NewPolicy())
	return f
}

func (f *printFactory) DefaultPolicy(_ *ir.Module) *Policy {
	policy := NewPolicy()
	policy.SkipFunctions.Add("frame_dummy")
	return policy
}

func (f *printFactory) Create(ctx *ir.Context, module *ir.Module, policy *Policy) (*Engine, error) {
	return NewEngine(Config{
		Context:  ctx,
		Module:   module,
		Syntax:   testSyntax(),
		Policy:   policy,
		Strategy: testStrategy{},
		Decoder:  testDecoder{},
	})
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	registry := NewRegistry()
	err := registry.Register([]string{"elf"}, []string{"x64"}, []string{"test"},
		newPrintFactory(), true)
	assert.NoError(t, err)
	return registry
}

func TestPrettyPrinterPrint(t *testing.T) {
	p := NewWithRegistry(newTestRegistry(t))

	module := codeSectionModule(&ir.Block{
		Kind:    ir.CodeBlock,
		Address: 0x1000,
		Size:    1,
		Bytes:   []byte{0x90},
	})

	var buf bytes.Buffer
	assert.NoError(t, p.Print(&buf, nil, module))
	assert.True(t, strings.Contains(buf.String(), "nop"))
}

func TestPrettyPrinterModuleFallback(t *testing.T) {
	// no target configured, format and ISA come from the module and the
	// syntax from the registered default
	p := NewWithRegistry(newTestRegistry(t))

	module := codeSectionModule(&ir.Block{
		Kind:    ir.CodeBlock,
		Address: 0x1000,
		Size:    1,
		Bytes:   []byte{0x90},
	})
	module.Format = "elf"
	module.ISA = "x64"

	var buf bytes.Buffer
	assert.NoError(t, p.Print(&buf, nil, module))
}

func TestPrettyPrinterUnregisteredTarget(t *testing.T) {
	p := NewWithRegistry(newTestRegistry(t))
	p.SetTarget(Target{Format: "pe", ISA: "x64", Syntax: "test"})

	module := codeSectionModule(&ir.Block{
		Kind:    ir.CodeBlock,
		Address: 0x1000,
		Size:    1,
		Bytes:   []byte{0x90},
	})

	var buf bytes.Buffer
	err := p.Print(&buf, nil, module)
	assert.True(t, errors.Is(err, ErrTargetNotRegistered))
	assert.Equal(t, 0, buf.Len())
}

func TestPrettyPrinterSetFormat(t *testing.T) {
	registry := newTestRegistry(t)

	module := codeSectionModule(&ir.Block{
		Kind:    ir.CodeBlock,
		Address: 0x1000,
		Size:    1,
		Bytes:   []byte{0x90},
	})

	t.Run("default syntax resolved", func(t *testing.T) {
		p := NewWithRegistry(registry)
		p.SetFormat("elf", "x64")

		var buf bytes.Buffer
		assert.NoError(t, p.Print(&buf, nil, module))
	})

	t.Run("no default syntax", func(t *testing.T) {
		p := NewWithRegistry(registry)
		p.SetFormat("pe", "x64")

		var buf bytes.Buffer
		err := p.Print(&buf, nil, module)
		assert.True(t, errors.Is(err, ErrTargetNotRegistered))
	})
}

func TestPrettyPrinterNamedPolicy(t *testing.T) {
	p := NewWithRegistry(newTestRegistry(t))

	module := codeSectionModule(&ir.Block{
		Kind:    ir.CodeBlock,
		Address: 0x1000,
		Size:    1,
		Bytes:   []byte{0x90},
	})

	// "default" falls back to the factory's module specific default policy
	policy, err := p.GetPolicy(module)
	assert.NoError(t, err)
	assert.True(t, policy.SkipFunctions.Contains("frame_dummy"))

	// a registered named policy replaces the default
	p.SetPolicyName("complete")
	policy, err = p.GetPolicy(module)
	assert.NoError(t, err)
	assert.False(t, policy.SkipFunctions.Contains("frame_dummy"))

	// an unknown name is an error, not a silent fallback
	p.SetPolicyName("missing")
	_, err = p.GetPolicy(module)
	assert.Error(t, err)
}

func TestPrettyPrinterOverrides(t *testing.T) {
	p := NewWithRegistry(newTestRegistry(t))

	module := codeSectionModule(&ir.Block{
		Kind:    ir.CodeBlock,
		Address: 0x1000,
		Size:    1,
		Bytes:   []byte{0x90},
	})

	p.FunctionPolicy().Keep("frame_dummy")
	p.FunctionPolicy().Skip("main")
	p.SectionPolicy().Skip(".comment")

	policy, err := p.GetPolicy(module)
	assert.NoError(t, err)
	assert.False(t, policy.SkipFunctions.Contains("frame_dummy"))
	assert.True(t, policy.SkipFunctions.Contains("main"))
	assert.True(t, policy.SkipSections.Contains(".comment"))
}

func TestPrettyPrinterDebug(t *testing.T) {
	p := NewWithRegistry(newTestRegistry(t))

	module := codeSectionModule(&ir.Block{
		Kind:    ir.CodeBlock,
		Address: 0x1000,
		Size:    1,
		Bytes:   []byte{0x90},
	})

	assert.False(t, p.GetDebug())
	p.SetDebug(true)
	assert.True(t, p.GetDebug())

	policy, err := p.GetPolicy(module)
	assert.NoError(t, err)
	assert.Equal(t, DebugMessages, policy.Debug)
}

func TestPrettyPrinterPolicyNames(t *testing.T) {
	p := NewWithRegistry(newTestRegistry(t))

	module := codeSectionModule(&ir.Block{
		Kind:    ir.CodeBlock,
		Address: 0x1000,
		Size:    1,
		Bytes:   []byte{0x90},
	})

	names, err := p.PolicyNames(module)
	assert.NoError(t, err)
	assert.Equal(t, []string{"complete"}, names)

	exists, err := p.NamedPolicyExists(module, "complete")
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = p.NamedPolicyExists(module, "missing")
	assert.NoError(t, err)
	assert.False(t, exists)
}
