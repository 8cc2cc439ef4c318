package policyfile

import (
	"testing"

	"github.com/retroenv/asmprinter/internal/printer"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/set"
)

const testPolicyFile = `
policy: static

functions:
  skip:
    - frame_dummy
  keep:
    - main

sections:
  skip:
    - .comment
  use-defaults: false

array-sections:
  skip:
    - .init_array
`

func TestParse(t *testing.T) {
	file, err := Parse([]byte(testPolicyFile))
	assert.NoError(t, err)

	assert.Equal(t, "static", file.Policy)
	assert.Equal(t, []string{"frame_dummy"}, file.Functions.Skip)
	assert.Equal(t, []string{"main"}, file.Functions.Keep)
	assert.Equal(t, []string{".comment"}, file.Sections.Skip)
	assert.NotNil(t, file.Sections.UseDefaults)
	assert.False(t, *file.Sections.UseDefaults)
	assert.Nil(t, file.Functions.UseDefaults)
	assert.Equal(t, []string{".init_array"}, file.ArraySections.Skip)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("functions: [not a mapping"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	file, err := Parse([]byte(testPolicyFile))
	assert.NoError(t, err)

	p := printer.New()
	file.Apply(p)

	assert.Equal(t, "static", p.PolicyName())

	defaults := set.New[string]()
	defaults.Add("main")
	functions := p.FunctionPolicy().Apply(defaults)
	assert.True(t, functions.Contains("frame_dummy"))
	assert.False(t, functions.Contains("main"))

	// use-defaults false discards the base policy's section set
	sectionDefaults := set.New[string]()
	sectionDefaults.Add(".eh_frame")
	sections := p.SectionPolicy().Apply(sectionDefaults)
	assert.True(t, sections.Contains(".comment"))
	assert.False(t, sections.Contains(".eh_frame"))
}

func TestApplyEmptyFile(t *testing.T) {
	file, err := Parse([]byte(""))
	assert.NoError(t, err)

	p := printer.New()
	file.Apply(p)

	// an empty file changes nothing
	assert.Equal(t, "default", p.PolicyName())
}
