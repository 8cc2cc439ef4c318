// Package policyfile loads printing policy adjustments from YAML files.
// A policy file selects a named base policy and records skip and keep
// adjustments per category that are applied to a pretty printer.
package policyfile

import (
	"fmt"
	"os"

	"github.com/retroenv/asmprinter/internal/printer"
	"gopkg.in/yaml.v3"
)

// Category contains the adjustments for one policy category.
type Category struct {
	Skip []string `yaml:"skip"`
	Keep []string `yaml:"keep"`
	// UseDefaults keeps the base policy defaults, discarding them when set
	// to false. Defaults to true.
	UseDefaults *bool `yaml:"use-defaults"`
}

// File is the parsed content of a policy file.
type File struct {
	// Policy selects the named base policy.
	Policy string `yaml:"policy"`

	Functions     Category `yaml:"functions"`
	Symbols       Category `yaml:"symbols"`
	Sections      Category `yaml:"sections"`
	ArraySections Category `yaml:"array-sections"`
}

// Load reads and parses a policy file.
func Load(name string) (*File, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading policy file '%s': %w", name, err)
	}
	return Parse(data)
}

// Parse parses policy file content.
func Parse(data []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing policy file: %w", err)
	}
	return &file, nil
}

// Apply applies the policy file adjustments to a pretty printer.
func (f *File) Apply(p *printer.PrettyPrinter) {
	if f.Policy != "" {
		p.SetPolicyName(f.Policy)
	}

	applyCategory(f.Functions, p.FunctionPolicy())
	applyCategory(f.Symbols, p.SymbolPolicy())
	applyCategory(f.Sections, p.SectionPolicy())
	applyCategory(f.ArraySections, p.ArraySectionPolicy())
}

func applyCategory(category Category, override *printer.Override) {
	for _, name := range category.Skip {
		override.Skip(name)
	}
	for _, name := range category.Keep {
		override.Keep(name)
	}
	if category.UseDefaults != nil {
		override.UseDefaults(*category.UseDefaults)
	}
}
