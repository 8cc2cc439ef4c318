// Package elf contains the ELF specific directive emission shared by the
// GNU as compatible output dialects.
package elf

import (
	"github.com/retroenv/asmprinter/internal/ir"
	"github.com/retroenv/asmprinter/internal/printer"
)

// wellKnownSections have a dedicated section switch directive in GNU as.
var wellKnownSections = map[string]bool{
	".text": true,
	".data": true,
	".bss":  true,
}

// PrintSectionHeaderDirective prints the section switch directive without
// completing the line, the section properties follow.
func PrintSectionHeaderDirective(e *printer.Engine, section *ir.Section) {
	if wellKnownSections[section.Name] {
		e.Out().WriteString(section.Name)
		return
	}
	e.Out().Printf("%s %s", e.Syntax().Section, section.Name)
}

// PrintSectionProperties completes the section directive line with the ELF
// flags and section type.
func PrintSectionProperties(e *printer.Engine, section *ir.Section) {
	if wellKnownSections[section.Name] {
		e.Out().Newline()
		return
	}

	flags := ""
	if section.HasFlag(ir.SectionLoaded) {
		flags += "a"
	}
	if section.HasFlag(ir.SectionWritable) {
		flags += "w"
	}
	if section.HasFlag(ir.SectionExecutable) {
		flags += "x"
	}

	sectionType := "@progbits"
	if section.HasFlag(ir.SectionBSS) {
		sectionType = "@nobits"
	}
	e.Out().Printf(", \"%s\", %s\n", flags, sectionType)
}

// PrintFunctionHeader prints the ELF function framing: visibility, symbol
// type and the function label.
func PrintFunctionHeader(e *printer.Engine, name string, _ uint64) {
	if name == "" {
		return
	}
	syn := e.Syntax()
	e.Out().Printf("%s %s\n", syn.Global, name)
	e.Out().Printf(".type %s, @function\n", name)
	e.Out().Printf("%s%s\n", name, syn.LabelSuffix)
}

// PrintFunctionFooter prints the ELF symbol size directive closing a
// function.
func PrintFunctionFooter(e *printer.Engine, name string, _ uint64) {
	if name == "" {
		return
	}
	e.Out().Printf(".size %s, .-%s\n", name, name)
}

// DefaultPolicyName returns the name of the policy to use for a module
// when none was selected: dynamically linked modules use the dynamic
// policy, everything else the static one.
func DefaultPolicyName(module *ir.Module) string {
	for _, section := range module.Sections {
		if section.Name == ".dynamic" {
			return "dynamic"
		}
	}
	return "static"
}
