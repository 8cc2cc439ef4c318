// Package options contains the program options.
package options

import (
	"github.com/xyproto/env/v2"
)

// Parameters contains file path options.
type Parameters struct {
	Input      string // module file to print
	Output     string // output .asm file, stdout if empty
	PolicyFile string // YAML policy adjustment file
}

// Flags contains behavior options.
type Flags struct {
	Format string // target file format, default: module format
	ISA    string // target ISA, default: module ISA
	Syntax string // output syntax, default: registered default for the pair
	Policy string // named policy to start from

	Debug bool
	Quiet bool
}

// SkipFlags contains the policy adjustments given on the command line.
type SkipFlags struct {
	SkipFunctions []string
	KeepFunctions []string
	SkipSymbols   []string
	KeepSymbols   []string
	SkipSections  []string
	KeepSections  []string
	ArraySections []string
}

// Program options of the printer.
type Program struct {
	Parameters
	Flags
	SkipFlags
}

// NewProgram returns program options with environment based defaults.
func NewProgram() Program {
	return Program{
		Flags: Flags{
			Syntax: env.Str("ASMPRINTER_SYNTAX", ""),
			Policy: env.Str("ASMPRINTER_POLICY", "default"),
			Debug:  env.Bool("ASMPRINTER_DEBUG"),
		},
	}
}
