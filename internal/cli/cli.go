// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/asmprinter/internal/options"
)

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	opts := options.NewProgram()
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}
	normalizeOptions(&opts)

	return opts, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "input module file to print")
	flags.StringVar(&opts.Output, "o", "", "name of the output .asm file, printed on console if no name given")
	flags.StringVar(&opts.PolicyFile, "policy-file", "", "YAML file with policy adjustments")

	flags.StringVar(&opts.Format, "format", "", "target file format (default: module format)")
	flags.StringVar(&opts.ISA, "isa", "", "target ISA (default: module ISA)")
	flags.StringVar(&opts.Syntax, "syntax", opts.Syntax, "output syntax (default: registered default for the target)")
	flags.StringVar(&opts.Policy, "policy", opts.Policy, "named policy to start from")

	flags.BoolVar(&opts.Debug, "debug", opts.Debug, "enable debug messages in the output")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	listFlag(flags, &opts.SkipFunctions, "skip-function", "add a function to the function skip set")
	listFlag(flags, &opts.KeepFunctions, "keep-function", "remove a function from the function skip set")
	listFlag(flags, &opts.SkipSymbols, "skip-symbol", "add a symbol to the symbol skip set")
	listFlag(flags, &opts.KeepSymbols, "keep-symbol", "remove a symbol from the symbol skip set")
	listFlag(flags, &opts.SkipSections, "skip-section", "add a section to the section skip set")
	listFlag(flags, &opts.KeepSections, "keep-section", "remove a section from the section skip set")
	listFlag(flags, &opts.ArraySections, "array-section", "add a section to the array section set")
}

// listFlag registers a repeatable string flag appending to a slice.
func listFlag(flags *flag.FlagSet, values *[]string, name, usage string) {
	flags.Func(name, usage, func(value string) error {
		*values = append(*values, value)
		return nil
	})
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Println(e.msg)
	}
	fmt.Printf("usage: asmprinter [options] <module file to print>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after the module file, please pass the module file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes option values
func normalizeOptions(opts *options.Program) {
	opts.Format = strings.ToLower(opts.Format)
	opts.ISA = strings.ToLower(opts.ISA)
	opts.Syntax = strings.ToLower(opts.Syntax)
}
