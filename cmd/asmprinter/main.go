// Package main implements a retargetable assembly printer for binary module
// representations.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/asmprinter/internal/cli"
	"github.com/retroenv/asmprinter/internal/config"
	"github.com/retroenv/asmprinter/internal/ir"
	"github.com/retroenv/asmprinter/internal/options"
	"github.com/retroenv/asmprinter/internal/policyfile"
	"github.com/retroenv/asmprinter/internal/printer"
	"github.com/retroenv/asmprinter/internal/targets"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	opts, err := cli.ParseFlags()
	logger := config.CreateLogger(opts.Debug, opts.Quiet)

	if err != nil {
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(opts)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	printBanner(opts)

	if err := printFile(logger, opts); err != nil {
		logger.Fatal("Printing failed", log.Err(err))
	}
}

func printBanner(opts options.Program) {
	if opts.Quiet {
		return
	}
	fmt.Println("[-------------------------------------------]")
	fmt.Println("[ asmprinter - retargetable module printer  ]")
	fmt.Printf("[-------------------------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}

func printFile(logger *log.Logger, opts options.Program) error {
	if err := targets.RegisterAll(); err != nil {
		return fmt.Errorf("registering targets: %w", err)
	}

	module, err := ir.LoadFile(opts.Input)
	if err != nil {
		return fmt.Errorf("loading module: %w", err)
	}

	if !opts.Quiet {
		logger.Info("Printing module",
			log.String("file", opts.Input),
			log.String("format", module.Format),
			log.String("isa", module.ISA),
		)
	}

	p, err := configurePrinter(opts, module)
	if err != nil {
		return err
	}

	var output io.WriteCloser = os.Stdout
	if opts.Output != "" {
		output, err = os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("creating output file '%s': %w", opts.Output, err)
		}
	}

	ctx := ir.NewContext(logger)
	if err := p.Print(output, ctx, module); err != nil {
		if opts.Output != "" {
			_ = output.Close()
		}
		return fmt.Errorf("printing module: %w", err)
	}

	if opts.Output != "" {
		return output.Close()
	}
	return nil
}

// configurePrinter builds the pretty printer from the command line and
// policy file settings.
func configurePrinter(opts options.Program, module *ir.Module) (*printer.PrettyPrinter, error) {
	p := printer.New()

	format := opts.Format
	if format == "" {
		format = module.Format
	}
	isa := opts.ISA
	if isa == "" {
		isa = module.ISA
	}

	if opts.Syntax != "" {
		p.SetTarget(printer.Target{Format: format, ISA: isa, Syntax: opts.Syntax})
	} else if opts.Format != "" || opts.ISA != "" {
		p.SetFormat(format, isa)
	}

	p.SetDebug(opts.Debug)
	p.SetPolicyName(opts.Policy)

	if opts.PolicyFile != "" {
		file, err := policyfile.Load(opts.PolicyFile)
		if err != nil {
			return nil, err
		}
		file.Apply(p)
	}

	applySkipFlags(opts.SkipFlags, p)
	return p, nil
}

func applySkipFlags(flags options.SkipFlags, p *printer.PrettyPrinter) {
	for _, name := range flags.SkipFunctions {
		p.FunctionPolicy().Skip(name)
	}
	for _, name := range flags.KeepFunctions {
		p.FunctionPolicy().Keep(name)
	}
	for _, name := range flags.SkipSymbols {
		p.SymbolPolicy().Skip(name)
	}
	for _, name := range flags.KeepSymbols {
		p.SymbolPolicy().Keep(name)
	}
	for _, name := range flags.SkipSections {
		p.SectionPolicy().Skip(name)
	}
	for _, name := range flags.KeepSections {
		p.SectionPolicy().Keep(name)
	}
	for _, name := range flags.ArraySections {
		p.ArraySectionPolicy().Skip(name)
	}
}
