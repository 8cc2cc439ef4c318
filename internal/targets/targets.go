// Package targets registers the available printer targets.
package targets

import (
	"fmt"

	"github.com/retroenv/asmprinter/internal/printer"
	"github.com/retroenv/asmprinter/internal/targets/att"
	"github.com/retroenv/asmprinter/internal/targets/intel"
)

// RegisterAll registers all built-in printer factories with the process
// wide registry. Call once during initialization before any printing.
func RegisterAll() error {
	if err := printer.Register([]string{"elf"}, []string{"x64", "x86", "arm64"},
		[]string{att.Name}, att.NewFactory(), true); err != nil {
		return fmt.Errorf("registering att printer: %w", err)
	}

	if err := printer.Register([]string{"elf"}, []string{"x64", "x86"},
		[]string{intel.Name}, intel.NewFactory(), false); err != nil {
		return fmt.Errorf("registering intel printer: %w", err)
	}
	return nil
}

// RegisterAllWith registers all built-in printer factories with an explicit
// registry.
func RegisterAllWith(registry *printer.Registry) error {
	if err := registry.Register([]string{"elf"}, []string{"x64", "x86", "arm64"},
		[]string{att.Name}, att.NewFactory(), true); err != nil {
		return fmt.Errorf("registering att printer: %w", err)
	}

	if err := registry.Register([]string{"elf"}, []string{"x64", "x86"},
		[]string{intel.Name}, intel.NewFactory(), false); err != nil {
		return fmt.Errorf("registering intel printer: %w", err)
	}
	return nil
}
