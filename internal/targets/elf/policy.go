package elf

import (
	"github.com/retroenv/asmprinter/internal/printer"
	"github.com/retroenv/retrogolib/set"
)

// StaticPolicy returns the policy for statically linked modules.
func StaticPolicy() *printer.Policy {
	policy := printer.NewPolicy()
	policy.SkipSections = newSet(
		".comment",
		".eh_frame",
		".eh_frame_hdr",
		".note.ABI-tag",
		".note.gnu.build-id",
	)
	policy.ArraySections = newSet(
		".ctors",
		".dtors",
		".fini_array",
		".init_array",
	)
	return policy
}

// DynamicPolicy returns the policy for dynamically linked modules: runtime
// scaffolding that the compiler and linker recreate is skipped.
func DynamicPolicy() *printer.Policy {
	policy := StaticPolicy()
	policy.SkipFunctions = newSet(
		"__do_global_dtors_aux",
		"__libc_csu_fini",
		"__libc_csu_init",
		"_dl_relocate_static_pie",
		"_start",
		"deregister_tm_clones",
		"frame_dummy",
		"register_tm_clones",
	)
	policy.SkipSymbols = newSet(
		"__bss_start",
		"__data_start",
		"__dso_handle",
		"_edata",
		"_end",
		"_fp_hw",
		"_IO_stdin_used",
		"data_start",
	)
	policy.SkipSections = newSet(
		".comment",
		".dynamic",
		".dynstr",
		".dynsym",
		".eh_frame",
		".eh_frame_hdr",
		".fini",
		".got",
		".got.plt",
		".gnu.hash",
		".gnu.version",
		".gnu.version_r",
		".init",
		".interp",
		".note.ABI-tag",
		".note.gnu.build-id",
		".plt",
		".plt.got",
		".plt.sec",
		".rela.dyn",
		".rela.plt",
	)
	return policy
}

// CompletePolicy returns the policy that renders everything.
func CompletePolicy() *printer.Policy {
	return printer.NewPolicy()
}

func newSet(names ...string) set.Set[string] {
	s := set.New[string]()
	for _, name := range names {
		s.Add(name)
	}
	return s
}
