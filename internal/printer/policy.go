// Package printer implements the retargetable assembly printer core: the
// printing policies, the target registry, the printer factories, the caller
// facing facade and the traversal engine that emits the assembly text.
package printer

import (
	"github.com/retroenv/retrogolib/set"
)

// DebugStyle selects whether the printer includes debugging messages in its
// output.
type DebugStyle int

const (
	// NoDebug omits debugging messages.
	NoDebug DebugStyle = iota
	// DebugMessages includes debugging messages as comments in the output.
	DebugMessages
)

// Policy is a named, composable set of inclusion and exclusion rules that
// controls what the print engine renders. Membership alone decides
// inclusion, the traversal order never affects policy decisions.
type Policy struct {
	// SkipFunctions contains functions to avoid printing the contents and
	// labels of.
	SkipFunctions set.Set[string]

	// SkipSymbols contains symbols to avoid printing the labels of.
	SkipSymbols set.Set[string]

	// SkipSections contains sections to avoid printing.
	SkipSections set.Set[string]

	// ArraySections contains sections with special handling for data
	// entries: they require an alignment of 8 and contain entries that are
	// skipped because the compiler will add them again.
	ArraySections set.Set[string]

	// CompilerArgs contains additional arguments for a downstream compiler
	// invocation. Unused by the text printer itself.
	CompilerArgs []string

	Debug DebugStyle
}

// NewPolicy creates a policy with empty skip sets.
func NewPolicy() *Policy {
	return &Policy{
		SkipFunctions: set.New[string](),
		SkipSymbols:   set.New[string](),
		SkipSections:  set.New[string](),
		ArraySections: set.New[string](),
	}
}

// Clone returns a deep copy of the policy.
func (p *Policy) Clone() *Policy {
	clone := &Policy{
		SkipFunctions: cloneSet(p.SkipFunctions),
		SkipSymbols:   cloneSet(p.SkipSymbols),
		SkipSections:  cloneSet(p.SkipSections),
		ArraySections: cloneSet(p.ArraySections),
		Debug:         p.Debug,
	}
	clone.CompilerArgs = append(clone.CompilerArgs, p.CompilerArgs...)
	return clone
}

// Override records skip and keep adjustments for one policy category. The
// adjustments are applied to a base policy set when the effective policy is
// resolved at print time.
type Override struct {
	skip        set.Set[string]
	keep        set.Set[string]
	useDefaults bool
}

// NewOverride creates an override that keeps the base policy defaults.
func NewOverride() *Override {
	return &Override{
		skip:        set.New[string](),
		keep:        set.New[string](),
		useDefaults: true,
	}
}

// Skip records a name to add to the skip set.
func (o *Override) Skip(name string) {
	o.skip.Add(name)
}

// Keep records a name to remove from the skip set.
func (o *Override) Keep(name string) {
	o.keep.Add(name)
}

// UseDefaults sets whether the base policy defaults are kept. If false, the
// defaults are discarded before the skip and keep adjustments are applied.
func (o *Override) UseDefaults(value bool) {
	o.useDefaults = value
}

// Apply resolves the override against a base set: the defaults are dropped
// unless UseDefaults is set, then the recorded skips are added and the
// recorded keeps removed. The base set is not modified.
func (o *Override) Apply(defaults set.Set[string]) set.Set[string] {
	result := set.New[string]()
	if o.useDefaults {
		for name := range defaults {
			result.Add(name)
		}
	}
	for name := range o.skip {
		result.Add(name)
	}
	for name := range o.keep {
		delete(result, name)
	}
	return result
}

func cloneSet(s set.Set[string]) set.Set[string] {
	clone := set.New[string]()
	for name := range s {
		clone.Add(name)
	}
	return clone
}
