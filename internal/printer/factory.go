package printer

import (
	"sort"

	"github.com/retroenv/asmprinter/internal/ir"
)

// Factory encloses the default printing configuration of one target and
// builds configured print engines for it.
type Factory interface {
	// DefaultPolicy returns the policy used when no policy name was given.
	DefaultPolicy(module *ir.Module) *Policy

	// Create builds a print engine bound to the module and policy.
	Create(ctx *ir.Context, module *ir.Module, policy *Policy) (*Engine, error)

	// FindNamedPolicy returns the policy with the given name, or nil if
	// none was found.
	FindNamedPolicy(name string) *Policy

	// PolicyNames returns the names of all named policies in sorted order.
	PolicyNames() []string
}

// NamedPolicies is the named policy table owned by a factory. Concrete
// factories embed it and register their policies at construction time, the
// table is read-only afterwards.
type NamedPolicies struct {
	policies map[string]*Policy
}

// RegisterNamedPolicy registers a named policy. Call at factory
// construction time.
func (n *NamedPolicies) RegisterNamedPolicy(name string, policy *Policy) {
	if n.policies == nil {
		n.policies = map[string]*Policy{}
	}
	n.policies[name] = policy
}

// DeregisterNamedPolicy removes a previously registered named policy. Call
// at factory construction time.
func (n *NamedPolicies) DeregisterNamedPolicy(name string) {
	delete(n.policies, name)
}

// FindNamedPolicy returns the policy with the given name, or nil if none
// was found.
func (n *NamedPolicies) FindNamedPolicy(name string) *Policy {
	return n.policies[name]
}

// PolicyNames returns the names of all named policies in sorted order.
func (n *NamedPolicies) PolicyNames() []string {
	names := make([]string, 0, len(n.policies))
	for name := range n.policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
