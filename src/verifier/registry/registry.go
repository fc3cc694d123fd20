package registry

import (
	"sort"
	"strings"

	"github.com/trustmesh/newsverify/src/verifier/types"
)

// Outlet is one allowlisted news domain with its trust tier.
type Outlet struct {
	Domain string
	Name   string
	Tier   types.TrustTier
}

// Registry is the process-wide trusted-domain table. Read-only after
// construction.
type Registry struct {
	outlets map[string]Outlet
	domains []string
}

// New builds a registry from a list of outlets. Domains are normalized and
// duplicates keep the first entry.
func New(outlets []Outlet) *Registry {
	r := &Registry{outlets: make(map[string]Outlet, len(outlets))}
	for _, o := range outlets {
		d := NormalizeDomain(o.Domain)
		if d == "" {
			continue
		}
		if _, ok := r.outlets[d]; ok {
			continue
		}
		o.Domain = d
		r.outlets[d] = o
		r.domains = append(r.domains, d)
	}
	sort.Strings(r.domains)
	return r
}

// Lookup returns the outlet for a domain, normalizing the host first.
func (r *Registry) Lookup(domain string) (Outlet, bool) {
	o, ok := r.outlets[NormalizeDomain(domain)]
	return o, ok
}

// Contains reports whether the domain is allowlisted.
func (r *Registry) Contains(domain string) bool {
	_, ok := r.Lookup(domain)
	return ok
}

// Weight returns the trust-tier vote weight for a domain, or 0 when the
// domain is not allowlisted.
func (r *Registry) Weight(domain string) int {
	o, ok := r.Lookup(domain)
	if !ok {
		return 0
	}
	return o.Tier.Weight()
}

// Domains returns the allowlist in sorted order. The slice is a copy.
func (r *Registry) Domains() []string {
	out := make([]string, len(r.domains))
	copy(out, r.domains)
	return out
}

// Len returns the number of allowlisted domains.
func (r *Registry) Len() int { return len(r.domains) }

// NormalizeDomain lowercases a host and strips a leading www prefix.
func NormalizeDomain(domain string) string {
	d := strings.ToLower(strings.TrimSpace(domain))
	d = strings.TrimSuffix(d, ".")
	return strings.TrimPrefix(d, "www.")
}
