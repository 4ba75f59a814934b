// Package aliasing canonicalizes team and stadium names that arrive in
// different shapes across datasets: official long forms, abbreviations,
// "-SP" style state suffixes, and spellings with or without diacritics.
package aliasing

import (
	"strings"
	"sync"

	"github.com/gosimple/unidecode"
)

// Resolution is the outcome of canonicalizing one raw name.
type Resolution struct {
	// Canonical is the authoritative display form. For names with no alias
	// table entry it is the cleaned input itself.
	Canonical string
	// Region is the two-letter state code recovered from a "-XX" suffix,
	// empty when the input carried none.
	Region string
	// Known reports whether the alias table recognised the name. Unknown
	// names are passed through, not rejected.
	Known bool
}

// Resolver maps raw names to canonical identities. It is pure and performs
// no I/O; results are memoized for the resolver's lifetime, which callers
// scope to one ingestion run.
type Resolver struct {
	mu    sync.RWMutex
	cache map[string]Resolution
}

func NewResolver() *Resolver {
	return &Resolver{cache: make(map[string]Resolution)}
}

// Resolve canonicalizes raw. Same input always yields the same output.
func (r *Resolver) Resolve(raw string) Resolution {
	r.mu.RLock()
	cached, ok := r.cache[raw]
	r.mu.RUnlock()
	if ok {
		return cached
	}

	res := resolve(raw)

	r.mu.Lock()
	r.cache[raw] = res
	r.mu.Unlock()

	return res
}

func resolve(raw string) Resolution {
	name := strings.Join(strings.Fields(raw), " ")
	if name == "" {
		return Resolution{}
	}

	stripped, region := splitRegionSuffix(name)

	// Look up the unstripped form first: suffixed variants like
	// "atletico-pr" are table entries in their own right because the bare
	// stem is ambiguous.
	if canonical, ok := canonicalByAlias[fold(name)]; ok {
		return Resolution{Canonical: canonical, Region: region, Known: true}
	}
	if region != "" {
		if canonical, ok := canonicalByAlias[fold(stripped)]; ok {
			return Resolution{Canonical: canonical, Region: region, Known: true}
		}
	}

	return Resolution{Canonical: stripped, Region: region}
}

// ExtractRegion returns the state code encoded in a trailing "-XX" suffix.
func ExtractRegion(raw string) (string, bool) {
	_, region := splitRegionSuffix(strings.TrimSpace(raw))
	return region, region != ""
}

// Aliases lists the folded alias forms that resolve to canonical, excluding
// the canonical form itself.
func Aliases(canonical string) []string {
	var out []string
	folded := fold(canonical)
	for alias, target := range canonicalByAlias {
		if target == canonical && alias != folded {
			out = append(out, alias)
		}
	}
	return out
}

func splitRegionSuffix(name string) (string, string) {
	idx := strings.LastIndex(name, "-")
	if idx <= 0 || idx != len(name)-3 {
		return name, ""
	}
	code := strings.ToUpper(name[idx+1:])
	if _, ok := regionCodes[code]; !ok {
		return name, ""
	}
	return strings.TrimSpace(name[:idx]), code
}

// fold lowercases and strips diacritics so "Grêmio" and "Gremio" compare
// equal against the alias table.
func fold(s string) string {
	return strings.ToLower(unidecode.Unidecode(s))
}
