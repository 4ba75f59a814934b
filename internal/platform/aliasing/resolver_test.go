package aliasing

import (
	"sync"
	"testing"
)

func TestResolver_OfficialAndSuffixedFormsConverge(t *testing.T) {
	t.Parallel()

	r := NewResolver()

	official := r.Resolve("Sport Club Corinthians Paulista")
	if official.Canonical != "Corinthians" {
		t.Fatalf("official form: got %q want Corinthians", official.Canonical)
	}
	if official.Region != "" {
		t.Fatalf("official form carries no region, got %q", official.Region)
	}
	if !official.Known {
		t.Fatal("official form should be a known alias")
	}

	suffixed := r.Resolve("Corinthians-SP")
	if suffixed.Canonical != "Corinthians" {
		t.Fatalf("suffixed form: got %q want Corinthians", suffixed.Canonical)
	}
	if suffixed.Region != "SP" {
		t.Fatalf("suffixed form: got region %q want SP", suffixed.Region)
	}
}

func TestResolver_DiacriticInsensitive(t *testing.T) {
	t.Parallel()

	r := NewResolver()

	plain := r.Resolve("Gremio")
	accented := r.Resolve("Grêmio")
	if plain.Canonical != accented.Canonical {
		t.Fatalf("fold mismatch: %q vs %q", plain.Canonical, accented.Canonical)
	}
	if plain.Canonical != "Grêmio" {
		t.Fatalf("canonical form keeps diacritics: got %q", plain.Canonical)
	}
}

func TestResolver_IdempotentOnCanonicalForm(t *testing.T) {
	t.Parallel()

	r := NewResolver()
	inputs := []string{
		"Palmeiras-SP",
		"CR Flamengo",
		"sao paulo fc",
		"Vasco",
		"Club Athletico Paranaense",
	}
	for _, raw := range inputs {
		first := r.Resolve(raw)
		again := r.Resolve(first.Canonical)
		if again.Canonical != first.Canonical {
			t.Fatalf("resolve(%q)=%q but resolve of canonical gives %q",
				raw, first.Canonical, again.Canonical)
		}
	}
}

func TestResolver_UnknownNamePassesThrough(t *testing.T) {
	t.Parallel()

	r := NewResolver()

	res := r.Resolve("  Juventude   da Serra ")
	if res.Known {
		t.Fatal("unknown name must not be marked known")
	}
	if res.Canonical != "Juventude da Serra" {
		t.Fatalf("unknown name should pass through cleaned, got %q", res.Canonical)
	}

	suffixed := r.Resolve("Remo-PA")
	if suffixed.Canonical != "Remo" || suffixed.Region != "PA" {
		t.Fatalf("unknown suffixed name: got %+v", suffixed)
	}
}

func TestResolver_SuffixOnlyStrippedForKnownRegionCodes(t *testing.T) {
	t.Parallel()

	r := NewResolver()

	res := r.Resolve("Grêmio-ZZ")
	if res.Region != "" {
		t.Fatalf("ZZ is not a region code, got region %q", res.Region)
	}
	if res.Known {
		t.Fatalf("unstripped suffix should miss the alias table, got %+v", res)
	}
}

func TestResolver_EmptyInput(t *testing.T) {
	t.Parallel()

	res := NewResolver().Resolve("   ")
	if res.Canonical != "" || res.Region != "" || res.Known {
		t.Fatalf("blank input should resolve to zero value, got %+v", res)
	}
}

func TestResolver_ConcurrentResolveIsStable(t *testing.T) {
	t.Parallel()

	r := NewResolver()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := r.Resolve("Sport Club Internacional").Canonical; got != "Internacional" {
					t.Errorf("concurrent resolve: got %q", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestAliases_ListsVariants(t *testing.T) {
	t.Parallel()

	aliases := Aliases("Vasco da Gama")
	if len(aliases) == 0 {
		t.Fatal("expected at least one alias for Vasco da Gama")
	}
	for _, alias := range aliases {
		if alias == "vasco da gama" {
			t.Fatal("alias list must exclude the canonical form itself")
		}
	}
}

func TestExtractRegion(t *testing.T) {
	t.Parallel()

	region, ok := ExtractRegion("Flamengo-RJ")
	if !ok || region != "RJ" {
		t.Fatalf("got (%q,%v) want (RJ,true)", region, ok)
	}
	if _, ok := ExtractRegion("Flamengo"); ok {
		t.Fatal("no suffix should yield no region")
	}
}
