package textnorm

import (
	"strings"
	"testing"
)

func TestCompactInputPreprocessing(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"camel_boundary", "TỉnhThái Nguyên", "Tỉnh Thái Nguyên"},
		{"already_spaced", "Tỉnh Thái Nguyên", "Tỉnh Thái Nguyên"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CompactInputPreprocessing(tc.in)
			if got != tc.want {
				t.Errorf("CompactInputPreprocessing(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestStructuralPreservesDotsCommasSlashes(t *testing.T) {
	got := StructuralNormalize("357/28, Ng-T Thuật, P.1, Q.3, TP.HCM")
	for _, must := range []string{".", ",", "/"} {
		if !strings.Contains(got, must) {
			t.Errorf("structural normalize(%q) lost %q: got %q", "357/28, Ng-T Thuật, P.1, Q.3, TP.HCM", must, got)
		}
	}
}

func TestAggressiveDotBecomesSpaceNotDeletion(t *testing.T) {
	got := AggressiveNormalize("tp.hcm")
	if got != "tp hcm" {
		t.Errorf("AggressiveNormalize(%q) = %q, want %q", "tp.hcm", got, "tp hcm")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, mode := range []Mode{Structural, Aggressive} {
		in := "Cầu Diễn, Nam Từ Liêm, Hà Nội"
		once := Normalize(in, mode)
		twice := Normalize(once, mode)
		if once != twice {
			t.Errorf("mode %v: Normalize not idempotent: %q != %q", mode, once, twice)
		}
	}
}

func TestStripsSymbolCategories(t *testing.T) {
	got := StructuralNormalize("Hà Nội™ 100°C")
	if strings.ContainsAny(got, "™°") {
		t.Errorf("expected symbol runes stripped, got %q", got)
	}
}

func TestTokenize(t *testing.T) {
	toks := Tokenize(AggressiveNormalize("Cầu Diễn Nam Từ Liêm Hà Nội"))
	want := []string{"cau", "dien", "nam", "tu", "liem", "ha", "noi"}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(toks), toks, len(want))
	}
	for i := range want {
		if toks[i] != want[i] {
			t.Errorf("token[%d] = %q, want %q", i, toks[i], want[i])
		}
	}
}
