package adminprefix

import "testing"

func TestBuildDictionaryAmbiguousKeyFirstInsertionWins(t *testing.T) {
	// "Ha Long" and "Hoang Long" both yield bare initials "hl".
	d := BuildDictionary([]string{"Ha Long", "Hoang Long"})

	if _, ok := d.unambiguous["hl"]; ok {
		t.Fatalf("expected colliding key to be recorded as ambiguous, not unambiguous")
	}
	got, ok := d.Lookup("hl")
	if !ok {
		t.Fatal("expected ambiguous lookup to still resolve to first candidate")
	}
	if got != "ha long" {
		t.Errorf("Lookup(hl) = %q, want first-inserted %q", got, "ha long")
	}
}

func TestBuildDictionarySkipsSingleTokenNames(t *testing.T) {
	d := BuildDictionary([]string{"Hue"})
	if len(d.unambiguous)+len(d.ambiguous) != 0 {
		t.Errorf("single-token names should not contribute abbreviation keys")
	}
}

func TestBuildDictionaryFirstPlusLastForThreeTokenNames(t *testing.T) {
	d := BuildDictionary([]string{"Ho Chi Minh"})
	got, ok := d.Lookup("ho minh")
	if !ok || got != "ho chi minh" {
		t.Errorf("Lookup(ho minh) = %q, %v; want %q, true", got, ok, "ho chi minh")
	}
	gotDotted, ok := d.Lookup("h.c.m")
	if !ok || gotDotted != "ho chi minh" {
		t.Errorf("Lookup(h.c.m) = %q, %v; want %q, true", gotDotted, ok, "ho chi minh")
	}
}
