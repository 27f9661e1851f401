package engine

import (
	"testing"

	"github.com/vnaddr/classifier/internal/gazetteer"
)

// testEngine builds a small reference hierarchy covering the handful of
// provinces/districts/wards the package's scenario tests exercise,
// including the deliberate "Tuyên Quang" / "Tân Bình" collisions the
// component design calls out by name.
func testEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(Config{
		Provinces: []gazetteer.Province{
			{Code: "HN", Name: "Hà Nội"},
			{Code: "HCM", Name: "Hồ Chí Minh"},
			{Code: "TQ", Name: "Tuyên Quang"},
		},
		Districts: []gazetteer.District{
			{Code: "NTL", Name: "Nam Từ Liêm", ProvinceCode: "HN"},
			{Code: "Q3", Name: "3", ProvinceCode: "HCM"},
			{Code: "TBD", Name: "Tân Bình", ProvinceCode: "HCM"},
			{Code: "YS", Name: "Yên Sơn", ProvinceCode: "TQ"},
		},
		Wards: []gazetteer.Ward{
			{Code: "CD", Name: "Cầu Diễn", DistrictCode: "NTL"},
			{Code: "W1", Name: "1", DistrictCode: "Q3"},
			{Code: "TBW", Name: "Tân Bình", DistrictCode: "TBD"},
			{Code: "TBY", Name: "Tân Bình", DistrictCode: "YS"},
		},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return e
}

func TestClassifyScenarioExactTrie(t *testing.T) {
	e := testEngine(t)
	got := e.Classify("Cầu Diễn, Nam Từ Liêm, Hà Nội")
	if got.Tier != TierTrie || got.Confidence != 1.0 {
		t.Fatalf("tier/confidence = %v/%v, want trie/1.0", got.Tier, got.Confidence)
	}
	if got.ProvinceName != "Hà Nội" || got.DistrictName != "Nam Từ Liêm" || got.WardName != "Cầu Diễn" {
		t.Errorf("got %+v", got)
	}
}

func TestClassifyScenarioSameNameAcrossLevels(t *testing.T) {
	e := testEngine(t)
	got := e.Classify("Tân Bình, Tân Bình, Hồ Chí Minh")
	if got.ProvinceName != "Hồ Chí Minh" || got.DistrictName != "Tân Bình" || got.WardName != "Tân Bình" {
		t.Fatalf("got %+v", got)
	}
	if got.Tier != TierTrie {
		t.Errorf("Tier = %v, want trie", got.Tier)
	}
}

func TestClassifyScenarioAdminPrefixAndStreetNoise(t *testing.T) {
	e := testEngine(t)
	got := e.Classify("357/28, Ng-T Thuật, P.1, Q.3, TP.HCM")
	if got.ProvinceName != "Hồ Chí Minh" {
		t.Fatalf("ProvinceName = %q, want Hồ Chí Minh (%+v)", got.ProvinceName, got)
	}
	if got.DistrictName != "3" || got.WardName != "1" {
		t.Errorf("got %+v, want district=3 ward=1", got)
	}
}

func TestClassifyScenarioLongPrefixWords(t *testing.T) {
	e := testEngine(t)
	got := e.Classify("TT Tân Bình, Huyện Yên Sơn, Tuyên Quang")
	if got.ProvinceName != "Tuyên Quang" || got.DistrictName != "Yên Sơn" || got.WardName != "Tân Bình" {
		t.Fatalf("got %+v", got)
	}
}

func TestClassifyScenarioTypoFallsBackToFuzzyMatch(t *testing.T) {
	// "ha nol" is a one-token typo of "Hà Nội". Against this package's
	// tiny three-province candidate pool it clears the LCS threshold
	// (one of two tokens shared, similarity 0.5) before edit-distance
	// ever runs, so it resolves in Tier 2 at 0.5, the province-only rung of
	// the LCS ladder. A full ~63-province gazetteer may instead land it in
	// Tier 3, whose province-only rung is 0.3, so the confidence check
	// below holds for the LCS outcome only.
	e := testEngine(t)
	got := e.Classify("ha nol")
	if !got.Valid || got.ProvinceName != "Hà Nội" {
		t.Fatalf("got %+v, want province=Hà Nội valid=true", got)
	}
	if got.Tier != TierLCS && got.Tier != TierEdit {
		t.Errorf("Tier = %v, want lcs or edit", got.Tier)
	}
	if got.Confidence != 0.5 {
		t.Errorf("Confidence = %v, want 0.5", got.Confidence)
	}
	if got.DistrictName != "" || got.WardName != "" {
		t.Errorf("expected no district/ward from a bare typo'd province, got %+v", got)
	}
}

func TestClassifyScenarioGarbageYieldsEmptyResult(t *testing.T) {
	e := testEngine(t)
	got := e.Classify("xyz random garbage")
	if got.Valid || got.Tier != TierNone {
		t.Fatalf("got %+v, want valid=false tier=none", got)
	}
}

func TestClassifyEmptyAndPunctuationOnlyInputs(t *testing.T) {
	e := testEngine(t)
	for _, in := range []string{"", "   ", "...,,,///"} {
		got := e.Classify(in)
		if got.Valid || got.Tier != TierNone {
			t.Errorf("Classify(%q) = %+v, want empty result", in, got)
		}
	}
}

func TestClassifyProvinceOnlyInputIsValid(t *testing.T) {
	e := testEngine(t)
	got := e.Classify("Hà Nội")
	if !got.Valid || got.ProvinceName != "Hà Nội" {
		t.Fatalf("got %+v", got)
	}
	if got.DistrictName != "" || got.WardName != "" {
		t.Errorf("expected no district/ward for a province-only input, got %+v", got)
	}
}

func TestClassifyGarbledDistrictKeepsProvinceAndClearsDistrict(t *testing.T) {
	e := testEngine(t)
	got := e.Classify("qzxyqzxyqzxy, Hà Nội")
	if !got.Valid || got.ProvinceName != "Hà Nội" {
		t.Fatalf("got %+v, want province recovered despite garbled district", got)
	}
	if got.DistrictName != "" {
		t.Errorf("DistrictName = %q, want cleared", got.DistrictName)
	}
}

func TestClassifyAmbiguousTownNameYieldsSomeValidTriple(t *testing.T) {
	e := testEngine(t)
	got := e.Classify("Tân Bình, Yên Sơn, Tuyên Quang")
	if !got.Valid || got.ProvinceName != "Tuyên Quang" || got.DistrictName != "Yên Sơn" {
		t.Fatalf("got %+v", got)
	}
	if got.WardName != "Tân Bình" || got.WardCode != "TBY" {
		t.Errorf("expected the Yên Sơn-scoped Tân Bình ward (TBY), got %+v", got)
	}
}

func TestClassifyOwnOutputRoundTrips(t *testing.T) {
	e := testEngine(t)
	got := e.Classify("Cầu Diễn, Nam Từ Liêm, Hà Nội")
	roundTrip := e.Classify(got.WardName + ", " + got.DistrictName + ", " + got.ProvinceName)
	if roundTrip.ProvinceCode != got.ProvinceCode || roundTrip.DistrictCode != got.DistrictCode || roundTrip.WardCode != got.WardCode {
		t.Fatalf("round trip = %+v, want %+v", roundTrip, got)
	}
}
