package gazetteer

import "testing"

func sampleIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := Build(
		[]Province{
			{Code: "HN", Name: "Hà Nội"},
			{Code: "HCM", Name: "Hồ Chí Minh"},
		},
		[]District{
			{Code: "NTL", Name: "Nam Từ Liêm", ProvinceCode: "HN"},
			{Code: "TB-HCM", Name: "Tân Bình", ProvinceCode: "HCM"},
		},
		[]Ward{
			{Code: "CD", Name: "Cầu Diễn", DistrictCode: "NTL"},
			{Code: "TB-W", Name: "Tân Bình", DistrictCode: "TB-HCM"},
		},
	)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return idx
}

func TestResolveProvinceCode(t *testing.T) {
	idx := sampleIndex(t)
	code, ok := idx.ResolveProvinceCode("Hà Nội")
	if !ok || code != "HN" {
		t.Errorf("ResolveProvinceCode = %q, %v; want HN, true", code, ok)
	}
}

func TestResolveDistrictCodeRequiresMatchingParent(t *testing.T) {
	idx := sampleIndex(t)
	code, ok := idx.ResolveDistrictCode("Tân Bình", "HCM")
	if !ok || code != "TB-HCM" {
		t.Errorf("ResolveDistrictCode(Tân Bình, HCM) = %q, %v; want TB-HCM, true", code, ok)
	}
	_, ok = idx.ResolveDistrictCode("Tân Bình", "HN")
	if ok {
		t.Error("expected no district named Tân Bình under Hà Nội")
	}
}

func TestIsValidTriple(t *testing.T) {
	idx := sampleIndex(t)
	if !idx.IsValidTriple("CD", "NTL", "HN") {
		t.Error("expected valid full triple")
	}
	if idx.IsValidTriple("TB-W", "NTL", "HN") {
		t.Error("expected invalid: ward TB-W belongs to TB-HCM, not NTL")
	}
	if !idx.IsValidTriple("", "NTL", "HN") {
		t.Error("expected valid province+district with no ward")
	}
	if idx.IsValidTriple("", "", "") {
		t.Error("expected invalid: no province")
	}
}

func TestBuildRejectsUnknownParentReference(t *testing.T) {
	_, err := Build(
		[]Province{{Code: "HN", Name: "Hà Nội"}},
		[]District{{Code: "X", Name: "Ghost", ProvinceCode: "NOPE"}},
		nil,
	)
	if err == nil {
		t.Fatal("expected referential-integrity error for unknown province code")
	}
}

func TestAllNamesPreserveLoadOrder(t *testing.T) {
	idx := sampleIndex(t)
	names := idx.AllDistrictNames()
	want := []string{"Nam Từ Liêm", "Tân Bình"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("AllDistrictNames()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
