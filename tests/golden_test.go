package tests

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/vnaddr/classifier/internal/engine"
	"github.com/vnaddr/classifier/internal/gazetteer"
)

// goldenCase là một entry file JSON dưới golden/: địa chỉ thô và kết quả
// classify() mong đợi.
type goldenCase struct {
	Raw    string `json:"raw"`
	Expect struct {
		Status       string `json:"status"` // matched | unmatched
		Tier         string `json:"tier"`
		ProvinceName string `json:"province_name"`
		DistrictName string `json:"district_name"`
		WardName     string `json:"ward_name"`
	} `json:"expect"`
}

// goldenEngine xây engine tham chiếu nhỏ dùng chung cho mọi golden case —
// cùng bộ dữ liệu với scenario tests của internal/engine, kể cả các va
// chạm tên cố ý (Tuyên Quang / Tân Bình).
func goldenEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e, err := engine.New(engine.Config{
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
		t.Fatalf("engine.New failed: %v", err)
	}
	return e
}

// TestGoldenCases chạy mọi file golden/*.json qua engine.Classify và so
// sánh với kết quả mong đợi.
func TestGoldenCases(t *testing.T) {
	eng := goldenEngine(t)

	files, err := os.ReadDir("golden")
	if err != nil {
		t.Fatalf("không thể đọc thư mục golden: %v", err)
	}

	for _, file := range files {
		if filepath.Ext(file.Name()) != ".json" {
			continue
		}
		name := file.Name()
		t.Run(name, func(t *testing.T) {
			runGoldenFile(t, eng, filepath.Join("golden", name))
		})
	}
}

func runGoldenFile(t *testing.T, eng *engine.Engine, path string) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("không thể đọc file %s: %v", path, err)
	}

	var tc goldenCase
	if err := json.Unmarshal(data, &tc); err != nil {
		t.Fatalf("không thể parse JSON từ %s: %v", path, err)
	}

	got := eng.Classify(tc.Raw)

	wantStatus := tc.Expect.Status
	gotStatus := "unmatched"
	if got.Valid {
		gotStatus = "matched"
	}
	if gotStatus != wantStatus {
		t.Errorf("status = %s, want %s (got %+v)", gotStatus, wantStatus, got)
	}

	if tc.Expect.Tier != "" && string(got.Tier) != tc.Expect.Tier {
		t.Errorf("tier = %s, want %s", got.Tier, tc.Expect.Tier)
	}
	if tc.Expect.ProvinceName != "" && got.ProvinceName != tc.Expect.ProvinceName {
		t.Errorf("province_name = %q, want %q", got.ProvinceName, tc.Expect.ProvinceName)
	}
	if tc.Expect.DistrictName != "" && got.DistrictName != tc.Expect.DistrictName {
		t.Errorf("district_name = %q, want %q", got.DistrictName, tc.Expect.DistrictName)
	}
	if tc.Expect.WardName != "" && got.WardName != tc.Expect.WardName {
		t.Errorf("ward_name = %q, want %q", got.WardName, tc.Expect.WardName)
	}
}
