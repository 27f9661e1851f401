package adminprefix

import (
	"testing"

	"github.com/vnaddr/classifier/internal/level"
)

func testHandler() *Handler {
	return NewHandler(
		[]string{"Hồ Chí Minh", "Hà Nội", "Tuyên Quang"},
		[]string{"Nam Từ Liêm", "Tân Bình", "Yên Sơn"},
		[]string{"Cầu Diễn", "Tân Bình", "Tân Bình"},
	)
}

func TestStripGreedyLongestFirst(t *testing.T) {
	h := testHandler()

	cases := []struct {
		name string
		in   string
		lvl  level.Level
		want string
	}{
		{"tp_dot_hcm_compact", "tp.hcm", level.Province, "hcm"},
		{"tp_dot_space", "tp. ha noi", level.Province, "ha noi"},
		{"tinh", "tinh tuyen quang", level.Province, "tuyen quang"},
		{"quan_abbrev", "q.3", level.District, "3"},
		{"phuong_abbrev", "p.1", level.Ward, "1"},
		{"no_prefix", "ha noi", level.Province, "ha noi"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := h.Strip(tc.in, tc.lvl)
			if got != tc.want {
				t.Errorf("Strip(%q, %v) = %q, want %q", tc.in, tc.lvl, got, tc.want)
			}
		})
	}
}

func TestExpandResolvesAbbreviation(t *testing.T) {
	h := testHandler()
	got := h.Expand("tp.hcm", level.Province)
	if got != "ho chi minh" {
		t.Errorf("Expand(tp.hcm) = %q, want %q", got, "ho chi minh")
	}
}

func TestExpandFallsThroughWhenNotAnAbbreviation(t *testing.T) {
	h := testHandler()
	got := h.Expand("tinh tuyen quang", level.Province)
	if got != "tuyen quang" {
		t.Errorf("Expand(tinh tuyen quang) = %q, want %q", got, "tuyen quang")
	}
}

func TestExpandResolvesUnambiguousInitials(t *testing.T) {
	// "ntl" has a single contributing name ("Nam Từ Liêm") in the test
	// handler, so Expand takes the unambiguous path; the colliding-key case
	// is covered in dictionary_test.go.
	h := testHandler()
	got := h.Expand("ntl", level.District)
	if got != "nam tu liem" {
		t.Errorf("Expand(ntl) = %q, want %q", got, "nam tu liem")
	}
}
