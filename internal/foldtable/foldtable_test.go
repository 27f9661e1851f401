package foldtable

import "testing"

func TestFoldBasics(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"hanoi", "Hà Nội", "Ha Noi"},
		{"hcm", "Hồ Chí Minh", "Ho Chi Minh"},
		{"dstroke", "Đà Nẵng", "Da Nang"},
		{"lowercase_dstroke", "đà nẵng", "da nang"},
		{"plain_ascii_passthrough", "Tan Binh 123", "Tan Binh 123"},
		{"punctuation_passthrough", "P.1, Q.3", "P.1, Q.3"},
		{"tuyen_quang", "Tuyên Quang", "Tuyen Quang"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Fold(tc.in)
			if got != tc.want {
				t.Errorf("Fold(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFoldIdempotent(t *testing.T) {
	in := "Cầu Diễn, Nam Từ Liêm, Hà Nội"
	once := Fold(in)
	twice := Fold(once)
	if once != twice {
		t.Errorf("Fold is not idempotent on already-folded input: %q != %q", once, twice)
	}
}

func TestSizeApproximatesSpecBudget(t *testing.T) {
	if Size() < 100 {
		t.Errorf("Size() = %d, expected an exhaustive table (~140 entries)", Size())
	}
}
