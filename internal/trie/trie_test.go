package trie

import "testing"

func TestInsertLookupExact(t *testing.T) {
	tr := New()
	tr.Insert("ha noi", "Hà Nội")
	if v, ok := tr.Lookup("ha noi"); !ok || v != "Hà Nội" {
		t.Fatalf("Lookup(ha noi) = %q, %v", v, ok)
	}
	if _, ok := tr.Lookup("ho chi minh"); ok {
		t.Fatalf("Lookup should miss on an unindexed key")
	}
}

func TestInsertionOrderWins(t *testing.T) {
	tr := New()
	tr.Insert("tan binh", "Tân Bình (first)")
	tr.Insert("tan binh", "Tân Bình (second)")
	v, ok := tr.Lookup("tan binh")
	if !ok || v != "Tân Bình (first)" {
		t.Fatalf("expected first insertion to win, got %q", v)
	}
}

func TestScanWindowAndBestHit(t *testing.T) {
	tr := New()
	tr.Insert("ha noi", "Hà Nội")
	tr.Insert("nam tu liem", "Nam Từ Liêm")
	tr.Insert("cau dien", "Cầu Diễn")

	tokens := []string{"cau", "dien", "nam", "tu", "liem", "ha", "noi"}
	hits := tr.Scan(tokens)
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %d: %+v", len(hits), hits)
	}

	best, ok := BestHit(hits)
	if !ok {
		t.Fatal("expected a best hit")
	}
	// all three hits here are span<=3 and non-overlapping; best should be
	// the widest span, tie-broken rightmost. nam tu liem has span 3, which
	// is the widest.
	if best.DisplayName != "Nam Từ Liêm" {
		t.Errorf("best hit = %q, want %q", best.DisplayName, "Nam Từ Liêm")
	}
}

func TestBestHitTieBreaksRightmost(t *testing.T) {
	hits := []Hit{
		{DisplayName: "a", StartToken: 0, EndToken: 1},
		{DisplayName: "b", StartToken: 2, EndToken: 3},
	}
	best, _ := BestHit(hits)
	if best.DisplayName != "b" {
		t.Errorf("expected rightmost equal-span hit to win, got %q", best.DisplayName)
	}
}

func TestScanRespectsMaxWindow(t *testing.T) {
	tr := New()
	long := []string{"a", "b", "c", "d", "e", "f", "g"}
	tr.Insert("a b c d e f g", "seven-token-name")
	hits := tr.Scan(long)
	if len(hits) != 0 {
		t.Fatalf("expected no hits for a 7-token key exceeding MaxWindow, got %+v", hits)
	}
}

func TestScanOverMaskedSequenceYieldsNoOverlap(t *testing.T) {
	tr := New()
	tr.Insert("tuyen quang", "Tuyên Quang")
	tokens := []string{"___", "___"}
	hits := tr.Scan(tokens)
	if len(hits) != 0 {
		t.Fatalf("expected masked tokens to never match, got %+v", hits)
	}
}
