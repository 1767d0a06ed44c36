package utils

import (
	"regexp"
	"testing"
	"time"
)

func TestNewOrderNumberFormat(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	got := NewOrderNumber(now)

	re := regexp.MustCompile(`^ORD-[A-Z0-9]{4}-1742032800$`)
	if !re.MatchString(got) {
		t.Fatalf("unexpected order number: %s", got)
	}
}

func TestGenerateUpperAlnum(t *testing.T) {
	got := GenerateUpperAlnum(8)
	if len(got) != 8 {
		t.Fatalf("expected length 8, got %d", len(got))
	}
	for _, r := range got {
		if !(r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			t.Fatalf("unexpected rune %q in %s", r, got)
		}
	}
}

func TestSplitTags(t *testing.T) {
	got := SplitTags(" Coffee, beans ,COFFEE,,")
	want := []string{"coffee", "beans"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestContains(t *testing.T) {
	if !Contains([]string{"a", "b"}, "b") {
		t.Fatal("expected to find b")
	}
	if Contains([]string{"a"}, "z") {
		t.Fatal("did not expect to find z")
	}
}
