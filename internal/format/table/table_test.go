package table

import "testing"

func TestFormatPadsColumns(t *testing.T) {
	rows := [][]string{
		{"ferris", "Rust", "main"},
		{"beans", "Java", "feature/long-branch"},
	}
	out := Format(rows, []Alignment{AlignLeft, AlignLeft, AlignLeft})
	if len(out) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(out))
	}
	if out[0] != "ferris  Rust  main" {
		t.Fatalf("unexpected row: %q", out[0])
	}
	if out[1] != "beans   Java  feature/long-branch" {
		t.Fatalf("unexpected row: %q", out[1])
	}
}

func TestFormatRightAlign(t *testing.T) {
	rows := [][]string{
		{"a", "10"},
		{"bb", "5"},
	}
	out := Format(rows, []Alignment{AlignLeft, AlignRight})
	if out[0] != "a   10" {
		t.Fatalf("unexpected row: %q", out[0])
	}
	if out[1] != "bb   5" {
		t.Fatalf("unexpected row: %q", out[1])
	}
}

func TestFormatEmpty(t *testing.T) {
	if out := Format(nil, nil); out != nil {
		t.Fatalf("expected nil, got %#v", out)
	}
}
