package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Word", "Count"}
	rows := [][]string{
		{"the", "12"},
		{"<none>", "3"},
	}
	rightAlign := map[int]bool{1: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Word   Count" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "the       12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "<none>     3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableUsesDisplayWidth(t *testing.T) {
	rows := [][]string{
		{"日本", "1"},
		{"abc", "10"},
	}
	lines := formatTable(nil, rows, map[int]bool{1: true})
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "日本  1" {
		t.Fatalf("unexpected wide row: %q", lines[0])
	}
	if lines[1] != "abc  10" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected no lines, got %v", lines)
	}
}
