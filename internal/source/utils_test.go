package source

import (
	"bytes"
	"testing"
)

func TestNormalizeCRLF(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		changed bool
	}{
		{"plain", "abc\ndef", "abc\ndef", false},
		{"crlf", "abc\r\ndef", "abc\ndef", true},
		{"lone cr", "abc\rdef", "abc\rdef", false},
		{"mixed", "a\r\nb\rc\r\n", "a\nb\rc\n", true},
		{"empty", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, changed := normalizeCRLF([]byte(tc.in))
			if !bytes.Equal(out, []byte(tc.want)) {
				t.Errorf("normalizeCRLF(%q) = %q, want %q", tc.in, out, tc.want)
			}
			if changed != tc.changed {
				t.Errorf("changed = %v, want %v", changed, tc.changed)
			}
		})
	}
}

func TestRemoveBOM(t *testing.T) {
	withBOM := []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}
	out, had := removeBOM(withBOM)
	if !had || string(out) != "hi" {
		t.Errorf("removeBOM = %q, %v", out, had)
	}
	out, had = removeBOM([]byte("hi"))
	if had || string(out) != "hi" {
		t.Errorf("removeBOM without BOM = %q, %v", out, had)
	}
}

func TestToLineCol(t *testing.T) {
	content := []byte("ab\ncde\n\nf")
	idx := buildLineIndex(content)

	cases := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3}, // the newline itself belongs to line 1
		{3, 2, 1},
		{5, 2, 3},
		{7, 3, 1},
		{8, 4, 1},
		{9, 4, 2}, // EOF offset
	}
	for _, tc := range cases {
		got := toLineCol(idx, tc.off)
		if got.Line != tc.line || got.Col != tc.col {
			t.Errorf("toLineCol(%d) = %d:%d, want %d:%d", tc.off, got.Line, got.Col, tc.line, tc.col)
		}
	}
}

func TestToLineColNoNewlines(t *testing.T) {
	got := toLineCol(nil, 4)
	if got.Line != 1 || got.Col != 5 {
		t.Errorf("toLineCol = %d:%d, want 1:5", got.Line, got.Col)
	}
}
