package diag_test

import (
	"testing"

	"quill/internal/diag"
	"quill/internal/source"
)

func span(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func TestBagCap(t *testing.T) {
	b := diag.NewBag(2)
	for i := 0; i < 3; i++ {
		b.Add(diag.Diagnostic{Code: diag.LexUnknownChar, Severity: diag.SevError})
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want cap 2", b.Len())
	}
	if !b.HasErrors() {
		t.Error("HasErrors = false")
	}
}

func TestBagSortDeterministic(t *testing.T) {
	b := diag.NewBag(8)
	b.Add(diag.Diagnostic{Code: diag.SynUnexpectedToken, Severity: diag.SevError, Primary: span(1, 10, 12)})
	b.Add(diag.Diagnostic{Code: diag.LexUnknownChar, Severity: diag.SevError, Primary: span(1, 0, 1)})
	b.Add(diag.Diagnostic{Code: diag.LexUnclosedHook, Severity: diag.SevWarning, Primary: span(1, 0, 1)})
	b.Sort()

	items := b.Items()
	if items[0].Primary.Start != 0 || items[0].Severity != diag.SevError {
		t.Errorf("first after sort = %+v", items[0])
	}
	if items[2].Primary.Start != 10 {
		t.Errorf("last after sort = %+v", items[2])
	}
}

func TestDedupReporter(t *testing.T) {
	b := diag.NewBag(8)
	r := diag.NewDedupReporter(diag.BagReporter{Bag: b})
	sp := span(1, 3, 4)
	r.Report(diag.LexUnknownChar, diag.SevError, sp, "unrecognized character", nil)
	r.Report(diag.LexUnknownChar, diag.SevError, sp, "unrecognized character", nil)
	r.Report(diag.LexUnknownChar, diag.SevError, span(1, 5, 6), "unrecognized character", nil)
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
}

func TestCodeID(t *testing.T) {
	cases := []struct {
		code diag.Code
		want string
	}{
		{diag.LexUnmatchedDelimiter, "LEX1005"},
		{diag.SynMissingOperand, "SYN2002"},
		{diag.IOReadFailed, "IO4001"},
		{diag.PrjDeadLink, "PRJ5004"},
	}
	for _, tc := range cases {
		if got := tc.code.ID(); got != tc.want {
			t.Errorf("ID(%d) = %s, want %s", tc.code, got, tc.want)
		}
	}
}
