package main

import (
	"path/filepath"
	"testing"
)

func TestParseNoTreeExitsZeroOnFindings(t *testing.T) {
	path := writeInput(t, "frag.tw", "(set: $a to \"oops\n")
	if err := parseCmd.Flags().Set("no-tree", "true"); err != nil {
		t.Fatalf("Set no-tree: %v", err)
	}
	if err := runParse(parseCmd, []string{path}); err != nil {
		t.Errorf("runParse = %v, want nil: findings are output, not failure", err)
	}
}

func TestParseMissingFileFails(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.tw")
	if err := runParse(parseCmd, []string{missing}); err == nil {
		t.Error("runParse = nil, want an error for an unreadable file")
	}
}
