package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestCheckStoryExitsZeroOnFindings(t *testing.T) {
	path := writeInput(t, "story.twee", ":: Start\n(print: \"oops\n")
	if err := checkCmd.Flags().Set("no-cache", "true"); err != nil {
		t.Fatalf("Set no-cache: %v", err)
	}
	if err := runCheck(checkCmd, []string{path}); err != nil {
		t.Errorf("runCheck = %v, want nil: findings are output, not failure", err)
	}
}

func TestCheckDirExitsZeroOnFindings(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "a.tw")
	if err := os.WriteFile(bad, []byte("(set: $x to \"unterminated\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := checkCmd.Flags().Set("ui", "off"); err != nil {
		t.Fatalf("Set ui: %v", err)
	}
	checkCmd.SetContext(context.Background())
	if err := runCheck(checkCmd, []string{dir}); err != nil {
		t.Errorf("runCheck = %v, want nil for a directory with findings", err)
	}
}

func TestCheckMissingTargetFails(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.tw")
	if err := runCheck(checkCmd, []string{missing}); err == nil {
		t.Error("runCheck = nil, want an error for an unreadable target")
	}
}
