package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quill/internal/diag"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "story.toml")
	content := "[story]\nname = \"Midnight Manor\"\nstart = \"Foyer\"\n\n[source]\ndir = \"src\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Story.Name != "Midnight Manor" || m.Story.Start != "Foyer" {
		t.Errorf("story section = %+v", m.Story)
	}
	if m.SourceDir() != filepath.Join(dir, "src") {
		t.Errorf("SourceDir = %q", m.SourceDir())
	}
}

func TestLoadManifestMissingStory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "story.toml")
	if err := os.WriteFile(path, []byte("[source]\ndir = \".\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadManifest(path)
	if !errors.Is(err, ErrStorySectionMissing) {
		t.Fatalf("err = %v, want ErrStorySectionMissing", err)
	}
	if !strings.Contains(err.Error(), diag.PrjManifestInvalid.ID()) {
		t.Errorf("err = %v, want the %s code", err, diag.PrjManifestInvalid.ID())
	}
}

func TestLoadManifestBadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "story.toml")
	if err := os.WriteFile(path, []byte("[story\nname ="), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadManifest(path)
	if err == nil {
		t.Fatal("malformed TOML accepted")
	}
	if !strings.Contains(err.Error(), diag.PrjManifestInvalid.ID()) {
		t.Errorf("err = %v, want the %s code", err, diag.PrjManifestInvalid.ID())
	}
}

func TestFindStoryTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	manifest := filepath.Join(root, "story.toml")
	if err := os.WriteFile(manifest, []byte("[story]\nname = \"x\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	path, ok, err := FindStoryToml(nested)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if path != manifest {
		t.Errorf("path = %q, want %q", path, manifest)
	}

	if _, ok, err := FindStoryToml(t.TempDir()); err != nil || ok {
		t.Errorf("found manifest where none exists: ok=%v err=%v", ok, err)
	}
}
