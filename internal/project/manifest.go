package project

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"quill/internal/diag"
)

// Manifest is the parsed story.toml.
type Manifest struct {
	Story  StorySection  `toml:"story"`
	Source SourceSection `toml:"source"`

	// Dir is the directory the manifest was loaded from.
	Dir string `toml:"-"`
}

// StorySection names the story and its start passage.
type StorySection struct {
	Name  string `toml:"name"`
	Start string `toml:"start"`
}

// SourceSection says where the twee sources live.
type SourceSection struct {
	Dir string `toml:"dir"`
}

// ErrStorySectionMissing indicates that [story] is missing.
var ErrStorySectionMissing = errors.New("missing [story]")

// LoadManifest parses a story.toml file.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, manifestErr(path, err)
	}
	if !meta.IsDefined("story") {
		return nil, manifestErr(path, ErrStorySectionMissing)
	}
	m.Dir = filepath.Dir(path)
	if m.Source.Dir == "" {
		m.Source.Dir = "."
	}
	return &m, nil
}

// manifestErr tags a manifest failure with its diagnostic code so CLI
// output stays consistent with in-source findings.
func manifestErr(path string, err error) error {
	return fmt.Errorf("%s: %s: %w", path, diag.PrjManifestInvalid.ID(), err)
}

// SourceDir resolves the source directory against the manifest location.
func (m *Manifest) SourceDir() string {
	if filepath.IsAbs(m.Source.Dir) {
		return m.Source.Dir
	}
	return filepath.Join(m.Dir, m.Source.Dir)
}
