package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddVirtualAndResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.tw", []byte("hello\nworld"))
	f := fs.Get(id)

	if f.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
	start, end := fs.Resolve(Span{File: id, Start: 6, End: 11})
	if start.Line != 2 || start.Col != 1 {
		t.Errorf("start = %d:%d, want 2:1", start.Line, start.Col)
	}
	if end.Line != 2 || end.Col != 6 {
		t.Errorf("end = %d:%d, want 2:6", end.Line, end.Col)
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "story.tw")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a\r\nb")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(id)
	if string(f.Content) != "a\nb" {
		t.Errorf("content = %q, want %q", f.Content, "a\nb")
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM and CRLF bits set", f.Flags)
	}
}

func TestLookupLatestVersion(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("doc.tw", []byte("v1"))
	id2 := fs.AddVirtual("doc.tw", []byte("v2"))

	got, ok := fs.Lookup("doc.tw")
	if !ok || got != id2 {
		t.Errorf("Lookup = %d, %v, want %d, true", got, ok, id2)
	}
	if string(fs.Get(got).Content) != "v2" {
		t.Error("expected latest version content")
	}
}

func TestLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.tw", []byte("one\ntwo\nthree"))
	f := fs.Get(id)

	cases := []struct {
		n    uint32
		want string
	}{
		{0, ""},
		{1, "one"},
		{2, "two"},
		{3, "three"},
		{4, ""},
	}
	for _, tc := range cases {
		if got := f.Line(tc.n); got != tc.want {
			t.Errorf("Line(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestAddPassageBase(t *testing.T) {
	fs := NewFileSet()
	container := fs.AddVirtual("story.twee", []byte(":: Start\nintro\n:: Cave\ndark text"))
	id := fs.AddPassage(container, "Cave", []byte("dark text"), 23)
	f := fs.Get(id)
	if f.Base != 23 || f.Container != container {
		t.Errorf("Base = %d Container = %d, want 23 %d", f.Base, f.Container, container)
	}
	if f.Path != "story.twee#Cave" {
		t.Errorf("Path = %q", f.Path)
	}
	if f.Flags&FilePassage == 0 {
		t.Error("expected FilePassage flag")
	}
}

func TestResolvePassageMapsToContainer(t *testing.T) {
	content := []byte(":: Start\nintro\n:: Cave\ndark text")
	fs := NewFileSet()
	container := fs.AddVirtual("story.twee", content)
	id := fs.AddPassage(container, "Cave", []byte("dark text"), 23)

	// "text" sits at offset 5 in the passage body, line 4 column 6 of
	// the container.
	start, end := fs.Resolve(Span{File: id, Start: 5, End: 9})
	if start.Line != 4 || start.Col != 6 {
		t.Errorf("start = %d:%d, want 4:6", start.Line, start.Col)
	}
	if end.Line != 4 || end.Col != 10 {
		t.Errorf("end = %d:%d, want 4:10", end.Line, end.Col)
	}
	if got := fs.Backing(id); got.ID != container {
		t.Errorf("Backing = file %d, want the container %d", got.ID, container)
	}
	if got := fs.Backing(container); got.ID != container {
		t.Errorf("Backing(container) = file %d, want itself", got.ID)
	}
}
