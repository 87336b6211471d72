package driver

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/lexer"
	"quill/internal/parser"
	"quill/internal/source"
	"quill/internal/story"
	"quill/internal/walk"
)

// LinkRef is one outgoing link found in a passage.
type LinkRef struct {
	Target string
	Span   source.Span
}

// PassageReport is the per-passage outcome of a story check.
type PassageReport struct {
	Name   string
	FileID source.FileID
	Bag    *diag.Bag
	Links  []LinkRef
	// Cached is set when the diagnostics were replayed from the disk
	// cache instead of a fresh parse.
	Cached bool
}

// CheckResult is the outcome of checking one story container.
type CheckResult struct {
	FileSet *source.FileSet
	Story   story.Story
	Reports []PassageReport
	// Project holds cross-passage findings: duplicate names, a missing
	// start passage, dead links.
	Project *diag.Bag
}

// CheckOptions tunes a story check.
type CheckOptions struct {
	// Cache, when set, skips reparsing passages whose body hash has a
	// stored result.
	Cache          *DiskCache
	MaxDiagnostics int
}

// ErrNotStoryFormat marks an HTML input with no <tw-storydata> element.
var ErrNotStoryFormat = errors.New("no <tw-storydata> element")

// LoadStory reads a container and extracts its passages. Twee sources
// and published HTML archives are recognized; anything else is treated
// as a single bare passage named after the file. On ErrNotStoryFormat
// the FileSet still holds the loaded container.
func LoadStory(path string) (story.Story, *source.FileSet, source.FileID, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return story.Story{}, nil, 0, err
	}
	st, err := extractStory(path, string(fs.Get(id).Content))
	return st, fs, id, err
}

func extractStory(path, src string) (story.Story, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		st, ok := story.ParseHTML(src)
		if !ok {
			return story.Story{}, fmt.Errorf("%s: %w", path, ErrNotStoryFormat)
		}
		return st, nil
	}
	if strings.HasPrefix(src, "::") || strings.Contains(src, "\n::") {
		return story.ParseTwee(src), nil
	}
	// Bare markup file: one anonymous passage covering the whole text.
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return story.Story{
		Name:     name,
		Start:    name,
		Passages: []story.Passage{{Name: name, Body: src}},
	}, nil
}

// CheckFile runs the full front end over every passage of a story and
// then the cross-passage analyses.
func CheckFile(path string, opts CheckOptions) (*CheckResult, error) {
	st, fs, containerID, err := LoadStory(path)
	if err != nil {
		if !errors.Is(err, ErrNotStoryFormat) {
			return nil, err
		}
		// Unrecognized content is a finding, not a failure.
		res := &CheckResult{FileSet: fs, Project: newBag(opts.MaxDiagnostics)}
		res.Project.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.IONotStoryFormat,
			Message:  err.Error(),
			Primary:  source.Span{File: containerID},
		})
		return res, nil
	}
	res := &CheckResult{
		FileSet: fs,
		Story:   st,
		Project: newBag(opts.MaxDiagnostics),
	}

	for _, p := range st.Passages {
		res.Reports = append(res.Reports, checkPassage(fs, containerID, p, opts, res.Project))
	}
	checkProject(res)
	res.Project.Sort()
	return res, nil
}

func checkPassage(fs *source.FileSet, containerID source.FileID, p story.Passage, opts CheckOptions, project *diag.Bag) PassageReport {
	fileID := fs.AddPassage(containerID, p.Name, []byte(p.Body), p.Base)

	key := sha256.Sum256([]byte(p.Body))
	if opts.Cache != nil {
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		switch {
		case err != nil:
			project.Add(diag.Diagnostic{
				Severity: diag.SevWarning,
				Code:     diag.IOCacheCorrupt,
				Message:  fmt.Sprintf("passage %q: %v", p.Name, err),
			})
		case hit:
			return PassageReport{
				Name:   p.Name,
				FileID: fileID,
				Bag:    bagFromPayload(&payload, fileID, opts.MaxDiagnostics),
				Links:  linksFromPayload(&payload, fileID),
				Cached: true,
			}
		}
	}

	file := fs.Get(fileID)
	bag := newBag(opts.MaxDiagnostics)
	tree := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	builder := ast.NewBuilder(ast.Hints{Nodes: uint(len(p.Body)/8 + 16)})
	pres, err := parser.Parse(fs, tree, builder, parser.Options{MaxDiagnostics: opts.MaxDiagnostics})
	if err != nil {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.UnknownCode,
			Message:  err.Error(),
		})
		bag.Sort()
		return PassageReport{Name: p.Name, FileID: fileID, Bag: bag}
	}
	bag.Merge(pres.Bag)
	bag.Sort()

	links := collectLinks(builder, pres.Root)
	if opts.Cache != nil {
		// Best effort; a failed write just means a reparse next time.
		_ = opts.Cache.Put(key, newPayload(bag, links))
	}
	return PassageReport{
		Name:   p.Name,
		FileID: fileID,
		Bag:    bag,
		Links:  links,
	}
}

// collectLinks walks the passage tree and records every link target.
func collectLinks(b *ast.Builder, root ast.NodeID) []LinkRef {
	w, err := walk.AST(b, root)
	if err != nil {
		return nil
	}
	var links []LinkRef
	for {
		id, entering, ok := w.Step()
		if !ok {
			break
		}
		if !entering {
			continue
		}
		node := b.Nodes.Get(id)
		if node.Kind != ast.NodeLink {
			continue
		}
		if data, ok := b.Nodes.Link(id); ok {
			links = append(links, LinkRef{Target: data.Target, Span: node.Span})
		}
	}
	return links
}

// checkProject runs the cross-passage analyses over finished reports.
func checkProject(res *CheckResult) {
	names := make(map[string]int, len(res.Reports))
	for i, rep := range res.Reports {
		first, dup := names[rep.Name]
		if !dup {
			names[rep.Name] = i
			continue
		}
		d := diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.PrjDuplicatePsg,
			Message:  fmt.Sprintf("passage %q is defined more than once", rep.Name),
			Primary:  source.Span{File: rep.FileID},
		}
		d = d.WithNote(source.Span{File: res.Reports[first].FileID}, "first defined here")
		res.Project.Add(d)
	}

	if res.Story.Start != "" {
		if _, ok := names[res.Story.Start]; !ok {
			res.Project.Add(diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.PrjMissingStart,
				Message:  fmt.Sprintf("start passage %q does not exist", res.Story.Start),
			})
		}
	}

	for _, rep := range res.Reports {
		for _, link := range rep.Links {
			target := strings.TrimSpace(link.Target)
			if target == "" {
				continue
			}
			if _, ok := names[target]; ok {
				continue
			}
			res.Project.Add(diag.Diagnostic{
				Severity: diag.SevWarning,
				Code:     diag.PrjDeadLink,
				Message:  fmt.Sprintf("no passage named %q", target),
				Primary:  link.Span,
			})
		}
	}
}
