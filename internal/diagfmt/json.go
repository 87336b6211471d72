package diagfmt

import (
	"encoding/json"
	"io"

	"quill/internal/diag"
	"quill/internal/source"
)

type positionJSON struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

type noteJSON struct {
	Path    string        `json:"path"`
	Start   uint32        `json:"start"`
	End     uint32        `json:"end"`
	Message string        `json:"message"`
	Pos     *positionJSON `json:"pos,omitempty"`
}

type diagnosticJSON struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code"`
	Title    string        `json:"title"`
	Message  string        `json:"message"`
	Path     string        `json:"path"`
	Start    uint32        `json:"start"`
	End      uint32        `json:"end"`
	Pos      *positionJSON `json:"pos,omitempty"`
	Notes    []noteJSON    `json:"notes,omitempty"`
}

// JSON writes bag's diagnostics as a JSON array, one object per
// diagnostic, byte offsets always included and line/col on request.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	items := bag.Items()
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}

	out := make([]diagnosticJSON, 0, len(items))
	for _, d := range items {
		file := fs.Get(d.Primary.File)
		dj := diagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Path:     displayPath(file, opts.PathMode),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		if opts.IncludePositions {
			start, _ := fs.Resolve(d.Primary)
			dj.Pos = &positionJSON{Line: start.Line, Col: start.Col}
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				nj := noteJSON{
					Path:    displayPath(fs.Get(n.Span.File), opts.PathMode),
					Start:   n.Span.Start,
					End:     n.Span.End,
					Message: n.Msg,
				}
				if opts.IncludePositions {
					ns, _ := fs.Resolve(n.Span)
					nj.Pos = &positionJSON{Line: ns.Line, Col: ns.Col}
				}
				dj.Notes = append(dj.Notes, nj)
			}
		}
		out = append(out, dj)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
