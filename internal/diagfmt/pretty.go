// Package diagfmt renders diagnostics, token trees and ASTs for the
// CLI. It only formats; collection lives in internal/diag.
package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"quill/internal/diag"
	"quill/internal/source"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	warnColor  = color.New(color.FgYellow, color.Bold)
	infoColor  = color.New(color.FgCyan, color.Bold)
	caretColor = color.New(color.FgGreen, color.Bold)
)

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warnColor
	}
	return infoColor
}

// Pretty writes bag's diagnostics in a human-readable format:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed, when Context is set, by the source line with a caret
// underline, and by notes when ShowNotes is set. Call bag.Sort() first
// for deterministic order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	file := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)

	sev := d.Severity.String()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		displayPath(file, opts.PathMode), start.Line, start.Col, sev, d.Code.ID(), d.Message)

	if opts.Context {
		// Passage spans resolve to container positions, so the context
		// line comes from the backing file.
		writeContext(w, fs.Backing(d.Primary.File), d.Primary, start, opts)
	}
	if opts.ShowNotes {
		for _, note := range d.Notes {
			nf := fs.Get(note.Span.File)
			ns, _ := fs.Resolve(note.Span)
			fmt.Fprintf(w, "  note: %s:%d:%d: %s\n",
				displayPath(nf, opts.PathMode), ns.Line, ns.Col, note.Msg)
		}
	}
}

// writeContext prints the offending line and a ^~~~ underline aligned
// by display width, so wide runes line up.
func writeContext(w io.Writer, file *source.File, sp source.Span, start source.LineCol, opts PrettyOpts) {
	line := file.Line(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	pad := runewidth.StringWidth(line[:col])

	spanLen := int(sp.Len())
	if spanLen == 0 {
		spanLen = 1
	}
	end := col + spanLen
	if end > len(line) {
		end = len(line)
	}
	under := runewidth.StringWidth(line[col:end])
	if under < 1 {
		under = 1
	}

	caret := "^" + strings.Repeat("~", under-1)
	if opts.Color {
		caret = caretColor.Sprint(caret)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), caret)
}

func displayPath(file *source.File, mode PathMode) string {
	if file == nil {
		return "<unknown>"
	}
	if mode == PathModeBasename {
		return filepath.Base(file.Path)
	}
	return file.Path
}
