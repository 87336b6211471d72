package lexer

import (
	"regexp"
	"strings"

	"quill/internal/scan"
	"quill/internal/token"
)

// The markup surface is pattern-driven; these mirror the dialect's
// published grammar.
var (
	reMacroFront = regexp.MustCompile(`^\(\s*[A-Za-z][\w-]*\s*:`)
	reTag        = regexp.MustCompile(`^</?[A-Za-z][\w-]*(?:\s[^<>\n]*)?/?>`)
	reHookPre    = regexp.MustCompile(`^\|[A-Za-z0-9_]+[><]\[`)
	reHookPost   = regexp.MustCompile(`^<[A-Za-z0-9_]+\|`)
	reVariable   = regexp.MustCompile(`^\$[A-Za-z_]\w*`)
	reTempVar    = regexp.MustCompile(`^_[A-Za-z]\w*`)
	reHeading    = regexp.MustCompile(`^#{1,6}`)
	reHR         = regexp.MustCompile(`^-{3,}(?:\n|$)`)
)

// cls is a classified special: how many bytes it covers and what to emit.
type cls struct {
	kind token.Kind
	n    int
	msg  string
	next scan.StateFn
}

// scanNext dispatches on the lexical mode of the innermost open interior.
// It re-reads the mode on every step because the frame stack may have
// changed since the previous item was placed.
func (lx *Lexer) scanNext(s *scan.Scanner) scan.StateFn {
	if s.EOF() {
		return nil
	}
	if lx.mode() == token.ModeCode {
		return lx.scanCode(s)
	}
	return lx.scanMarkup(s)
}

// scanMarkup emits one special token, or a maximal text run ending where
// the next special begins.
func (lx *Lexer) scanMarkup(s *scan.Scanner) scan.StateFn {
	if c, ok := lx.classifyMarkup(s); ok {
		s.Forward(c.n)
		if c.msg != "" {
			s.Errorf(c.kind, "%s", c.msg)
		} else {
			s.Emit(c.kind)
		}
		if c.next != nil {
			return c.next
		}
		return lx.scanNext
	}

	s.Next()
	for !s.EOF() {
		if _, ok := lx.classifyMarkup(s); ok {
			break
		}
		s.Next()
	}
	s.Emit(token.Text)
	return lx.scanNext
}

func (lx *Lexer) classifyMarkup(s *scan.Scanner) (cls, bool) {
	rest := s.Rest()
	if rest == "" {
		return cls{}, false
	}

	if rest[0] == '\n' {
		return cls{kind: token.Br, n: 1}, true
	}

	if lx.atLineStart(s) {
		if m := reHR.FindString(rest); m != "" {
			return cls{kind: token.HR, n: len(strings.TrimRight(m, "\n"))}, true
		}
		if m := reHeading.FindString(rest); m != "" {
			return cls{kind: token.Heading, n: len(m)}, true
		}
	}

	if strings.HasPrefix(rest, "<!--") {
		if idx := strings.Index(rest, "-->"); idx >= 0 {
			return cls{kind: token.Comment, n: idx + 3}, true
		}
		return cls{kind: token.Comment, n: len(rest), msg: "unterminated comment"}, true
	}

	if strings.HasPrefix(rest, "[[") && linkAhead(rest) {
		return cls{kind: token.LinkFront, n: 2, next: lx.scanLink}, true
	}
	if rest[0] == '[' {
		return cls{kind: token.HookFront, n: 1}, true
	}
	if rest[0] == ']' && lx.topKind() == token.Hook {
		return cls{kind: token.HookBack, n: 1}, true
	}
	if m := reHookPre.FindString(rest); m != "" {
		// The trailing [ stays unread; it opens the hook itself.
		return cls{kind: token.HookMarkPre, n: len(m) - 1}, true
	}
	if lx.lastKind == token.HookBack {
		if m := reHookPost.FindString(rest); m != "" {
			return cls{kind: token.HookMarkPost, n: len(m)}, true
		}
	}

	switch {
	case strings.HasPrefix(rest, "''"):
		return cls{kind: token.StrongMark, n: 2}, true
	case strings.HasPrefix(rest, "//"):
		return cls{kind: token.EmMark, n: 2}, true
	case strings.HasPrefix(rest, "~~"):
		return cls{kind: token.DelMark, n: 2}, true
	case strings.HasPrefix(rest, "^^"):
		return cls{kind: token.SupMark, n: 2}, true
	}

	if rest[0] == '`' {
		return classifyVerbatim(rest), true
	}

	if m := reMacroFront.FindString(rest); m != "" {
		return cls{kind: token.MacroFront, n: len(m)}, true
	}
	if m := reTag.FindString(rest); m != "" {
		return cls{kind: token.Tag, n: len(m)}, true
	}
	if m := reVariable.FindString(rest); m != "" {
		return cls{kind: token.Variable, n: len(m)}, true
	}
	if m := reTempVar.FindString(rest); m != "" {
		return cls{kind: token.TempVariable, n: len(m)}, true
	}

	return cls{}, false
}

// classifyVerbatim handles `...` spans; n opening backticks close with
// the next run of n backticks.
func classifyVerbatim(rest string) cls {
	ticks := 0
	for ticks < len(rest) && rest[ticks] == '`' {
		ticks++
	}
	closer := rest[:ticks]
	if idx := strings.Index(rest[ticks:], closer); idx >= 0 {
		return cls{kind: token.Verbatim, n: ticks + idx + ticks}
	}
	return cls{kind: token.Verbatim, n: len(rest), msg: "unterminated verbatim span"}
}

// linkAhead reports whether a [[ opener has its ]] closer on the same line.
func linkAhead(rest string) bool {
	inner := rest[2:]
	idx := strings.Index(inner, "]]")
	if idx < 0 {
		return false
	}
	if nl := strings.IndexByte(inner, '\n'); nl >= 0 && nl < idx {
		return false
	}
	return true
}

// scanLink emits the pieces of one [[...]] link: text chunks, at most one
// separator, and the closing delimiter. The closer is guaranteed by
// classifyMarkup.
func (lx *Lexer) scanLink(s *scan.Scanner) scan.StateFn {
	sawSep := false
	for {
		rest := s.Rest()
		if strings.HasPrefix(rest, "]]") {
			if s.PendingLen() > 0 {
				s.Emit(token.Text)
			}
			s.Forward(2)
			s.Emit(token.LinkBack)
			return lx.scanNext
		}
		if s.EOF() {
			if s.PendingLen() > 0 {
				s.Emit(token.Text)
			}
			return nil
		}
		if !sawSep {
			if sep := linkSepAt(rest); sep != "" {
				if s.PendingLen() > 0 {
					s.Emit(token.Text)
				}
				s.Forward(len(sep))
				s.Emit(token.LinkSep)
				sawSep = true
				continue
			}
		}
		s.Next()
	}
}

func linkSepAt(rest string) string {
	switch {
	case strings.HasPrefix(rest, "->"):
		return "->"
	case strings.HasPrefix(rest, "<-"):
		return "<-"
	case strings.HasPrefix(rest, "|"):
		return "|"
	}
	return ""
}

func (lx *Lexer) atLineStart(s *scan.Scanner) bool {
	p := int(s.Pos())
	return p == 0 || lx.file.Content[p-1] == '\n'
}
