package lexer

import (
	"regexp"
	"strings"

	"quill/internal/scan"
	"quill/internal/token"
)

var (
	reHookRef = regexp.MustCompile(`^\?[A-Za-z_]\w*`)

	reIsNotA    = regexp.MustCompile(`^\s+not\s+a\b`)
	reIsNotIn   = regexp.MustCompile(`^\s+not\s+in\b`)
	reIsNot     = regexp.MustCompile(`^\s+not\b`)
	reIsA       = regexp.MustCompile(`^\s+a\b`)
	reIsAn      = regexp.MustCompile(`^\s+an\b`)
	reIsIn      = regexp.MustCompile(`^\s+in\b`)
	reNotMatch  = regexp.MustCompile(`^\s+not\s+match\b`)
	reNotCont   = regexp.MustCompile(`^\s+not\s+contain\b`)
	reOfIt      = regexp.MustCompile(`^\s+it\b`)
	reIsNotAnRe = regexp.MustCompile(`^\s+not\s+an\b`)
)

// wordKinds maps single keywords that need no lookahead.
var wordKinds = map[string]token.Kind{
	"and":      token.And,
	"or":       token.Or,
	"not":      token.Not,
	"matches":  token.Matches,
	"contains": token.Contains,
	"to":       token.To,
	"into":     token.Into,
	"via":      token.Via,
	"where":    token.Where,
	"when":     token.When,
	"making":   token.Making,
	"each":     token.Each,
	"bind":     token.Bind,
	"its":      token.Its,
}

// scanCode emits one code-mode token per entry. Whitespace between
// tokens is ignored, never emitted.
func (lx *Lexer) scanCode(s *scan.Scanner) scan.StateFn {
	if s.AcceptRun(" \t\r\n") > 0 {
		s.Ignore()
		return lx.scanNext
	}
	if s.EOF() {
		return nil
	}

	rest := s.Rest()
	switch {
	case rest[0] == '(':
		if m := reMacroFront.FindString(rest); m != "" {
			s.Forward(len(m))
			s.Emit(token.MacroFront)
		} else {
			s.Forward(1)
			s.Emit(token.GroupingFront)
		}

	case rest[0] == ')':
		s.Forward(1)
		s.Emit(token.GroupingBack)

	case rest[0] == '[':
		// Hooks attach in markup, not inside arguments; classify so the
		// tree folds it and the parser can diagnose it in place.
		s.Forward(1)
		s.Emit(token.HookFront)

	case rest[0] == ']':
		s.Forward(1)
		s.Emit(token.HookBack)

	case strings.HasPrefix(rest, "'s") && wordBoundary(rest, 2) && operandKind(lx.lastKind):
		s.Forward(2)
		s.Emit(token.Possessive)

	case rest[0] == '"' || rest[0] == '\'':
		lx.scanString(s, rest[0])

	case strings.HasPrefix(rest, "..."):
		s.Forward(3)
		s.Emit(token.Spread)

	case rest[0] == ',':
		s.Forward(1)
		s.Emit(token.Comma)

	case strings.HasPrefix(rest, "-type") && wordBoundary(rest, 5) && operandKind(lx.lastKind):
		s.Forward(5)
		s.Emit(token.TypeSignature)

	case strings.HasPrefix(rest, ">="):
		s.Forward(2)
		s.Emit(token.Ge)
	case strings.HasPrefix(rest, "<="):
		s.Forward(2)
		s.Emit(token.Le)
	case rest[0] == '>':
		s.Forward(1)
		s.Emit(token.Gt)
	case rest[0] == '<':
		s.Forward(1)
		s.Emit(token.Lt)

	case rest[0] == '+':
		s.Forward(1)
		s.Emit(token.Addition)
	case rest[0] == '-':
		// A minus glued to a digit is a sign only where no operand
		// precedes it; "2-3" stays subtraction.
		if len(rest) > 1 && isDigit(rune(rest[1])) && !operandKind(lx.lastKind) {
			lx.scanNumber(s)
		} else {
			s.Forward(1)
			s.Emit(token.Subtraction)
		}
	case rest[0] == '*':
		s.Forward(1)
		s.Emit(token.Multiplication)
	case rest[0] == '/':
		s.Forward(1)
		s.Emit(token.Division)
	case rest[0] == '%':
		s.Forward(1)
		s.Emit(token.Modulus)

	case rest[0] == '$':
		if m := reVariable.FindString(rest); m != "" {
			s.Forward(len(m))
			s.Emit(token.Variable)
		} else {
			s.Next()
			s.Errorf(token.Error, "'$' must begin a variable name")
		}
	case rest[0] == '_':
		if m := reTempVar.FindString(rest); m != "" {
			s.Forward(len(m))
			s.Emit(token.TempVariable)
		} else {
			s.Next()
			s.Errorf(token.Error, "'_' must begin a temp variable name")
		}
	case rest[0] == '?':
		if m := reHookRef.FindString(rest); m != "" {
			s.Forward(len(m))
			s.Emit(token.HookRef)
		} else {
			s.Next()
			s.Errorf(token.Error, "'?' must begin a hook reference")
		}

	case isDigit(rune(rest[0])):
		lx.scanNumber(s)

	case isIdentStart(rune(rest[0])):
		lx.scanWord(s)

	default:
		r := s.Next()
		s.Errorf(token.Error, "unrecognized character %q", r)
	}
	return lx.scanNext
}

// scanString consumes a quoted literal, honoring backslash escapes. An
// unterminated literal still becomes a String token, with a message.
func (lx *Lexer) scanString(s *scan.Scanner, quote byte) {
	s.Forward(1)
	for {
		r := s.Next()
		switch r {
		case scan.EOFRune, '\n':
			if r == '\n' {
				s.Backup()
			}
			s.Errorf(token.String, "unterminated string literal")
			return
		case '\\':
			s.Next()
		case rune(quote):
			s.Emit(token.String)
			return
		}
	}
}

func (lx *Lexer) scanNumber(s *scan.Scanner) {
	s.Accept("-")
	s.AcceptRunFunc(isDigit)
	if s.HasPrefix(".") {
		rest := s.Rest()
		if len(rest) > 1 && isDigit(rune(rest[1])) {
			s.Forward(1)
			s.AcceptRunFunc(isDigit)
		}
	}
	s.Emit(token.Number)
}

// scanWord reads an identifier and resolves the multi-word operator
// spellings ("is not in", "does not contain", "of it") greedily.
func (lx *Lexer) scanWord(s *scan.Scanner) {
	s.Next()
	s.AcceptRunFunc(isIdentPart)
	word := s.Pending()

	switch word {
	case "true", "false":
		s.Emit(token.Boolean)
		return
	case "is":
		switch {
		case lx.phrase(s, reIsNotAnRe, token.IsNotA):
		case lx.phrase(s, reIsNotA, token.IsNotA):
		case lx.phrase(s, reIsNotIn, token.IsNotIn):
		case lx.phrase(s, reIsNot, token.IsNot):
		case lx.phrase(s, reIsAn, token.IsA):
		case lx.phrase(s, reIsA, token.IsA):
		case lx.phrase(s, reIsIn, token.IsIn):
		default:
			s.Emit(token.Is)
		}
		return
	case "does":
		switch {
		case lx.phrase(s, reNotMatch, token.DoesNotMatch):
		case lx.phrase(s, reNotCont, token.DoesNotContain):
		default:
			s.Emit(token.Identifier)
		}
		return
	case "of":
		if !lx.phrase(s, reOfIt, token.BelongingIt) {
			s.Emit(token.Belonging)
		}
		return
	}

	if k, ok := wordKinds[word]; ok {
		s.Emit(k)
		return
	}
	s.Emit(token.Identifier)
}

// phrase extends the pending word with a matched continuation and emits
// kind. Reports whether the continuation was present.
func (lx *Lexer) phrase(s *scan.Scanner, re *regexp.Regexp, kind token.Kind) bool {
	m := re.FindString(s.Rest())
	if m == "" {
		return false
	}
	s.Forward(len(m))
	s.Emit(kind)
	return true
}

// wordBoundary reports whether rest[n:] does not continue an identifier.
func wordBoundary(rest string, n int) bool {
	return len(rest) == n || !isIdentPart(rune(rest[n]))
}

// operandKind reports whether the previous token can end an operand,
// which disambiguates possessive 's and -type from other readings.
func operandKind(k token.Kind) bool {
	switch k {
	case token.String, token.Number, token.Boolean, token.Identifier,
		token.Variable, token.TempVariable, token.HookRef,
		token.GroupingBack, token.Its:
		return true
	}
	return false
}
