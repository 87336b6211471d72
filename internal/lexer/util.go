package lexer

import (
	"strconv"
	"strings"

	"quill/internal/scan"
	"quill/internal/token"
)

func isIdentStart(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// leafName derives a leaf's display name from its kind and raw text.
func leafName(it scan.Item) string {
	switch it.Kind {
	case token.MacroFront:
		name := strings.TrimPrefix(it.Text, "(")
		name = strings.TrimSuffix(name, ":")
		return strings.TrimSpace(name)
	case token.Heading:
		return strconv.Itoa(len(it.Text))
	case token.Tag:
		return tagName(it.Text)
	case token.HookMarkPre:
		return strings.Trim(it.Text, "|><")
	case token.HookMarkPost:
		return strings.Trim(it.Text, "|<")
	case token.LinkSep:
		return it.Text
	case token.Variable:
		return strings.TrimPrefix(it.Text, "$")
	case token.TempVariable:
		return strings.TrimPrefix(it.Text, "_")
	case token.HookRef:
		return strings.TrimPrefix(it.Text, "?")
	default:
		return ""
	}
}

// tagName extracts the element name from a raw HTML tag, lowercased.
func tagName(raw string) string {
	s := strings.TrimPrefix(raw, "<")
	s = strings.TrimPrefix(s, "/")
	end := len(s)
	for i, r := range s {
		if !isIdentPart(r) && r != '-' {
			end = i
			break
		}
	}
	return strings.ToLower(s[:end])
}
