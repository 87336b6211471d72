package token

// Mode selects which lexical rules apply inside an interior node's span.
type Mode uint8

const (
	// ModeMarkup lexes prose: text runs, formatting, hooks, links, macros.
	ModeMarkup Mode = iota
	// ModeCode lexes macro argument lists: literals, variables, operators.
	// Verbatim spans need no mode of their own: they are single leaf
	// tokens, never interiors.
	ModeCode
)

func (m Mode) String() string {
	switch m {
	case ModeMarkup:
		return "markup"
	case ModeCode:
		return "code"
	}
	return "mode(?)"
}
