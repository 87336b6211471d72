package token

// Kind represents the category of a lexed token-tree node.
type Kind uint8

const (
	// Error indicates a malformed span; the node carries a message.
	Error Kind = iota
	// EOF marks the end of the source input (scan items only, never stored in the tree).
	EOF
	// Root is the top node covering the whole input.
	Root

	// Text represents a plain text run.
	Text
	// Br represents a line break in markup.
	Br
	// HR represents a horizontal-rule line.
	HR
	// Heading represents a heading line; Name holds the rank ("1".."6").
	Heading
	// EmMark represents the italic marker //.
	EmMark
	// StrongMark represents the bold marker ''.
	StrongMark
	// DelMark represents the strikethrough marker ~~.
	DelMark
	// SupMark represents the superscript marker ^^.
	SupMark
	// Comment represents an HTML comment <!-- ... -->.
	Comment
	// Tag represents a raw HTML tag; Name holds the tag name.
	Tag
	// Verbatim represents backtick-quoted verbatim text.
	Verbatim

	// Macro is an interior node for a whole macro call.
	Macro
	// MacroFront represents the "(name:" leaf opening a macro.
	MacroFront
	// GroupingFront represents a bare "(" inside code.
	GroupingFront
	// GroupingBack represents ")" closing a macro or grouping.
	GroupingBack
	// Grouping is an interior node for a parenthesized expression.
	Grouping

	// Hook is an interior node for a bracketed block of markup.
	Hook
	// HookFront represents the "[" leaf opening a hook.
	HookFront
	// HookBack represents the "]" leaf closing a hook.
	HookBack
	// HookMarkPre represents a prepended |name> or |name< marker.
	HookMarkPre
	// HookMarkPost represents an appended <name| marker.
	HookMarkPost

	// Link is an interior node for a [[...]] passage link.
	Link
	// LinkFront represents the "[[" leaf.
	LinkFront
	// LinkBack represents the "]]" leaf.
	LinkBack
	// LinkSep represents the ->, <- or | separator inside a link.
	LinkSep

	// String represents a quoted string literal, quotes included.
	String
	// Number represents a numeric literal.
	Number
	// Boolean represents true or false.
	Boolean
	// Identifier represents a bare identifier such as it or time.
	Identifier
	// Variable represents a story variable $name.
	Variable
	// TempVariable represents a temporary variable _name.
	TempVariable
	// HookRef represents a hook-name reference ?name.
	HookRef

	// And represents the "and" operator.
	And
	// Or represents the "or" operator.
	Or
	// Not represents the "not" operator.
	Not
	// Is represents the "is" operator.
	Is
	// IsNot represents the "is not" operator.
	IsNot
	// IsA represents the "is a" operator.
	IsA
	// IsNotA represents the "is not a" operator.
	IsNotA
	// Matches represents the "matches" operator.
	Matches
	// DoesNotMatch represents the "does not match" operator.
	DoesNotMatch
	// Contains represents the "contains" operator.
	Contains
	// DoesNotContain represents the "does not contain" operator.
	DoesNotContain
	// IsIn represents the "is in" operator.
	IsIn
	// IsNotIn represents the "is not in" operator.
	IsNotIn
	// Gt represents >.
	Gt
	// Ge represents >=.
	Ge
	// Lt represents <.
	Lt
	// Le represents <=.
	Le
	// Addition represents +.
	Addition
	// Subtraction represents -.
	Subtraction
	// Multiplication represents *.
	Multiplication
	// Division represents /.
	Division
	// Modulus represents %.
	Modulus
	// Spread represents the ... prefix operator.
	Spread
	// Comma represents the argument separator.
	Comma
	// TypeSignature represents the -type binder.
	TypeSignature
	// To represents the "to" binder.
	To
	// Into represents the "into" binder.
	Into
	// Via represents the "via" binder.
	Via
	// Where represents the "where" binder.
	Where
	// When represents the "when" binder.
	When
	// Making represents the "making" binder.
	Making
	// Each represents the "each" binder.
	Each
	// Bind represents the "bind" prefix operator.
	Bind
	// Possessive represents the 's accessor.
	Possessive
	// Its represents the "its" prefix accessor.
	Its
	// Belonging represents the "of" accessor.
	Belonging
	// BelongingIt represents the "of it" accessor.
	BelongingIt

	kindCount
)

var kindNames = [...]string{
	Error:          "Error",
	EOF:            "EOF",
	Root:           "Root",
	Text:           "Text",
	Br:             "Br",
	HR:             "HR",
	Heading:        "Heading",
	EmMark:         "EmMark",
	StrongMark:     "StrongMark",
	DelMark:        "DelMark",
	SupMark:        "SupMark",
	Comment:        "Comment",
	Tag:            "Tag",
	Verbatim:       "Verbatim",
	Macro:          "Macro",
	MacroFront:     "MacroFront",
	GroupingFront:  "GroupingFront",
	GroupingBack:   "GroupingBack",
	Grouping:       "Grouping",
	Hook:           "Hook",
	HookFront:      "HookFront",
	HookBack:       "HookBack",
	HookMarkPre:    "HookMarkPre",
	HookMarkPost:   "HookMarkPost",
	Link:           "Link",
	LinkFront:      "LinkFront",
	LinkBack:       "LinkBack",
	LinkSep:        "LinkSep",
	String:         "String",
	Number:         "Number",
	Boolean:        "Boolean",
	Identifier:     "Identifier",
	Variable:       "Variable",
	TempVariable:   "TempVariable",
	HookRef:        "HookRef",
	And:            "And",
	Or:             "Or",
	Not:            "Not",
	Is:             "Is",
	IsNot:          "IsNot",
	IsA:            "IsA",
	IsNotA:         "IsNotA",
	Matches:        "Matches",
	DoesNotMatch:   "DoesNotMatch",
	Contains:       "Contains",
	DoesNotContain: "DoesNotContain",
	IsIn:           "IsIn",
	IsNotIn:        "IsNotIn",
	Gt:             "Gt",
	Ge:             "Ge",
	Lt:             "Lt",
	Le:             "Le",
	Addition:       "Addition",
	Subtraction:    "Subtraction",
	Multiplication: "Multiplication",
	Division:       "Division",
	Modulus:        "Modulus",
	Spread:         "Spread",
	Comma:          "Comma",
	TypeSignature:  "TypeSignature",
	To:             "To",
	Into:           "Into",
	Via:            "Via",
	Where:          "Where",
	When:           "When",
	Making:         "Making",
	Each:           "Each",
	Bind:           "Bind",
	Possessive:     "Possessive",
	Its:            "Its",
	Belonging:      "Belonging",
	BelongingIt:    "BelongingIt",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsOperator reports whether the kind belongs to the fixed operator
// vocabulary recognized by the expression parser.
func (k Kind) IsOperator() bool {
	return k >= And && k <= BelongingIt
}

// IsInterior reports whether nodes of this kind own children.
func (k Kind) IsInterior() bool {
	switch k {
	case Root, Macro, Grouping, Hook, Link:
		return true
	default:
		return false
	}
}

// IsOperand reports whether the kind can serve as an expression operand.
func (k Kind) IsOperand() bool {
	switch k {
	case String, Number, Boolean, Identifier, Variable, TempVariable,
		HookRef, Macro, Grouping:
		return true
	default:
		return false
	}
}
