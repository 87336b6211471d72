package diag

import (
	"fmt"
)

type Code uint16

const (
	// Unknown failures that have no better home.
	UnknownCode Code = 0

	// Lexical.
	LexUnknownChar          Code = 1001
	LexUnterminatedString   Code = 1002
	LexUnterminatedComment  Code = 1003
	LexUnterminatedVerbatim Code = 1004
	LexUnmatchedDelimiter   Code = 1005
	LexStrayHookMark        Code = 1006
	LexUnclosedHook         Code = 1007
	LexUnclosedMacro        Code = 1008
	LexUnclosedLink         Code = 1009
	LexUnclosedGrouping     Code = 1010
	LexBadVariableName      Code = 1011

	// Syntactic.
	SynUnexpectedToken   Code = 2001
	SynMissingOperand    Code = 2002
	SynMissingOperator   Code = 2003
	SynEmptyMacroName    Code = 2004
	SynTrailingTokens    Code = 2005
	SynHookInArguments   Code = 2006
	SynDanglingPossess   Code = 2007
	SynEmptyLinkTarget   Code = 2008
	SynBadNumberLiteral  Code = 2009
	SynUnexpectedComma   Code = 2010
	SynMisplacedSpread   Code = 2011
	SynBindWithoutTarget Code = 2012

	// Driver / IO.
	IOReadFailed     Code = 4001
	IOCacheCorrupt   Code = 4002
	IONotStoryFormat Code = 4003

	// Project / manifest.
	PrjManifestInvalid Code = 5001
	PrjDuplicatePsg    Code = 5002
	PrjMissingStart    Code = 5003
	PrjDeadLink        Code = 5004
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown error",

	LexUnknownChar:          "unrecognized character",
	LexUnterminatedString:   "unterminated string literal",
	LexUnterminatedComment:  "unterminated comment",
	LexUnterminatedVerbatim: "unterminated verbatim span",
	LexUnmatchedDelimiter:   "unmatched closing delimiter",
	LexStrayHookMark:        "hook name marker without a hook",
	LexUnclosedHook:         "unclosed hook",
	LexUnclosedMacro:        "unclosed macro call",
	LexUnclosedLink:         "unclosed link",
	LexUnclosedGrouping:     "unclosed grouping",
	LexBadVariableName:      "malformed variable name",

	SynUnexpectedToken:   "unexpected token",
	SynMissingOperand:    "missing operand",
	SynMissingOperator:   "missing operator between operands",
	SynEmptyMacroName:    "macro call without a name",
	SynTrailingTokens:    "unexpected trailing tokens",
	SynHookInArguments:   "hook not allowed inside macro arguments",
	SynDanglingPossess:   "possessive without a property name",
	SynEmptyLinkTarget:   "link without a target passage",
	SynBadNumberLiteral:  "malformed number literal",
	SynUnexpectedComma:   "unexpected comma",
	SynMisplacedSpread:   "spread outside argument position",
	SynBindWithoutTarget: "bind without a variable",

	IOReadFailed:     "could not read input",
	IOCacheCorrupt:   "analysis cache entry is corrupt",
	IONotStoryFormat: "input is not a recognized story format",

	PrjManifestInvalid: "story manifest is invalid",
	PrjDuplicatePsg:    "duplicate passage name",
	PrjMissingStart:    "start passage not found",
	PrjDeadLink:        "link points to a missing passage",
}

// ID renders the stable short identifier, e.g. LEX1005.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
