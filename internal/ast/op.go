package ast

// OpKind names the operator vocabulary of code mode, independent of its
// surface spelling.
type OpKind uint8

const (
	OpNone OpKind = iota

	OpTo
	OpInto
	OpWhere
	OpWhen
	OpVia
	OpMaking
	OpEach
	OpTypeSignature
	OpAnd
	OpOr
	OpNot
	OpIs
	OpIsNot
	OpContains
	OpDoesNotContain
	OpIsIn
	OpIsNotIn
	OpMatches
	OpDoesNotMatch
	OpIsA
	OpIsNotA
	OpGt
	OpGe
	OpLt
	OpLe
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpSpread
	OpBind
	OpPossessive
	OpBelonging
	OpBelongingIt
	OpIts

	opKindCount
)

var opKindNames = [...]string{
	OpNone:           "none",
	OpTo:             "to",
	OpInto:           "into",
	OpWhere:          "where",
	OpWhen:           "when",
	OpVia:            "via",
	OpMaking:         "making",
	OpEach:           "each",
	OpTypeSignature:  "-type",
	OpAnd:            "and",
	OpOr:             "or",
	OpNot:            "not",
	OpIs:             "is",
	OpIsNot:          "is not",
	OpContains:       "contains",
	OpDoesNotContain: "does not contain",
	OpIsIn:           "is in",
	OpIsNotIn:        "is not in",
	OpMatches:        "matches",
	OpDoesNotMatch:   "does not match",
	OpIsA:            "is a",
	OpIsNotA:         "is not a",
	OpGt:             ">",
	OpGe:             ">=",
	OpLt:             "<",
	OpLe:             "<=",
	OpAdd:            "+",
	OpSub:            "-",
	OpMul:            "*",
	OpDiv:            "/",
	OpMod:            "%",
	OpSpread:         "...",
	OpBind:           "bind",
	OpPossessive:     "'s",
	OpBelonging:      "of",
	OpBelongingIt:    "of it",
	OpIts:            "its",
}

func (k OpKind) String() string {
	if int(k) < len(opKindNames) {
		return opKindNames[k]
	}
	return "OpKind(?)"
}
