package parser

import (
	"quill/internal/ast"
	"quill/internal/token"
)

// Operator tiers, loosest binding first. Binder forms associate to the
// right; everything else associates left.
const (
	tierAssign  = iota + 1 // to, into
	tierLambda             // where, when, via
	tierMaking             // making, each
	tierType               // -type
	tierLogic              // and, or
	tierIs                 // is, is not
	tierContain            // contains, does not contain, is (not) in
	tierMatch              // matches, does not match, is (not) a
	tierCompare            // > >= < <=
	tierAdd                // + -
	tierMul                // * / %
	tierSpread             // spread, bind (prefix)
	tierOf                 // possessive, belonging
)

type opInfo struct {
	op    ast.OpKind
	tier  int
	right bool
}

var infixOps = map[token.Kind]opInfo{
	token.To:   {ast.OpTo, tierAssign, true},
	token.Into: {ast.OpInto, tierAssign, true},

	token.Where: {ast.OpWhere, tierLambda, true},
	token.When:  {ast.OpWhen, tierLambda, true},
	token.Via:   {ast.OpVia, tierLambda, true},

	token.Making: {ast.OpMaking, tierMaking, true},
	token.Each:   {ast.OpEach, tierMaking, true},

	token.TypeSignature: {ast.OpTypeSignature, tierType, false},

	token.And: {ast.OpAnd, tierLogic, false},
	token.Or:  {ast.OpOr, tierLogic, false},

	token.Is:    {ast.OpIs, tierIs, false},
	token.IsNot: {ast.OpIsNot, tierIs, false},

	token.Contains:       {ast.OpContains, tierContain, false},
	token.DoesNotContain: {ast.OpDoesNotContain, tierContain, false},
	token.IsIn:           {ast.OpIsIn, tierContain, false},
	token.IsNotIn:        {ast.OpIsNotIn, tierContain, false},

	token.Matches:      {ast.OpMatches, tierMatch, false},
	token.DoesNotMatch: {ast.OpDoesNotMatch, tierMatch, false},
	token.IsA:          {ast.OpIsA, tierMatch, false},
	token.IsNotA:       {ast.OpIsNotA, tierMatch, false},

	token.Gt: {ast.OpGt, tierCompare, false},
	token.Ge: {ast.OpGe, tierCompare, false},
	token.Lt: {ast.OpLt, tierCompare, false},
	token.Le: {ast.OpLe, tierCompare, false},

	token.Addition:    {ast.OpAdd, tierAdd, false},
	token.Subtraction: {ast.OpSub, tierAdd, false},

	token.Multiplication: {ast.OpMul, tierMul, false},
	token.Division:       {ast.OpDiv, tierMul, false},
	token.Modulus:        {ast.OpMod, tierMul, false},

	token.Possessive: {ast.OpPossessive, tierOf, false},
	token.Belonging:  {ast.OpBelonging, tierOf, false},
}

// prefixOps gives each prefix operator the minimum tier of its operand.
var prefixOps = map[token.Kind]struct {
	op   ast.OpKind
	tier int
}{
	token.Not:    {ast.OpNot, tierIs},
	token.Spread: {ast.OpSpread, tierSpread},
	token.Bind:   {ast.OpBind, tierSpread},
}

// postfixOps take only a left operand.
var postfixOps = map[token.Kind]opInfo{
	token.BelongingIt: {ast.OpBelongingIt, tierOf, false},
}
