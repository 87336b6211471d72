// Package lexer turns Harlowe markup into a token tree. Scanning is
// linear, driven by the generic scan engine; nesting is reconstructed by
// matched-delimiter bookkeeping, so a closing bracket is associated with
// its opener even though the scan itself never recurses.
package lexer

import (
	"quill/internal/diag"
	"quill/internal/scan"
	"quill/internal/source"
	"quill/internal/token"
)

// Lexer owns one tokenize run over one file.
type Lexer struct {
	file *source.File
	sc   *scan.Scanner
	tree *token.Tree
	opts Options

	// stack holds the open interior nodes; the bottom frame is the root.
	stack []frame
	// lastKind is the kind of the most recently placed leaf, used for
	// adjacency decisions ('s possessive, -type, appended hook marks).
	lastKind token.Kind
	done     bool
}

type frame struct {
	node  token.NodeID
	front token.NodeID
}

// New prepares a suspended Lexer. Drive it with NextItem, or use
// Tokenize for the eager path.
func New(file *source.File, opts Options) *Lexer {
	lx := &Lexer{
		file: file,
		opts: opts,
		tree: token.NewTree(uint(len(file.Content)/8 + 16)),
	}
	lx.sc = scan.New(file, lx.scanNext)

	root := lx.tree.New(token.Node{
		Kind:      token.Root,
		Span:      source.Span{File: file.ID, Start: 0, End: uint32(len(file.Content))},
		InnerMode: token.ModeMarkup,
	})
	lx.tree.Root = root
	lx.stack = []frame{{node: root}}
	return lx
}

// Tokenize runs the whole pipeline eagerly and returns the token tree.
func Tokenize(file *source.File, opts Options) *token.Tree {
	lx := New(file, opts)
	for {
		if _, ok := lx.NextItem(); !ok {
			break
		}
	}
	return lx.Tree()
}

// NextItem pulls one scanned item, folds it into the tree, and returns
// it. The second result is false once input is exhausted.
func (lx *Lexer) NextItem() (scan.Item, bool) {
	if lx.done {
		return scan.Item{Kind: token.EOF}, false
	}
	it := lx.sc.NextItem()
	if it.Kind == token.EOF {
		lx.finish()
		return it, false
	}
	lx.place(it)
	return it, true
}

// Tree returns the token tree. Valid once NextItem has reported exhaustion
// (Tokenize handles this); unclosed interiors are flagged, never dropped.
func (lx *Lexer) Tree() *token.Tree {
	if !lx.done {
		lx.finish()
	}
	return lx.tree
}

func (lx *Lexer) top() *frame {
	return &lx.stack[len(lx.stack)-1]
}

func (lx *Lexer) topKind() token.Kind {
	return lx.tree.Get(lx.top().node).Kind
}

func (lx *Lexer) mode() token.Mode {
	return lx.tree.Get(lx.top().node).InnerMode
}

// place folds one flat item into the tree. Left delimiters push an
// interior frame; right delimiters pop it and record the pairing.
func (lx *Lexer) place(it scan.Item) {
	switch it.Kind {
	case token.MacroFront:
		lx.pushInterior(token.Macro, token.ModeCode, it)
	case token.GroupingFront:
		lx.pushInterior(token.Grouping, token.ModeCode, it)
	case token.HookFront:
		lx.pushHook(it)
	case token.LinkFront:
		lx.pushInterior(token.Link, token.ModeMarkup, it)
	case token.GroupingBack:
		lx.closeInterior(it, token.Macro, token.Grouping)
	case token.HookBack:
		lx.closeInterior(it, token.Hook)
	case token.LinkBack:
		lx.closeInterior(it, token.Link)
	case token.HookMarkPost:
		lx.placeHookMarkPost(it)
	default:
		id := lx.leaf(it)
		lx.tree.AddChild(lx.top().node, id)
		lx.reportItem(it)
	}
	lx.lastKind = it.Kind
}

func (lx *Lexer) leaf(it scan.Item) token.NodeID {
	return lx.tree.New(token.Node{
		Kind: it.Kind,
		Span: it.Span,
		Text: it.Text,
		Name: leafName(it),
		Msg:  it.Msg,
	})
}

func (lx *Lexer) pushInterior(kind token.Kind, mode token.Mode, it scan.Item) {
	lx.sc.Depth++
	interior := lx.tree.New(token.Node{
		Kind:      kind,
		Span:      it.Span,
		Name:      leafName(it),
		InnerMode: mode,
	})
	lx.tree.AddChild(lx.top().node, interior)

	front := lx.leaf(it)
	lx.tree.AddChild(interior, front)
	lx.stack = append(lx.stack, frame{node: interior, front: front})
}

// pushHook opens a hook interior, absorbing a directly preceding
// |name> marker and flagging hooks that trail a macro's closing paren.
func (lx *Lexer) pushHook(it scan.Item) {
	parent := lx.top().node
	siblings := lx.tree.Get(parent).Children

	var mark token.NodeID
	leading := false
	if len(siblings) > 0 {
		last := siblings[len(siblings)-1]
		n := lx.tree.Get(last)
		if n.Span.End == it.Span.Start {
			switch n.Kind {
			case token.HookMarkPre:
				mark = last
			case token.Macro:
				leading = true
			}
		}
	}

	lx.sc.Depth++
	interior := lx.tree.New(token.Node{
		Kind:      token.Hook,
		Span:      it.Span,
		InnerMode: token.ModeMarkup,
		Leading:   leading,
	})
	if mark.IsValid() {
		// The marker becomes the hook's first child; the hook takes
		// its name and starts at the marker.
		p := lx.tree.Get(parent)
		p.Children = p.Children[:len(p.Children)-1]
		m := lx.tree.Get(mark)
		n := lx.tree.Get(interior)
		n.Name = m.Name
		n.Span.Start = m.Span.Start
		lx.tree.AddChild(interior, mark)
	}
	lx.tree.AddChild(parent, interior)

	front := lx.leaf(it)
	lx.tree.AddChild(interior, front)
	lx.stack = append(lx.stack, frame{node: interior, front: front})
}

// closeInterior pops the top frame if its kind matches; a closer that
// does not match the innermost opener degrades to a diagnostic leaf
// rather than closing across a boundary.
func (lx *Lexer) closeInterior(it scan.Item, kinds ...token.Kind) {
	tk := lx.topKind()
	matched := false
	for _, k := range kinds {
		if tk == k {
			matched = true
			break
		}
	}
	if !matched {
		it.Kind = token.Error
		it.Msg = "unmatched closing delimiter"
		id := lx.leaf(it)
		lx.tree.AddChild(lx.top().node, id)
		lx.errLex(diag.LexUnmatchedDelimiter, it.Span, it.Msg)
		return
	}

	fr := lx.top()
	back := lx.leaf(it)
	lx.tree.AddChild(fr.node, back)

	// Pair the delimiters both ways.
	lx.tree.Get(fr.front).Match = back
	lx.tree.Get(back).Match = fr.front

	lx.tree.Get(fr.node).Span.End = it.Span.End
	lx.stack = lx.stack[:len(lx.stack)-1]
	lx.sc.Depth--
}

// placeHookMarkPost attaches an appended <name| marker to the hook that
// just closed; without such a hook it is a diagnostic leaf.
func (lx *Lexer) placeHookMarkPost(it scan.Item) {
	parent := lx.top().node
	siblings := lx.tree.Get(parent).Children
	if len(siblings) > 0 {
		last := siblings[len(siblings)-1]
		n := lx.tree.Get(last)
		if n.Kind == token.Hook && !n.Unclosed && n.Span.End == it.Span.Start {
			id := lx.leaf(it)
			lx.tree.AddChild(last, id)
			n.Span.End = it.Span.End
			if n.Name == "" {
				n.Name = lx.tree.Get(id).Name
			}
			return
		}
	}
	it.Kind = token.Error
	it.Msg = "hook name marker without a hook"
	id := lx.leaf(it)
	lx.tree.AddChild(parent, id)
	lx.errLex(diag.LexStrayHookMark, it.Span, it.Msg)
}

func (lx *Lexer) reportItem(it scan.Item) {
	if it.Msg == "" {
		return
	}
	code := diag.LexUnknownChar
	switch {
	case it.Kind == token.String:
		code = diag.LexUnterminatedString
	case it.Kind == token.Comment:
		code = diag.LexUnterminatedComment
	case it.Kind == token.Verbatim:
		code = diag.LexUnterminatedVerbatim
	case it.Kind == token.Error && (it.Text == "$" || it.Text == "_"):
		code = diag.LexBadVariableName
	}
	lx.errLex(code, it.Span, it.Msg)
}

// finish closes the run: every frame still open is marked unclosed and
// widened to end of input.
func (lx *Lexer) finish() {
	if lx.done {
		return
	}
	lx.done = true
	end := uint32(len(lx.file.Content))
	for len(lx.stack) > 1 {
		fr := lx.top()
		n := lx.tree.Get(fr.node)
		n.Unclosed = true
		n.Span.End = end
		switch n.Kind {
		case token.Hook:
			lx.errLex(diag.LexUnclosedHook, lx.tree.Get(fr.front).Span, "unclosed hook")
		case token.Macro:
			lx.errLex(diag.LexUnclosedMacro, lx.tree.Get(fr.front).Span, "unclosed macro call")
		case token.Link:
			lx.errLex(diag.LexUnclosedLink, lx.tree.Get(fr.front).Span, "unclosed link")
		case token.Grouping:
			lx.errLex(diag.LexUnclosedGrouping, lx.tree.Get(fr.front).Span, "unclosed grouping")
		}
		lx.stack = lx.stack[:len(lx.stack)-1]
	}
}
