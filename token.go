package nestfix

// TokenKind discriminates the variants of Token.
type TokenKind int

const (
	// StartTag opens an element.
	StartTag TokenKind = iota
	// EndTag closes an element.
	EndTag
	// Text is character data. The fixer never inspects it; it only counts
	// toward node boundaries.
	Text
	// Comment is an opaque comment payload.
	Comment
	// Raw is any other pass-through payload (doctype, processing
	// instruction) rendered verbatim.
	Raw
)

// Attr is a single attribute on a StartTag. The fixer carries attributes
// through untouched; attribute-level sanitization is a different stage.
type Attr struct {
	Key string
	Val string
}

// Token is one unit of the markup stream: a StartTag or EndTag with a Name,
// or an opaque kind with a Data payload.
type Token struct {
	Kind  TokenKind
	Name  string // tag name, for StartTag and EndTag
	Data  string // payload, for Text/Comment/Raw
	Attrs []Attr // attributes, for StartTag
}

// Start returns a StartTag token for name.
func Start(name string, attrs ...Attr) Token {
	return Token{Kind: StartTag, Name: name, Attrs: attrs}
}

// End returns an EndTag token for name.
func End(name string) Token {
	return Token{Kind: EndTag, Name: name}
}

// TextOf returns a Text token holding data.
func TextOf(data string) Token {
	return Token{Kind: Text, Data: data}
}

// CommentOf returns a Comment token holding data.
func CommentOf(data string) Token {
	return Token{Kind: Comment, Data: data}
}

// CheckBalance verifies that stream is balanced: every StartTag has a
// matching EndTag with the same name at the same depth, and no EndTag closes
// an element that is not open. This is the precondition the fixer imposes on
// its callers; [Tokenize] always produces balanced streams.
func CheckBalance(stream []Token) error {
	var open []string
	for i, tok := range stream {
		switch tok.Kind {
		case StartTag:
			open = append(open, tok.Name)
		case EndTag:
			if len(open) == 0 {
				return NewUnbalancedError(i, "closing tag </"+tok.Name+"> with no open element")
			}
			top := open[len(open)-1]
			if top != tok.Name {
				return NewUnbalancedError(i, "closing tag </"+tok.Name+"> does not match open <"+top+">")
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) > 0 {
		return NewUnbalancedError(len(stream), "element <"+open[len(open)-1]+"> is never closed")
	}
	return nil
}

// mustBalanced enforces the balance precondition. An unbalanced stream is a
// broken upstream contract, not a recoverable condition, so it panics.
func mustBalanced(stream []Token) {
	if err := CheckBalance(stream); err != nil {
		panic("nestfix: " + err.Error())
	}
}

// matchingEnd returns the index of the EndTag that closes the StartTag at
// start, scanning forward and tracking depth. The caller guarantees the
// stream is balanced, so a missing close is unreachable.
func matchingEnd(stream []Token, start int) int {
	depth := 0
	for i := start; i < len(stream); i++ {
		switch stream[i].Kind {
		case StartTag:
			depth++
		case EndTag:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	panic("nestfix: no matching end tag for <" + stream[start].Name + ">")
}

// spliceStream replaces stream[from:to] with repl and returns the result.
// It always builds a fresh slice so repl may alias the region being
// replaced (content models often return filtered views of their input).
func spliceStream(stream []Token, from, to int, repl []Token) []Token {
	out := make([]Token, 0, len(stream)-(to-from)+len(repl))
	out = append(out, stream[:from]...)
	out = append(out, repl...)
	out = append(out, stream[to:]...)
	return out
}
