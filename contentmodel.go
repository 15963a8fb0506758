package nestfix

import "strings"

// Category classifies a content model's structural role. A child element
// receives its parent's category as validation context, which is how one
// model (say, a transparent inline/block element) behaves differently
// depending on where it sits.
type Category string

const (
	CategoryUnknown    Category = "unknown"
	CategoryFlow       Category = "flow"
	CategoryInline     Category = "inline"
	CategoryList       Category = "list"
	CategoryDefinition Category = "definition"
	CategoryTable      Category = "table"
	CategoryNone       Category = "none"
)

// Context describes the structural position of the node being validated.
// It is derived from the parent element, never from the node itself.
type Context struct {
	Parent   string   // parent element name; "" for the root node
	Category Category // parent content model's category; CategoryUnknown for the root
}

// OutcomeKind discriminates the three validation results.
type OutcomeKind int

const (
	// OutcomeKeep accepts the node's descendants unchanged.
	OutcomeKeep OutcomeKind = iota
	// OutcomeDrop removes the node and its entire subtree.
	OutcomeDrop
	// OutcomeReplace substitutes the node's descendants wholesale.
	OutcomeReplace
)

// Outcome is the result of validating one node's descendants.
type Outcome struct {
	Kind        OutcomeKind
	Replacement []Token // only for OutcomeReplace
}

// Keep accepts the descendants as they are.
var Keep = Outcome{Kind: OutcomeKeep}

// Drop rejects the whole node, subtree included.
var Drop = Outcome{Kind: OutcomeDrop}

// Replace substitutes the node's descendants with repl.
func Replace(repl []Token) Outcome {
	return Outcome{Kind: OutcomeReplace, Replacement: repl}
}

// ContentModel decides whether a node's descendant token sequence is
// acceptable. Implementations must be pure: no retained references to the
// descendant slice, no shared mutable state, and they must always return one
// of the three outcomes.
//
// Validate receives the node's full descendant sequence (all depths, flat)
// and the structural context derived from the parent.
type ContentModel interface {
	Validate(descendants []Token, ctx Context) Outcome

	// Category reports the structural role this model gives its children.
	Category() Category

	// AllowEmpty reports whether a node using this model may be left with
	// no descendants. When false, removing a child triggers re-validation
	// of the node.
	AllowEmpty() bool
}

// AnyContent accepts anything, including nothing. Used for free-form flow
// and inline containers.
type AnyContent struct {
	Cat Category
}

func (m AnyContent) Validate([]Token, Context) Outcome { return Keep }
func (m AnyContent) Category() Category               { return m.Cat }
func (m AnyContent) AllowEmpty() bool                 { return true }

// SequenceContent requires at least one direct child drawn from Children.
// Direct children with other names are removed along with their subtrees;
// if no allowed child remains, the node itself is rejected.
type SequenceContent struct {
	Children  []string
	AllowText bool // permit non-whitespace character data between children
	Cat       Category
}

func (m SequenceContent) Validate(descendants []Token, _ Context) Outcome {
	kept, changed, hasChild := filterChildren(descendants, m.Children, m.AllowText)
	if !hasChild {
		return Drop
	}
	if changed {
		return Replace(kept)
	}
	return Keep
}

func (m SequenceContent) Category() Category { return m.Cat }
func (m SequenceContent) AllowEmpty() bool   { return false }

// SetContent permits direct children drawn from Children, zero or more.
// Like SequenceContent but an emptied node survives.
type SetContent struct {
	Children  []string
	AllowText bool
	Cat       Category
}

func (m SetContent) Validate(descendants []Token, _ Context) Outcome {
	kept, changed, _ := filterChildren(descendants, m.Children, m.AllowText)
	if changed {
		return Replace(kept)
	}
	return Keep
}

func (m SetContent) Category() Category { return m.Cat }
func (m SetContent) AllowEmpty() bool   { return true }

// EmptyContent forbids descendants entirely. A non-empty node is kept but
// stripped of its contents.
type EmptyContent struct{}

func (EmptyContent) Validate(descendants []Token, _ Context) Outcome {
	if len(descendants) > 0 {
		return Replace(nil)
	}
	return Keep
}

func (EmptyContent) Category() Category { return CategoryNone }
func (EmptyContent) AllowEmpty() bool   { return true }

// ChameleonContent delegates to a different model depending on the
// structural context. When holds the per-category branches; Otherwise is the
// default and also supplies this model's own category and emptiness rule.
type ChameleonContent struct {
	When      map[Category]ContentModel
	Otherwise ContentModel
}

func (m ChameleonContent) Validate(descendants []Token, ctx Context) Outcome {
	if sub, ok := m.When[ctx.Category]; ok {
		return sub.Validate(descendants, ctx)
	}
	return m.Otherwise.Validate(descendants, ctx)
}

func (m ChameleonContent) Category() Category { return m.Otherwise.Category() }
func (m ChameleonContent) AllowEmpty() bool   { return m.Otherwise.AllowEmpty() }

// filterChildren walks the flat descendant sequence at depth zero and keeps
// direct child elements whose name is in allowed, copying each kept child's
// whole subtree. Opaque tokens at depth zero are kept when allowText is set;
// otherwise character data survives only if it is pure whitespace. It
// reports whether anything was removed and whether any element child remains.
func filterChildren(descendants []Token, allowed []string, allowText bool) (kept []Token, changed, hasChild bool) {
	ok := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		ok[name] = true
	}

	kept = make([]Token, 0, len(descendants))
	for i := 0; i < len(descendants); i++ {
		tok := descendants[i]
		switch tok.Kind {
		case StartTag:
			end := matchingEnd(descendants, i)
			if ok[tok.Name] {
				kept = append(kept, descendants[i:end+1]...)
				hasChild = true
			} else {
				changed = true
			}
			i = end
		case Text:
			if allowText || strings.TrimSpace(tok.Data) == "" {
				kept = append(kept, tok)
			} else {
				changed = true
			}
		default:
			kept = append(kept, tok)
		}
	}
	return kept, changed, hasChild
}
