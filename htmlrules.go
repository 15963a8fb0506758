package nestfix

// RootElement is the virtual root the default HTML rules wrap around a
// fragment. The name cannot collide with anything Tokenize produces.
const RootElement = "#document"

var inlineElements = []string{
	"a", "abbr", "b", "br", "cite", "code", "del", "em", "i", "img", "ins",
	"kbd", "mark", "q", "s", "small", "span", "strong", "sub", "sup", "u",
}

// HTMLRules returns a rule set for a common HTML content subset: headings,
// paragraphs, inline formatting, links, images, lists, definition lists,
// tables, blockquotes, code, and basic form structure. It encodes the
// classic structural constraints: lists hold only list items, table rows
// hold only cells and may not be empty, forms do not nest, anchors do not
// nest, buttons contain nothing interactive.
func HTMLRules() *RuleSet {
	flow := AnyContent{Cat: CategoryFlow}
	inline := AnyContent{Cat: CategoryInline}

	// ins/del are transparent: inline-only when used inline, free-form in
	// flow positions.
	transparent := ChameleonContent{
		When: map[Category]ContentModel{
			CategoryInline: SetContent{Children: inlineElements, AllowText: true, Cat: CategoryInline},
		},
		Otherwise: flow,
	}

	r := NewRuleSet(RootElement, flow)

	for _, name := range []string{
		"p", "h1", "h2", "h3", "h4", "h5", "h6",
		"blockquote", "div", "pre", "li", "dd", "dt",
		"caption", "td", "th", "figure", "figcaption",
	} {
		r.Define(name, flow)
	}
	for _, name := range []string{
		"abbr", "b", "cite", "code", "em", "i", "kbd", "mark",
		"q", "s", "small", "span", "strong", "sub", "sup", "u",
	} {
		r.Define(name, inline)
	}

	r.Define("a", inline, "a")
	r.Define("ins", transparent)
	r.Define("del", transparent)

	for _, name := range []string{"br", "hr", "img", "input"} {
		r.Define(name, EmptyContent{})
	}

	r.Define("ul", SequenceContent{Children: []string{"li"}, Cat: CategoryList})
	r.Define("ol", SequenceContent{Children: []string{"li"}, Cat: CategoryList})
	r.Define("dl", SetContent{Children: []string{"dt", "dd"}, Cat: CategoryDefinition})

	r.Define("table", SequenceContent{
		Children: []string{"caption", "colgroup", "thead", "tbody", "tfoot", "tr"},
		Cat:      CategoryTable,
	})
	r.Define("thead", SequenceContent{Children: []string{"tr"}, Cat: CategoryTable})
	r.Define("tbody", SequenceContent{Children: []string{"tr"}, Cat: CategoryTable})
	r.Define("tfoot", SequenceContent{Children: []string{"tr"}, Cat: CategoryTable})
	r.Define("tr", SequenceContent{Children: []string{"td", "th"}, Cat: CategoryTable})
	r.Define("colgroup", SetContent{Children: []string{"col"}, Cat: CategoryTable})
	r.Define("col", EmptyContent{})

	r.Define("form", flow, "form")
	r.Define("label", inline, "label")
	r.Define("button", inline, "button", "input", "select", "textarea", "form", "label")
	r.Define("textarea", SetContent{AllowText: true, Cat: CategoryNone})
	r.Define("select", SequenceContent{Children: []string{"option", "optgroup"}, Cat: CategoryNone})
	r.Define("optgroup", SequenceContent{Children: []string{"option"}, Cat: CategoryNone})
	r.Define("option", SetContent{AllowText: true, Cat: CategoryNone})

	return r
}
