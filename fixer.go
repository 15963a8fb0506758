package nestfix

// Fixer rewrites balanced token streams so that every element's descendants
// satisfy its content model and no element sits inside an ancestor that
// excludes it. It holds no per-pass state; one Fixer may be reused across
// streams, sequentially or from multiple goroutines, as long as each Fix
// call owns its input slice for the duration of the call.
type Fixer struct {
	rules *RuleSet
	sink  EventSink
	root  string
}

// NewFixer creates a fixer over rules.
func NewFixer(rules *RuleSet, opts ...func(*Fixer)) *Fixer {
	f := &Fixer{rules: rules, root: rules.Root()}
	for _, o := range opts {
		o(f)
	}
	return f
}

// WithSink attaches a diagnostics sink. The sink observes drops and
// rewrites; it cannot affect them.
func WithSink(sink EventSink) func(*Fixer) {
	return func(f *Fixer) { f.sink = sink }
}

// WithRoot overrides the rule set's virtual root element. The named element
// must be defined in the rule set.
func WithRoot(name string) func(*Fixer) {
	return func(f *Fixer) { f.root = name }
}

// frame is one open element on the ancestor stack. A frame carries its
// element's exclusion set directly, so the "which ancestors exclude what"
// question never desynchronizes from the ancestry itself.
type frame struct {
	start int // index of the element's StartTag in the working stream
	name  string
	def   ElementDef
}

// Fix validates and rewrites stream, returning the conforming result. The
// input must be balanced (see CheckBalance); an unbalanced stream panics.
// The input slice is not modified; the result is freshly allocated, and may
// be empty when nothing survives.
//
// The pass walks the stream with a cursor that always rests on a StartTag.
// For each node it scans to the matching EndTag, checks the ancestor
// exclusion sets, asks the node's content model for an outcome, and splices
// the stream accordingly. Dropping a child of an element that may not be
// empty moves the cursor back to that element so it is validated again
// against its reduced contents; that is the only backward movement, and it
// is bounded by the ancestor depth.
func (f *Fixer) Fix(stream []Token) []Token {
	mustBalanced(stream)
	if _, ok := f.rules.lookup(f.root); !ok {
		panic("nestfix: root element <" + f.root + "> is not defined in the rule set")
	}

	// Wrap the stream in the virtual root so every real node has a parent.
	ts := make([]Token, 0, len(stream)+2)
	ts = append(ts, Token{Kind: StartTag, Name: f.root})
	ts = append(ts, stream...)
	ts = append(ts, Token{Kind: EndTag, Name: f.root})

	var stack []frame

	i := 0
	for i < len(ts) {
		// The cursor rests on a StartTag here.
		name := ts[i].Name
		end := matchingEnd(ts, i)
		descendants := ts[i+1 : end]

		ctx := Context{Category: CategoryUnknown}
		parent := ""
		if n := len(stack); n > 0 {
			p := stack[n-1]
			parent = p.name
			ctx = Context{Parent: p.name, Category: p.def.Content.Category()}
		}

		out, def, reason := f.validate(name, descendants, ctx, stack)

		switch out.Kind {
		case OutcomeKeep:
			stack = append(stack, frame{start: i, name: name, def: def})
			i++

		case OutcomeReplace:
			f.emit(ContentRewrittenEvent{Name: name, Before: len(descendants), After: len(out.Replacement)})
			ts = spliceStream(ts, i+1, end, out.Replacement)
			stack = append(stack, frame{start: i, name: name, def: def})
			i++

		case OutcomeDrop:
			f.emit(NodeDroppedEvent{Name: name, Parent: parent, Reason: reason})
			ts = spliceStream(ts, i, end+1, nil)
			if n := len(stack); n > 0 && !stack[n-1].def.Content.AllowEmpty() {
				// The parent demands content; one of its children just
				// vanished, so validate the parent over again.
				p := stack[n-1]
				stack = stack[:n-1]
				i = p.start
				continue
			}
			// Otherwise the cursor already sits on whatever followed the
			// removed node; fall through to the unwinding advance.
		}

		// Advance to the next StartTag, closing elements along the way.
		for i < len(ts) && ts[i].Kind != StartTag {
			if ts[i].Kind == EndTag {
				stack = stack[:len(stack)-1]
			}
			i++
		}
	}

	// Strip the virtual root. If the root itself was dropped nothing is
	// left at all.
	if len(ts) == 0 {
		return nil
	}
	return ts[1 : len(ts)-1]
}

// validate produces the outcome for one node. Exclusion wins outright: if
// any open ancestor excludes the name, the node is dropped without
// consulting its content model. Elements missing from the rule set are
// dropped as well, since a node that cannot be validated cannot be kept.
// The reason is only meaningful when the outcome is a drop.
func (f *Fixer) validate(name string, descendants []Token, ctx Context, stack []frame) (Outcome, ElementDef, DropReason) {
	for _, fr := range stack {
		if fr.def.Excludes == nil {
			continue
		}
		if _, bad := fr.def.Excludes[name]; bad {
			return Drop, ElementDef{}, DropExcluded
		}
	}
	def, ok := f.rules.lookup(name)
	if !ok {
		return Drop, ElementDef{}, DropUnknown
	}
	return def.Content.Validate(descendants, ctx), def, DropRejected
}

func (f *Fixer) emit(ev Event) {
	if f.sink != nil {
		f.sink.OnEvent(ev)
	}
}

// FixNesting runs a single pass over stream with rules and default options.
func FixNesting(stream []Token, rules *RuleSet) []Token {
	return NewFixer(rules).Fix(stream)
}
