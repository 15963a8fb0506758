package nestfix

// ElementDef is one element's entry in a rule set: the content model its
// descendants must satisfy, and the names it forbids anywhere in its
// subtree.
type ElementDef struct {
	Content  ContentModel
	Excludes map[string]struct{} // nil when the element excludes nothing
}

// RuleSet maps element names to their definitions. It also names the
// virtual root element wrapped around every stream during a pass. Build it
// once, then treat it as read-only; a RuleSet is safe for concurrent use by
// any number of fixers after construction.
type RuleSet struct {
	byName map[string]ElementDef
	root   string
}

// NewRuleSet creates a rule set whose virtual root element is named root
// and validates top-level content with rootModel.
func NewRuleSet(root string, rootModel ContentModel) *RuleSet {
	r := &RuleSet{byName: map[string]ElementDef{}, root: root}
	r.Define(root, rootModel)
	return r
}

// Define registers an element. Excluded names are forbidden anywhere inside
// the element's subtree, regardless of what intermediate content models
// would accept. Redefining an element replaces its previous entry.
func (r *RuleSet) Define(name string, content ContentModel, excludes ...string) *RuleSet {
	def := ElementDef{Content: content}
	if len(excludes) > 0 {
		def.Excludes = make(map[string]struct{}, len(excludes))
		for _, ex := range excludes {
			def.Excludes[ex] = struct{}{}
		}
	}
	r.byName[name] = def
	return r
}

// Definition returns the definition for name, or an UnknownElementError if
// the rule set has none.
func (r *RuleSet) Definition(name string) (ElementDef, error) {
	def, ok := r.byName[name]
	if !ok {
		return ElementDef{}, NewUnknownElementError(name)
	}
	return def, nil
}

// Root returns the virtual root element's name.
func (r *RuleSet) Root() string { return r.root }

func (r *RuleSet) lookup(name string) (ElementDef, bool) {
	def, ok := r.byName[name]
	return def, ok
}
