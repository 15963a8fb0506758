package nestfix

// Event is a diagnostic emitted while the fixer rewrites a stream. Events
// describe what was pruned or rewritten; they never influence the rewrite
// itself.
type Event interface{ isEvent() }

// DropReason says why a node was removed.
type DropReason int

const (
	// DropExcluded: an open ancestor's exclusion set names the element.
	DropExcluded DropReason = iota
	// DropRejected: the element's own content model returned Drop.
	DropRejected
	// DropUnknown: the rule set has no definition for the element.
	DropUnknown
)

// String returns a short label for the reason.
func (r DropReason) String() string {
	switch r {
	case DropExcluded:
		return "excluded"
	case DropRejected:
		return "rejected"
	case DropUnknown:
		return "unknown"
	}
	return "invalid"
}

// NodeDroppedEvent reports a node removed together with its subtree.
type NodeDroppedEvent struct {
	Name   string
	Parent string // enclosing element; the rule set's root name at top level
	Reason DropReason
}

func (NodeDroppedEvent) isEvent() {}

// ContentRewrittenEvent reports a node whose descendants were replaced by
// its content model. Before and After are descendant token counts.
type ContentRewrittenEvent struct {
	Name   string
	Before int
	After  int
}

func (ContentRewrittenEvent) isEvent() {}

// EventSink receives diagnostics from a running pass.
type EventSink interface {
	OnEvent(ev Event)
}

// EventSinkFunc adapts a function to the EventSink interface.
type EventSinkFunc func(ev Event)

func (f EventSinkFunc) OnEvent(ev Event) { f(ev) }
