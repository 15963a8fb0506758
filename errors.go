package nestfix

import "fmt"

// UnbalancedError reports a token stream that violates the balance
// precondition: a closing tag with no matching open element, mismatched
// nesting, or an element left open at the end of the stream.
type UnbalancedError struct {
	Index   int    // token index where the violation was detected
	Message string // what was wrong there
}

// Error implements the error interface.
func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("unbalanced token stream at index %d: %s", e.Index, e.Message)
}

// NewUnbalancedError creates a new UnbalancedError.
func NewUnbalancedError(index int, message string) *UnbalancedError {
	return &UnbalancedError{Index: index, Message: message}
}

// UnknownElementError reports a lookup of an element the rule set does not
// define.
type UnknownElementError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownElementError) Error() string {
	return fmt.Sprintf("no definition for element <%s>", e.Name)
}

// NewUnknownElementError creates a new UnknownElementError.
func NewUnknownElementError(name string) *UnknownElementError {
	return &UnknownElementError{Name: name}
}

// RuleError reports an invalid rule-set description, typically while
// loading one from YAML.
type RuleError struct {
	Element string // element whose definition is broken; "" for set-level problems
	Message string
}

// Error implements the error interface.
func (e *RuleError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("invalid rule for element <%s>: %s", e.Element, e.Message)
	}
	return fmt.Sprintf("invalid rule set: %s", e.Message)
}

// NewRuleError creates a new RuleError.
func NewRuleError(element, message string) *RuleError {
	return &RuleError{Element: element, Message: message}
}
