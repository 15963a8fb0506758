package nestfix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Errors(t *testing.T) {
	t.Run("should format unbalanced errors with index and detail", func(t *testing.T) {
		err := NewUnbalancedError(7, "closing tag </b> with no open element")
		assert.Equal(t, "unbalanced token stream at index 7: closing tag </b> with no open element", err.Error())
	})

	t.Run("should format unknown element errors with the name", func(t *testing.T) {
		err := NewUnknownElementError("blink")
		assert.Equal(t, "no definition for element <blink>", err.Error())
	})

	t.Run("should format rule errors with and without an element", func(t *testing.T) {
		assert.Equal(t, `invalid rule for element <ul>: sequence model needs at least one child name`,
			NewRuleError("ul", "sequence model needs at least one child name").Error())
		assert.Equal(t, `invalid rule set: missing root element name`,
			NewRuleError("", "missing root element name").Error())
	})

	t.Run("should label drop reasons", func(t *testing.T) {
		assert.Equal(t, "excluded", DropExcluded.String())
		assert.Equal(t, "rejected", DropRejected.String())
		assert.Equal(t, "unknown", DropUnknown.String())
	})
}
