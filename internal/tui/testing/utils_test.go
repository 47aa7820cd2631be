package testing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "Total $4.50", StripANSI("\x1b[1mTotal\x1b[0m \x1b[32m$4.50\x1b[0m"))
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", NormalizeWhitespace("  a\n\tb   c "))
}

func TestContainsInOrder(t *testing.T) {
	assert.True(t, ContainsInOrder("Mon Tue Wed", "Mon", "Wed"))
	assert.False(t, ContainsInOrder("Mon Tue Wed", "Wed", "Mon"))
}
