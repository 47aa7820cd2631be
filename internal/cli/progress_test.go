package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProgressBar(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, 3, "Importing")
	for i := 0; i < 3; i++ {
		require.NoError(t, bar.Add(1))
	}

	assert.True(t, bar.IsFinished())
	assert.Contains(t, buf.String(), "Importing")
	assert.Contains(t, buf.String(), "3/3")
}
