package diffview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesClassifiesChanges(t *testing.T) {
	lines := Lines("alpha\nbeta\n", "alpha\ngamma\n")
	require.NotEmpty(t, lines)

	var added, removed, context int
	for _, line := range lines {
		switch line.Kind {
		case LineAdded:
			added++
			assert.Equal(t, "gamma", line.Text)
		case LineRemoved:
			removed++
			assert.Equal(t, "beta", line.Text)
		case LineContext:
			context++
		}
	}
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, context)
}

func TestLinesIdenticalInput(t *testing.T) {
	for _, line := range Lines("a\nb\n", "a\nb\n") {
		assert.Equal(t, LineContext, line.Kind)
	}
}

func TestRenderTruncates(t *testing.T) {
	before := strings.Repeat("x\n", 50)
	after := strings.Repeat("y\n", 50)
	out := Render(before, after, 10)
	assert.LessOrEqual(t, strings.Count(out, "\n"), 11)
	assert.Contains(t, out, "…")
}
