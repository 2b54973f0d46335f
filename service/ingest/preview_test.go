package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreview(t *testing.T) {
	t.Run("short text unchanged", func(t *testing.T) {
		assert.Equal(t, "short", Preview("short", 500))
	})

	t.Run("text at exact limit unchanged", func(t *testing.T) {
		text := strings.Repeat("x", 500)
		assert.Equal(t, text, Preview(text, 500))
	})

	t.Run("long text truncated with ellipsis", func(t *testing.T) {
		text := strings.Repeat("x", 501)
		got := Preview(text, 500)

		assert.Equal(t, text[:500]+"...", got)
		assert.LessOrEqual(t, len(got), 500+len("..."))
	})

	t.Run("zero max falls back to default", func(t *testing.T) {
		text := strings.Repeat("y", DefaultPreviewLength+10)
		got := Preview(text, 0)

		assert.Equal(t, text[:DefaultPreviewLength]+"...", got)
	})

	t.Run("multibyte characters are not split", func(t *testing.T) {
		text := strings.Repeat("文", 10)
		got := Preview(text, 5)

		assert.Equal(t, strings.Repeat("文", 5)+"...", got)
	})
}
