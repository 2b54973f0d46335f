package ingest

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTwoPagePDF 生成最小的双页PDF，每页一段Helvetica文本
func buildTwoPagePDF(page1, page2 string) []byte {
	content1 := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", page1)
	content2 := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", page2)

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R 5 0 R] /Count 2 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 7 0 R >> >> /Contents 4 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content1), content1),
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 7 0 R >> >> /Contents 6 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content2), content2),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return b.Bytes()
}

func TestPDFExtractor_TwoPageDocument(t *testing.T) {
	e := &PDFExtractor{}

	text, err := e.Extract(context.Background(), buildTwoPagePDF("Alpha page", "Beta page"))
	require.NoError(t, err)

	// 页码标记按升序出现，各页文本跟在自己的标记之后
	idx1 := bytes.Index([]byte(text), []byte("--- Page 1 ---"))
	idx2 := bytes.Index([]byte(text), []byte("--- Page 2 ---"))
	require.GreaterOrEqual(t, idx1, 0)
	require.Greater(t, idx2, idx1)

	assert.Contains(t, text[idx1:idx2], "Alpha page")
	assert.Contains(t, text[idx2:], "Beta page")
}

func TestAssemblePDFPages(t *testing.T) {
	t.Run("page markers in ascending order", func(t *testing.T) {
		text, err := assemblePDFPages([]string{"first page", "second page", "third page"})
		require.NoError(t, err)

		assert.Equal(t,
			"--- Page 1 ---\nfirst page\n--- Page 2 ---\nsecond page\n--- Page 3 ---\nthird page",
			text,
		)
	})

	t.Run("empty page gets explicit marker", func(t *testing.T) {
		text, err := assemblePDFPages([]string{"has text", "", "more text"})
		require.NoError(t, err)

		assert.Contains(t, text, "--- Page 2 ---\n[empty page]")
		assert.Contains(t, text, "--- Page 3 ---\nmore text")
	})

	t.Run("all pages empty fails as image-only", func(t *testing.T) {
		_, err := assemblePDFPages([]string{"", "", ""})
		assert.ErrorIs(t, err, ErrImageOnlyDocument)
	})

	t.Run("zero pages fails with no extractable text", func(t *testing.T) {
		_, err := assemblePDFPages(nil)
		assert.ErrorIs(t, err, ErrNoExtractableText)
	})
}

func TestPDFExtractor_MalformedInput(t *testing.T) {
	e := &PDFExtractor{}

	_, err := e.Extract(context.Background(), []byte("this is not a pdf"))
	assert.ErrorIs(t, err, ErrMalformedDocument)
}
