package ingest

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBatch_OrderPreservingAndFailureIsolating(t *testing.T) {
	registry := DefaultRegistry()

	files := []File{
		{Name: "a.txt", MIMEType: "text/plain", Data: []byte("content of a")},
		{Name: "bad.csv", MIMEType: "text/csv", Data: []byte("a,b\n\"1,2")},
		{Name: "c.txt", MIMEType: "text/plain", Data: []byte("content of c")},
	}

	results := ExtractBatch(context.Background(), registry, files)
	require.Len(t, results, 3)

	// 单个文件失败不影响其余文件
	assert.Equal(t, "content of a", results[0].Text)
	assert.NoError(t, results[0].Err)

	assert.ErrorIs(t, results[1].Err, ErrMalformedDocument)

	assert.Equal(t, "content of c", results[2].Text)
	assert.NoError(t, results[2].Err)
}

// cyclicPagePDF 构造页面树自引用的PDF：头部和xref均合法，
// 但解码器遍历/Kids时陷入死循环
func cyclicPagePDF() []byte {
	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	off1 := b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	off2 := b.Len()
	b.WriteString("2 0 obj\n<< /Type /Pages /Kids [2 0 R] /Count 1 >>\nendobj\n")
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 3\n0000000000 65535 f \n%010d 00000 n \n%010d 00000 n \n", off1, off2)
	fmt.Fprintf(&b, "trailer\n<< /Size 3 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xref)
	return b.Bytes()
}

func TestExtractBatch_StalledDecoderDoesNotBlockBatch(t *testing.T) {
	old := extractTimeout
	extractTimeout = 200 * time.Millisecond
	defer func() { extractTimeout = old }()

	registry := DefaultRegistry()
	files := []File{
		{Name: "a.txt", MIMEType: "text/plain", Data: []byte("content of a")},
		{Name: "loop.pdf", MIMEType: "application/pdf", Data: cyclicPagePDF()},
		{Name: "c.txt", MIMEType: "text/plain", Data: []byte("content of c")},
	}

	results := ExtractBatch(context.Background(), registry, files)
	require.Len(t, results, 3)

	assert.Equal(t, "content of a", results[0].Text)
	assert.ErrorIs(t, results[1].Err, ErrExtractionStalled)
	assert.Equal(t, "content of c", results[2].Text)
}

type panickyExtractor struct{}

func (panickyExtractor) Name() string         { return "panicky" }
func (panickyExtractor) MIMETypes() []string  { return []string{"application/x-panic"} }
func (panickyExtractor) Extensions() []string { return []string{".panic"} }
func (panickyExtractor) Extract(context.Context, []byte) (string, error) {
	panic("corrupt structure")
}

func TestExtractBatch_PanickingDecoderBecomesFileError(t *testing.T) {
	registry := NewRegistry()
	registry.Register(panickyExtractor{})
	registry.Register(&TextExtractor{})

	files := []File{
		{Name: "x.panic", MIMEType: "application/x-panic", Data: []byte("boom")},
		{Name: "ok.txt", MIMEType: "text/plain", Data: []byte("still here")},
	}

	results := ExtractBatch(context.Background(), registry, files)
	require.Len(t, results, 2)

	assert.ErrorIs(t, results[0].Err, ErrMalformedDocument)
	assert.Contains(t, results[0].Err.Error(), "corrupt structure")
	assert.Equal(t, "still here", results[1].Text)
}

func TestExtractBatch_UnsupportedFileGetsSentinel(t *testing.T) {
	registry := DefaultRegistry()

	files := []File{
		{Name: "slides.pptx", MIMEType: "application/vnd.ms-powerpoint", Data: []byte("irrelevant")},
	}

	results := ExtractBatch(context.Background(), registry, files)
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, ErrUnsupportedFormat)
}

func TestResult_Sentinel(t *testing.T) {
	ok := Result{Name: "a.txt", Text: "hello"}
	assert.Equal(t, "hello", ok.Sentinel())

	failed := Result{Name: "b.pdf", Err: ErrMalformedDocument}
	assert.Equal(t, "[Error parsing b.pdf: malformed document]", failed.Sentinel())
}

func TestTexts_MatchesInputLengthAndOrder(t *testing.T) {
	registry := DefaultRegistry()

	files := []File{
		{Name: "a.txt", MIMEType: "text/plain", Data: []byte("first")},
		{Name: "broken.bin", MIMEType: "application/x-unknown", Data: []byte("x")},
		{Name: "c.md", MIMEType: "text/markdown", Data: []byte("third")},
	}

	texts := Texts(ExtractBatch(context.Background(), registry, files))
	require.Len(t, texts, 3)

	assert.Equal(t, "first", texts[0])
	assert.Contains(t, texts[1], "[Error parsing broken.bin:")
	assert.Equal(t, "third", texts[2])
}

func TestExtractBatchParallel_MatchesSequential(t *testing.T) {
	registry := DefaultRegistry()

	var files []File
	for i := 0; i < 20; i++ {
		if i%5 == 0 {
			files = append(files, File{Name: "bad.csv", MIMEType: "text/csv", Data: []byte("\"unclosed")})
			continue
		}
		files = append(files, File{
			Name:     "ok.txt",
			MIMEType: "text/plain",
			Data:     []byte{byte('a' + i)},
		})
	}

	sequential := Texts(ExtractBatch(context.Background(), registry, files))
	parallel := Texts(ExtractBatchParallel(context.Background(), registry, files, 4))

	assert.Equal(t, sequential, parallel)
}
