package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)

	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestWordExtractor_Docx(t *testing.T) {
	e := &WordExtractor{}

	data := buildDocx(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Hello from Word.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	text, err := e.Extract(context.Background(), data)
	require.NoError(t, err)

	assert.Contains(t, text, "Hello from Word.")
	assert.Contains(t, text, "Second paragraph.")
}

func TestWordExtractor_DocxWithoutText(t *testing.T) {
	e := &WordExtractor{}

	data := buildDocx(t, `<?xml version="1.0"?><w:document xmlns:w="http://example.com"></w:document>`)

	_, err := e.Extract(context.Background(), data)
	assert.ErrorIs(t, err, ErrNoExtractableText)
}

func TestWordExtractor_CorruptZip(t *testing.T) {
	e := &WordExtractor{}

	// zip magic开头但内容损坏
	data := append([]byte("PK\x03\x04"), []byte("garbage payload")...)

	_, err := e.Extract(context.Background(), data)
	assert.ErrorIs(t, err, ErrMalformedDocument)
}

func TestWordExtractor_LegacyDoc(t *testing.T) {
	e := &WordExtractor{}

	// 模拟旧版doc：文本片段夹杂在二进制噪声中
	data := []byte("\x00\x01\x02Quarterly results\x00\x00\xff\xfeare strong\x03\x04ab\x00")

	text, err := e.Extract(context.Background(), data)
	require.NoError(t, err)

	assert.Contains(t, text, "Quarterly results")
	assert.Contains(t, text, "are strong")

	// 长度不足的片段被丢弃
	assert.NotContains(t, text, "ab\n")
}

func TestWordExtractor_LegacyDocNoText(t *testing.T) {
	e := &WordExtractor{}

	_, err := e.Extract(context.Background(), []byte{0x00, 0x01, 0x02, 0x03})
	assert.ErrorIs(t, err, ErrNoExtractableText)
}

func TestExtractPrintableRuns(t *testing.T) {
	assert.Equal(t, "hello world", extractPrintableRuns([]byte("\x00hello world\x00")))
	assert.Equal(t, "", extractPrintableRuns([]byte("\x00ab\x00cd\x00")))
}
