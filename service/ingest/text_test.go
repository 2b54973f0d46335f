package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextExtractor_Identity(t *testing.T) {
	e := &TextExtractor{}

	inputs := []string{
		"plain text",
		"# markdown\n\nwith **formatting**\n",
		`{"key": "value"}`,
		"  leading and trailing spaces  ",
		"多字节字符也原样保留",
		"",
	}

	for _, input := range inputs {
		text, err := e.Extract(context.Background(), []byte(input))
		require.NoError(t, err)

		// 输出与输入字节完全一致，无任何转换
		assert.Equal(t, input, text)
	}
}

func TestTextExtractor_InvalidUTF8(t *testing.T) {
	e := &TextExtractor{}

	_, err := e.Extract(context.Background(), []byte{0xff, 0xfe, 0xfd})
	assert.ErrorIs(t, err, ErrMalformedDocument)
}
