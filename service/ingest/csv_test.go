package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExtractor_Extract(t *testing.T) {
	e := &CSVExtractor{}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "header row gets prefix",
			input: "a,b\n1,2\n3,4",
			want:  "Headers: a | b\n1 | 2\n3 | 4",
		},
		{
			name:  "fields are trimmed",
			input: "name , city\n alice ,  berlin ",
			want:  "Headers: name | city\nalice | berlin",
		},
		{
			name:  "empty lines are skipped",
			input: "a,b\n\n1,2\n,\n3,4\n",
			want:  "Headers: a | b\n1 | 2\n3 | 4",
		},
		{
			name:  "quoted fields with commas",
			input: "title,note\nreport,\"one, two\"",
			want:  "Headers: title | note\nreport | one, two",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := e.Extract(context.Background(), []byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestCSVExtractor_MalformedInput(t *testing.T) {
	e := &CSVExtractor{}

	// 未闭合的引号
	_, err := e.Extract(context.Background(), []byte("a,b\n\"1,2"))
	assert.ErrorIs(t, err, ErrMalformedDocument)
}

func TestCSVExtractor_EmptyInput(t *testing.T) {
	e := &CSVExtractor{}

	_, err := e.Extract(context.Background(), []byte("\n\n"))
	assert.ErrorIs(t, err, ErrNoExtractableText)
}
