package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkAnswer(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		size   int
		want   []string
	}{
		{
			name:   "empty answer",
			answer: "",
			size:   4,
			want:   nil,
		},
		{
			name:   "shorter than chunk size",
			answer: "ok",
			size:   4,
			want:   []string{"ok"},
		},
		{
			name:   "exact multiple",
			answer: "abcdefgh",
			size:   4,
			want:   []string{"abcd", "efgh"},
		},
		{
			name:   "remainder chunk",
			answer: "abcdefghij",
			size:   4,
			want:   []string{"abcd", "efgh", "ij"},
		},
		{
			name:   "multibyte runes not split",
			answer: "早上好，今天天气不错",
			size:   4,
			want:   []string{"早上好，", "今天天气", "不错"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := chunkAnswer(tt.answer, tt.size)
			assert.Equal(t, tt.want, got)

			// 分块拼回必须还原原文
			assert.Equal(t, tt.answer, strings.Join(got, ""))
		})
	}
}
