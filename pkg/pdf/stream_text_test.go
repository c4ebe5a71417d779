package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreamTextLines(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		want   []string
	}{
		{
			name:   "single Tj",
			stream: "BT /F1 12 Tf 72 720 Td (Hello World) Tj ET",
			want:   []string{"Hello World"},
		},
		{
			name:   "Td with vertical move starts a line",
			stream: "BT /F1 12 Tf 72 720 Td (one) Tj 0 -20 Td (two) Tj ET",
			want:   []string{"one", "two"},
		},
		{
			name:   "TJ with word gap",
			stream: "BT [(Hel) -10 (lo) -300 (there)] TJ ET",
			want:   []string{"Hello there"},
		},
		{
			name:   "T* and quote operators",
			stream: "BT (a) Tj T* (b) Tj (c) ' ET",
			want:   []string{"a", "b", "c"},
		},
		{
			name:   "escaped parentheses and octal",
			stream: `BT (f\(x\) \101) Tj ET`,
			want:   []string{"f(x) A"},
		},
		{
			name:   "hex string",
			stream: "BT <48656C6C6F> Tj ET",
			want:   []string{"Hello"},
		},
		{
			name:   "UTF-16BE hex string",
			stream: "BT <FEFF00E9> Tj ET",
			want:   []string{"é"},
		},
		{
			name:   "Tm row change",
			stream: "BT 1 0 0 1 72 700 Tm (x) Tj 1 0 0 1 72 680 Tm (y) Tj ET",
			want:   []string{"x", "y"},
		},
		{
			name:   "separate text objects",
			stream: "BT (first) Tj ET BT (second) Tj ET",
			want:   []string{"first", "second"},
		},
		{
			name:   "graphics only",
			stream: "100 100 50 50 re S",
			want:   nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, streamTextLines([]byte(tc.stream)))
		})
	}
}

func TestDecodeText_Latin1(t *testing.T) {
	assert.Equal(t, "café", decodeText([]byte{'c', 'a', 'f', 0xE9}))
}
