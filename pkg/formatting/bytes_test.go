package formatting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/heritage/pkg/formatting"
)

func TestParseBytes(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"2048", 2048},
		{"10MB", 10 * 1024 * 1024},
		{"10 mb", 10 * 1024 * 1024},
		{"1.5KB", 1536},
		{"1GB", 1 << 30},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBytesInvalid(t *testing.T) {
	for _, in := range []string{"", "MB", "10XB", "1.2.3KB", "-4KB"} {
		t.Run(in, func(t *testing.T) {
			_, err := formatting.ParseBytes(in)
			assert.Error(t, err)
		})
	}
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0 B", formatting.FormatBytes(0, 1))
	assert.Equal(t, "512 B", formatting.FormatBytes(512, 0))
	assert.Equal(t, "1.5 KB", formatting.FormatBytes(1536, 1))
	assert.Equal(t, "10 MB", formatting.FormatBytes(10*1024*1024, 0))
}
