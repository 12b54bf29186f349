package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	tests := []struct {
		name string
		data string
		sum  uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
		{"long string", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.sum, String(tt.data))
		})
	}
}

func TestDigest_MatchesOneShot(t *testing.T) {
	d := New()
	_, err := d.Write([]byte("this is a longer "))
	require.NoError(t, err)
	_, err = d.Write([]byte("test string to hash"))
	require.NoError(t, err)

	assert.Equal(t, String("this is a longer test string to hash"), d.Sum64())
}
