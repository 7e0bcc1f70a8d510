package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	codec := NewCodec(4, nil)

	vec := []float32{0.25, -1.5, 0, 3.75}
	decoded := codec.Decode(codec.Encode(vec))

	require.Equal(t, vec, decoded)
}

func TestCodecDecodeMalformed(t *testing.T) {
	codec := NewCodec(4, nil)

	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"garbage", "not json"},
		{"wrong type", `{"a":1}`},
		{"truncated", `[0.1, 0.2`},
		{"wrong length", `[0.1, 0.2]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decoded := codec.Decode(tc.input)
			require.Len(t, decoded, 4)
			assert.True(t, IsZero(decoded))
		})
	}
}

func TestCodecEncodeNil(t *testing.T) {
	codec := NewCodec(3, nil)
	assert.Equal(t, "[]", codec.Encode(nil))
}

func TestIsZero(t *testing.T) {
	assert.True(t, IsZero(nil))
	assert.True(t, IsZero([]float32{0, 0, 0}))
	assert.False(t, IsZero([]float32{0, 0.001, 0}))
}
