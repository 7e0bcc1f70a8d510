package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDot(t *testing.T) {
	assert.InDelta(t, 0.85, Dot([]float32{1, 0, 0}, []float32{0.85, 0.5, 0}), 1e-6)
	assert.Equal(t, 0.0, Dot([]float32{1, 0}, []float32{1, 0, 0}), "mismatched lengths carry no signal")
	assert.Equal(t, 0.0, Dot(nil, nil))
	assert.Equal(t, 0.0, Dot([]float32{1, 2}, []float32{0, 0}))
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float32{3, 0, 0}, []float32{7, 0, 0}), 1e-6)
	assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-6)
	assert.InDelta(t, -1.0, Cosine([]float32{2, 0}, []float32{-5, 0}), 1e-6)
	assert.Equal(t, 0.0, Cosine([]float32{1, 1}, []float32{0, 0}), "zero vector yields no signal")
	assert.Equal(t, 0.0, Cosine(nil, []float32{1}))
}
