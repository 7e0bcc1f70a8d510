package embedding

import (
	"encoding/json"

	"go.uber.org/zap"
)

// Codec serializes embedding vectors to the JSON text form stored on job
// tokens. Decode never fails: anything malformed degrades to the zero vector
// of the configured dimension, which scores as "no signal" everywhere.
type Codec struct {
	dim    int
	logger *zap.Logger
}

func NewCodec(dim int, logger *zap.Logger) *Codec {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Codec{dim: dim, logger: logger}
}

func (c *Codec) Dim() int {
	return c.dim
}

// Encode serializes a vector to its stored string form.
func (c *Codec) Encode(vec []float32) string {
	if vec == nil {
		vec = []float32{}
	}
	b, err := json.Marshal(vec)
	if err != nil {
		c.logger.Error("failed to encode embedding", zap.Error(err))
		return "[]"
	}
	return string(b)
}

// Decode parses a stored vector. Empty or malformed input yields the zero
// vector of the codec's dimension, never a shorter or longer one.
func (c *Codec) Decode(s string) []float32 {
	if s == "" {
		return c.Zero()
	}
	var vec []float32
	if err := json.Unmarshal([]byte(s), &vec); err != nil {
		c.logger.Warn("failed to decode embedding, using zero vector",
			zap.Error(err), zap.Int("dim", c.dim))
		return c.Zero()
	}
	if len(vec) != c.dim {
		c.logger.Warn("decoded embedding has wrong dimension, using zero vector",
			zap.Int("got", len(vec)), zap.Int("want", c.dim))
		return c.Zero()
	}
	return vec
}

// Zero returns the all-zero vector of the codec's dimension.
func (c *Codec) Zero() []float32 {
	return make([]float32, c.dim)
}

// IsZero reports whether the vector carries no signal.
func IsZero(vec []float32) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}
