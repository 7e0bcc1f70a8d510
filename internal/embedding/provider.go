package embedding

import "context"

// Provider produces embedding vectors for free text. Implementations must
// return vectors of exactly Dim() values or an error; they never return a
// partial vector.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dim() int
	// Normalized reports whether the provider guarantees unit-length vectors.
	// When false, similarity must be computed with Cosine instead of Dot.
	Normalized() bool
}
