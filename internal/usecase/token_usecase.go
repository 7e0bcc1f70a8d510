package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/recruitiq/recruit-match/internal/embedding"
	"github.com/recruitiq/recruit-match/internal/model"
	"go.uber.org/zap"
)

// ClusteringThreshold is the minimum similarity required to fold a new job
// posting into an existing token.
const ClusteringThreshold = 0.7

// TokenStore is the persistence surface the token index needs. CreateToken
// must behave as insert-if-absent on the token hash.
type TokenStore interface {
	FindByHash(hash string) (*model.JobToken, error)
	GetTokens() ([]model.JobToken, error)
	GetTokensByLocation(location string) ([]model.JobToken, error)
	CreateToken(token *model.JobToken) (*model.JobToken, error)
	IncrementJobCount(id uuid.UUID) error
}

// SimilarToken pairs a token with its similarity to a query description.
type SimilarToken struct {
	Token      model.JobToken
	Similarity float64
}

// TokenUsecase clusters near-duplicate job postings into shared tokens so
// reposts of the same role are not treated as distinct jobs.
type TokenUsecase struct {
	tokens   TokenStore
	provider embedding.Provider
	codec    *embedding.Codec
	logger   *zap.Logger

	// serializes the similarity slow path per normalized (title, location)
	// key so two concurrent posts of the same new role cannot both decide
	// "no similar token exists". Entries are refcounted and removed once
	// the last holder releases, so the map does not grow with every
	// distinct role ever posted.
	mu    sync.Mutex
	locks map[string]*tokenLock
}

type tokenLock struct {
	mu   sync.Mutex
	refs int
}

func NewTokenUsecase(tokens TokenStore, provider embedding.Provider, codec *embedding.Codec, logger *zap.Logger) *TokenUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenUsecase{
		tokens:   tokens,
		provider: provider,
		codec:    codec,
		logger:   logger,
		locks:    map[string]*tokenLock{},
	}
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TokenHash derives the content hash for a (title, location) pair.
func TokenHash(title, location string) string {
	sum := sha256.Sum256([]byte(normalizeText(title) + "_" + normalizeText(location)))
	return hex.EncodeToString(sum[:])
}

// FindOrCreateToken returns the cluster for a job posting, creating one when
// no existing cluster is similar enough. A hash hit skips embedding work
// entirely. Persistence failures return (nil, err); callers must treat a
// missing token as "unclustered", not as a failed job creation.
func (uc *TokenUsecase) FindOrCreateToken(ctx context.Context, title, location, description string) (*model.JobToken, error) {
	hash := TokenHash(title, location)

	token, err := uc.tokens.FindByHash(hash)
	if err != nil {
		return nil, fmt.Errorf("token lookup failed: %w", err)
	}
	if token != nil {
		if err := uc.tokens.IncrementJobCount(token.ID); err != nil {
			return nil, fmt.Errorf("token count update failed: %w", err)
		}
		token.JobCount++
		uc.logger.Debug("exact token match",
			zap.String("token_id", token.ID.String()),
			zap.String("title", token.BaseTitle))
		return token, nil
	}

	unlock := uc.lockKey(hash)
	defer unlock()

	// re-check under the lock; a concurrent caller may have just created it
	token, err = uc.tokens.FindByHash(hash)
	if err != nil {
		return nil, fmt.Errorf("token lookup failed: %w", err)
	}
	if token != nil {
		if err := uc.tokens.IncrementJobCount(token.ID); err != nil {
			return nil, fmt.Errorf("token count update failed: %w", err)
		}
		token.JobCount++
		return token, nil
	}

	vec := uc.embedOrZero(ctx, description)

	best, bestSimilarity, err := uc.bestMatch(vec, normalizeText(location))
	if err != nil {
		return nil, err
	}

	if best != nil && bestSimilarity >= ClusteringThreshold {
		uc.logger.Debug("similar token found",
			zap.String("token_id", best.ID.String()),
			zap.Float64("similarity", bestSimilarity))
		if err := uc.tokens.IncrementJobCount(best.ID); err != nil {
			return nil, fmt.Errorf("token count update failed: %w", err)
		}
		best.JobCount++
		return best, nil
	}

	newToken := &model.JobToken{
		TokenHash:         hash,
		BaseTitle:         normalizeText(title),
		BaseLocation:      normalizeText(location),
		DescriptionVector: uc.codec.Encode(vec),
		JobCount:          1,
	}
	created, err := uc.tokens.CreateToken(newToken)
	if err != nil {
		return nil, fmt.Errorf("token creation failed: %w", err)
	}
	uc.logger.Debug("created new token",
		zap.String("token_id", created.ID.String()),
		zap.String("title", created.BaseTitle))
	return created, nil
}

// FindSimilarJobs ranks tokens whose representative embedding is at or above
// the threshold, most similar first. Read-only; no hash fast path.
func (uc *TokenUsecase) FindSimilarJobs(ctx context.Context, description string, threshold float64, limit int) ([]SimilarToken, error) {
	vec := uc.embedOrZero(ctx, description)

	tokens, err := uc.tokens.GetTokens()
	if err != nil {
		return nil, fmt.Errorf("token listing failed: %w", err)
	}

	var similar []SimilarToken
	for _, t := range tokens {
		similarity := uc.similarity(vec, uc.codec.Decode(t.DescriptionVector))
		if similarity >= threshold {
			similar = append(similar, SimilarToken{Token: t, Similarity: similarity})
		}
	}

	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].Similarity > similar[j].Similarity
	})

	if limit > 0 && len(similar) > limit {
		similar = similar[:limit]
	}
	return similar, nil
}

// bestMatch scans existing tokens for the highest similarity, preferring
// tokens in the same normalized location and falling back to a full scan.
// Ties keep the first-seen token.
func (uc *TokenUsecase) bestMatch(vec []float32, location string) (*model.JobToken, float64, error) {
	candidates, err := uc.tokens.GetTokensByLocation(location)
	if err != nil {
		return nil, 0, fmt.Errorf("token listing failed: %w", err)
	}
	if len(candidates) == 0 {
		candidates, err = uc.tokens.GetTokens()
		if err != nil {
			return nil, 0, fmt.Errorf("token listing failed: %w", err)
		}
	}

	var best *model.JobToken
	bestSimilarity := 0.0
	for i := range candidates {
		similarity := uc.similarity(vec, uc.codec.Decode(candidates[i].DescriptionVector))
		if similarity > bestSimilarity {
			bestSimilarity = similarity
			best = &candidates[i]
		}
	}
	return best, bestSimilarity, nil
}

func (uc *TokenUsecase) similarity(a, b []float32) float64 {
	if embedding.IsZero(a) || embedding.IsZero(b) {
		return 0
	}
	if uc.provider.Normalized() {
		return embedding.Dot(a, b)
	}
	return embedding.Cosine(a, b)
}

// embedOrZero degrades provider failures to the zero vector so clustering
// never aborts the surrounding job creation.
func (uc *TokenUsecase) embedOrZero(ctx context.Context, text string) []float32 {
	vec, err := uc.provider.Embed(ctx, text)
	if err != nil {
		uc.logger.Warn("embedding failed, using zero vector", zap.Error(err))
		return uc.codec.Zero()
	}
	return vec
}

func (uc *TokenUsecase) lockKey(key string) func() {
	uc.mu.Lock()
	lock, ok := uc.locks[key]
	if !ok {
		lock = &tokenLock{}
		uc.locks[key] = lock
	}
	lock.refs++
	uc.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()
		uc.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(uc.locks, key)
		}
		uc.mu.Unlock()
	}
}
