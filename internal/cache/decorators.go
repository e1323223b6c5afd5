package cache

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/jonathan/curriculum-curator/internal/observability"
)

// TranscriptFetcher returns the plain-text transcript of a video.
type TranscriptFetcher interface {
	Transcript(ctx context.Context, videoID string) (string, error)
}

// Embedder turns text into an embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// CachedTranscripts caches successful transcript fetches. Failures are never cached
// so an unavailable transcript is retried on the next request.
type CachedTranscripts struct {
	Inner TranscriptFetcher
	Store Store
	TTL   time.Duration
	Log   *observability.Logger
}

// Transcript returns the cached transcript for videoID or fetches and stores it.
// With no Store it delegates straight to Inner.
func (c *CachedTranscripts) Transcript(ctx context.Context, videoID string) (string, error) {
	if c.Store == nil {
		return c.Inner.Transcript(ctx, videoID)
	}
	log := observability.OrNop(c.Log)
	key := Key("transcript", videoID)

	if raw, ok, err := c.Store.Get(ctx, key); err != nil {
		log.Warn("transcript cache read failed", "video_id", videoID, "error", err)
	} else if ok {
		return string(raw), nil
	}

	text, err := c.Inner.Transcript(ctx, videoID)
	if err != nil {
		return "", err
	}
	if err := c.Store.Set(ctx, key, []byte(text), ttlOrDefault(c.TTL)); err != nil {
		log.Warn("transcript cache write failed", "video_id", videoID, "error", err)
	}
	return text, nil
}

// CachedEmbedder caches embeddings keyed by a hash of the input text.
type CachedEmbedder struct {
	Inner Embedder
	Store Store
	TTL   time.Duration
	Log   *observability.Logger
}

// Embed returns the cached vector for text or computes and stores it. A cached entry
// that does not decode is recomputed.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if c.Store == nil {
		return c.Inner.Embed(ctx, text)
	}
	log := observability.OrNop(c.Log)
	key := Key("embedding", text)

	if raw, ok, err := c.Store.Get(ctx, key); err != nil {
		log.Warn("embedding cache read failed", "error", err)
	} else if ok {
		if vec, err := decodeVector(raw); err == nil {
			return vec, nil
		}
		log.Warn("discarding corrupt cached embedding", "key", key)
	}

	vec, err := c.Inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := c.Store.Set(ctx, key, encodeVector(vec), ttlOrDefault(c.TTL)); err != nil {
		log.Warn("embedding cache write failed", "error", err)
	}
	return vec, nil
}

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}

// encodeVector stores float32 values little-endian, four bytes each.
func encodeVector(vec []float32) []byte {
	out := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
	}
	return out
}

func decodeVector(raw []byte) ([]float32, error) {
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("invalid embedding length %d", len(raw))
	}
	vec := make([]float32, len(raw)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:]))
	}
	return vec, nil
}
