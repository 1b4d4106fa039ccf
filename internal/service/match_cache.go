package service

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"

	"career-compass/internal/domain"
)

// MatchCache memoiza listas de coincidencias por (huella del perfil, version del catalogo).
// Un cambio de catalogo cambia la clave, por lo que nunca se sirven resultados viejos.
type MatchCache interface {
	Get(ctx context.Context, key string) ([]domain.MatchResult, bool, error)
	Set(ctx context.Context, key string, matches []domain.MatchResult, ttl time.Duration) error
}

// MatchCacheKey arma la clave con una huella blake2b del perfil en orden canonico.
func MatchCacheKey(profile domain.TraitVector, catalogVersion string) string {
	var b strings.Builder
	for _, dim := range profile.Dimensions() {
		b.WriteString(dim)
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(profile[dim], 'g', -1, 64))
		b.WriteByte(';')
	}
	sum := blake2b.Sum256([]byte(b.String()))
	return catalogVersion + ":" + hex.EncodeToString(sum[:16])
}

type memoryMatchEntry struct {
	matches   []domain.MatchResult
	expiresAt time.Time
}

type memoryMatchCache struct {
	mu    sync.Mutex
	items map[string]memoryMatchEntry
}

func NewMemoryMatchCache() MatchCache {
	return &memoryMatchCache{
		items: make(map[string]memoryMatchEntry),
	}
}

func (c *memoryMatchCache) Get(_ context.Context, key string) ([]domain.MatchResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.items[key]
	if !ok {
		return nil, false, nil
	}
	if time.Now().UTC().After(entry.expiresAt) {
		delete(c.items, key)
		return nil, false, nil
	}
	return cloneMatches(entry.matches), true, nil
}

func (c *memoryMatchCache) Set(_ context.Context, key string, matches []domain.MatchResult, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if strings.TrimSpace(key) == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = defaultMatchCacheTTL
	}
	c.items[key] = memoryMatchEntry{
		matches:   cloneMatches(matches),
		expiresAt: time.Now().UTC().Add(ttl),
	}
	return nil
}

const defaultMatchCacheTTL = 30 * time.Minute

type redisKVClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// cachedMatch guarda tambien el puntaje sin redondear, que la API no expone.
type cachedMatch struct {
	domain.MatchResult
	Score float64 `json:"score"`
}

type redisMatchCache struct {
	client redisKVClient
	prefix string
}

func NewRedisMatchCache(client *redis.Client) MatchCache {
	if client == nil {
		return nil
	}
	return &redisMatchCache{
		client: client,
		prefix: "matches:",
	}
}

func (c *redisMatchCache) Get(ctx context.Context, key string) ([]domain.MatchResult, bool, error) {
	if strings.TrimSpace(key) == "" {
		return nil, false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var cached []cachedMatch
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false, err
	}
	matches := make([]domain.MatchResult, len(cached))
	for i, m := range cached {
		matches[i] = m.MatchResult
		matches[i].Score = m.Score
	}
	return matches, true, nil
}

func (c *redisMatchCache) Set(ctx context.Context, key string, matches []domain.MatchResult, ttl time.Duration) error {
	if strings.TrimSpace(key) == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = defaultMatchCacheTTL
	}
	cached := make([]cachedMatch, len(matches))
	for i, m := range matches {
		cached[i] = cachedMatch{MatchResult: m, Score: m.Score}
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return c.client.Set(ctx, c.prefix+key, data, ttl).Err()
}

func cloneMatches(in []domain.MatchResult) []domain.MatchResult {
	if in == nil {
		return nil
	}
	out := make([]domain.MatchResult, len(in))
	for i, m := range in {
		m.MatchReasons = append([]string(nil), m.MatchReasons...)
		out[i] = m
	}
	return out
}
