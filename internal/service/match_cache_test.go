package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"career-compass/internal/domain"
)

type fakeRedisKV struct {
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
}

func newFakeRedisKV() *fakeRedisKV {
	return &fakeRedisKV{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedisKV) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	if f.getErr != nil {
		cmd.SetErr(f.getErr)
		return cmd
	}
	v, ok := f.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(v)
	return cmd
}

func (f *fakeRedisKV) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "set", key)
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
	cmd.SetVal("OK")
	return cmd
}

func sampleMatches() []domain.MatchResult {
	return []domain.MatchResult{
		{CareerID: "nurse", Title: "Nurse", MatchPercentage: 91, MatchReasons: []string{"r1", "r2"}, Score: 90.6},
		{CareerID: "welder", Title: "Welder", MatchPercentage: 40, Score: 40.2},
	}
}

func TestMatchCacheKey_StableAndVersioned(t *testing.T) {
	a := MatchCacheKey(domain.TraitVector{"social": 40, "openness": 12.5}, "v1")
	b := MatchCacheKey(domain.TraitVector{"openness": 12.5, "social": 40}, "v1")
	if a != b {
		t.Fatalf("expected key independent of map order: %s vs %s", a, b)
	}
	if !strings.HasPrefix(a, "v1:") {
		t.Fatalf("expected version prefix, got %s", a)
	}
	if MatchCacheKey(domain.TraitVector{"social": 40, "openness": 12.5}, "v2") == a {
		t.Fatalf("expected different key for another catalog version")
	}
	if MatchCacheKey(domain.TraitVector{"social": 41, "openness": 12.5}, "v1") == a {
		t.Fatalf("expected different key for another profile")
	}
}

func TestMemoryMatchCache_SetGetClone(t *testing.T) {
	cache := NewMemoryMatchCache()
	ctx := context.Background()

	if _, ok, _ := cache.Get(ctx, "k"); ok {
		t.Fatalf("expected miss on empty cache")
	}
	in := sampleMatches()
	if err := cache.Set(ctx, "k", in, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	in[0].MatchReasons[0] = "mutated"

	got, ok, err := cache.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got[0].MatchReasons[0] != "r1" {
		t.Fatalf("expected cached copy to be isolated, got %q", got[0].MatchReasons[0])
	}
}

func TestMemoryMatchCache_Expires(t *testing.T) {
	cache := NewMemoryMatchCache().(*memoryMatchCache)
	cache.items["k"] = memoryMatchEntry{matches: sampleMatches(), expiresAt: time.Now().UTC().Add(-time.Second)}
	if _, ok, _ := cache.Get(context.Background(), "k"); ok {
		t.Fatalf("expected expired entry to miss")
	}
	if _, exists := cache.items["k"]; exists {
		t.Fatalf("expected expired entry to be removed")
	}
}

func TestRedisMatchCache_RoundTrip(t *testing.T) {
	fake := newFakeRedisKV()
	cache := &redisMatchCache{client: fake, prefix: "matches:"}
	ctx := context.Background()

	if _, ok, err := cache.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}
	if err := cache.Set(ctx, "k", sampleMatches(), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if fake.ttls["matches:k"] != defaultMatchCacheTTL {
		t.Fatalf("expected default ttl, got %v", fake.ttls["matches:k"])
	}
	got, ok, err := cache.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if len(got) != 2 || got[0].CareerID != "nurse" || got[0].MatchPercentage != 91 || len(got[0].MatchReasons) != 2 {
		t.Fatalf("unexpected cached matches %+v", got)
	}
}

func TestRedisMatchCache_KeepsUnroundedScore(t *testing.T) {
	fake := newFakeRedisKV()
	cache := &redisMatchCache{client: fake, prefix: "matches:"}
	ctx := context.Background()

	in := []domain.MatchResult{{CareerID: "dev", Title: "Developer", MatchPercentage: 73, Score: 72.6}}
	if err := cache.Set(ctx, "k", in, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !strings.Contains(fake.data["matches:k"], `"score":72.6`) {
		t.Fatalf("expected score in stored payload, got %s", fake.data["matches:k"])
	}
	got, ok, err := cache.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got[0].Score != 72.6 || got[0].MatchPercentage != 73 {
		t.Fatalf("expected score 72.6 and percentage 73, got %+v", got[0])
	}
}

func TestRedisMatchCache_GetError(t *testing.T) {
	fake := newFakeRedisKV()
	fake.getErr = errors.New("connection refused")
	cache := &redisMatchCache{client: fake, prefix: "matches:"}
	if _, ok, err := cache.Get(context.Background(), "k"); ok || err == nil {
		t.Fatalf("expected error, got ok=%v err=%v", ok, err)
	}
}

func TestNewRedisMatchCache_NilClient(t *testing.T) {
	if NewRedisMatchCache(nil) != nil {
		t.Fatalf("expected nil cache for nil client")
	}
}

func TestRedisMatchCache_Miniredis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	cache := NewRedisMatchCache(client)
	ctx := context.Background()
	key := MatchCacheKey(domain.TraitVector{"social": 40}, "v1")

	if err := cache.Set(ctx, key, sampleMatches(), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !mr.Exists("matches:" + key) {
		t.Fatalf("expected prefixed key in redis")
	}
	got, ok, err := cache.Get(ctx, key)
	if err != nil || !ok || got[0].CareerID != "nurse" {
		t.Fatalf("expected hit, got ok=%v err=%v matches=%+v", ok, err, got)
	}
	if got[0].Score != 90.6 || got[1].Score != 40.2 {
		t.Fatalf("expected unrounded scores to survive redis, got %v and %v", got[0].Score, got[1].Score)
	}

	mr.FastForward(2 * time.Minute)
	if _, ok, err := cache.Get(ctx, key); ok || err != nil {
		t.Fatalf("expected expired entry to miss, got ok=%v err=%v", ok, err)
	}
}
