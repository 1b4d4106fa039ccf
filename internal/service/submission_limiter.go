package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SubmissionLimiter acota cuantas evaluaciones o quizzes envia un estudiante por ventana.
type SubmissionLimiter interface {
	Allow(ctx context.Context, studentID string) bool
}

const (
	defaultSubmissionWindow = time.Minute
	defaultSubmissionMax    = 20
)

type memorySubmissionLimiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	hits   map[string][]time.Time
	now    func() time.Time
	// lastSweep marca la ultima limpieza de estudiantes sin envios en la ventana.
	lastSweep time.Time
}

// NewMemorySubmissionLimiter crea un limitador de ventana deslizante en memoria.
func NewMemorySubmissionLimiter(window time.Duration, max int) SubmissionLimiter {
	window, max = submissionDefaults(window, max)
	return &memorySubmissionLimiter{
		window: window,
		max:    max,
		hits:   make(map[string][]time.Time),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (l *memorySubmissionLimiter) Allow(_ context.Context, studentID string) bool {
	key := strings.TrimSpace(studentID)
	if key == "" {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)
	if now.Sub(l.lastSweep) >= l.window {
		l.sweep(cutoff)
		l.lastSweep = now
	}
	recent := l.hits[key][:0]
	for _, ts := range l.hits[key] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}
	if len(recent) == 0 {
		delete(l.hits, key)
	}
	if len(recent) >= l.max {
		l.hits[key] = recent
		return false
	}
	l.hits[key] = append(recent, now)
	return true
}

// sweep borra las claves cuyo ultimo envio quedo fuera de la ventana.
func (l *memorySubmissionLimiter) sweep(cutoff time.Time) {
	for key, stamps := range l.hits {
		if len(stamps) == 0 || !stamps[len(stamps)-1].After(cutoff) {
			delete(l.hits, key)
		}
	}
}

// El primer INCR de la ventana fija el TTL; los siguientes solo cuentan.
const redisSubmissionScript = `
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return n
`

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

type redisSubmissionLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	prefix string
}

// NewRedisSubmissionLimiter comparte el conteo entre replicas de la API.
func NewRedisSubmissionLimiter(client *redis.Client, window time.Duration, max int) SubmissionLimiter {
	if client == nil {
		return nil
	}
	window, max = submissionDefaults(window, max)
	return &redisSubmissionLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "submit:rl:",
	}
}

// Allow deja pasar si redis no responde.
func (l *redisSubmissionLimiter) Allow(ctx context.Context, studentID string) bool {
	if l == nil || l.client == nil {
		return true
	}
	key := strings.TrimSpace(studentID)
	if key == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	seconds := int(l.window.Seconds())
	if seconds <= 0 {
		seconds = 60
	}
	count, err := l.client.Eval(ctx, redisSubmissionScript, []string{l.prefix + key}, seconds).Int()
	if err != nil {
		return true
	}
	return count <= l.max
}

func submissionDefaults(window time.Duration, max int) (time.Duration, int) {
	if window <= 0 {
		window = defaultSubmissionWindow
	}
	if max <= 0 {
		max = defaultSubmissionMax
	}
	return window, max
}
