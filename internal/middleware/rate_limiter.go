package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// sweepInterval controla a remoção periódica de chaves sem tráfego recente.
const sweepInterval = time.Minute

// RateLimiter é uma janela deslizante em memória por chave. Suficiente para
// uma instância única; com múltiplas réplicas cada uma limita por conta
// própria.
type RateLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	limit  int
	window time.Duration
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
	}
	go rl.sweep()
	return rl
}

// Allow registra o acesso e informa se a chave ainda está dentro do limite.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	recent := rl.prune(key, now)
	if len(recent) >= rl.limit {
		rl.hits[key] = recent
		return false
	}

	rl.hits[key] = append(recent, now)
	return true
}

// prune descarta os acessos fora da janela. Chamar com rl.mu adquirido.
func (rl *RateLimiter) prune(key string, now time.Time) []time.Time {
	cutoff := now.Add(-rl.window)
	kept := rl.hits[key][:0]
	for _, t := range rl.hits[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(sweepInterval)
	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key := range rl.hits {
			if kept := rl.prune(key, now); len(kept) == 0 {
				delete(rl.hits, key)
			} else {
				rl.hits[key] = kept
			}
		}
		rl.mu.Unlock()
	}
}

func rejectRateLimited(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"error":   "RATE_LIMIT_EXCEEDED",
		"message": "Muitas requisicoes. Tente novamente em alguns minutos.",
	})
	c.Abort()
}

// RateLimit limita por IP de origem. Usado nas rotas públicas de
// autenticação.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			rejectRateLimited(c)
			return
		}
		c.Next()
	}
}

// RateLimitByUser limita pelo usuário autenticado, caindo para o IP quando o
// contexto ainda não carrega user_id.
func RateLimitByUser() gin.HandlerFunc {
	limiter := NewRateLimiter(100, time.Minute)

	return func(c *gin.Context) {
		key := c.ClientIP()
		if userID, ok := c.Get("user_id"); ok {
			if id, isString := userID.(string); isString {
				key = id
			}
		}

		if !limiter.Allow(key) {
			rejectRateLimited(c)
			return
		}
		c.Next()
	}
}
