// Package ratelimit is a fixed-window in-memory limiter for abuse-prone
// endpoints like login and password reset.
package ratelimit

import (
	"strconv"
	"sync"
	"time"

	"github.com/ak-shop/api/apperr"
	"github.com/labstack/echo/v4"
)

type entry struct {
	count     int
	resetTime time.Time
}

type MemoryStore struct {
	mu   sync.Mutex
	data map[string]*entry
}

func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{data: make(map[string]*entry)}
	go store.cleanup()
	return store
}

// Increment bumps the counter for key, starting a new window when the old
// one has lapsed. Returns the count and the window reset time.
func (s *MemoryStore) Increment(key string, period time.Duration) (int, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if e, exists := s.data[key]; exists && now.Before(e.resetTime) {
		e.count++
		return e.count, e.resetTime
	}

	e := &entry{count: 1, resetTime: now.Add(period)}
	s.data[key] = e
	return e.count, e.resetTime
}

func (s *MemoryStore) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		now := time.Now()
		for key, e := range s.data {
			if now.After(e.resetTime) {
				delete(s.data, key)
			}
		}
		s.mu.Unlock()
	}
}

type Config struct {
	Store  *MemoryStore
	Rate   int
	Period time.Duration
	// KeyPrefix separates windows of different endpoints sharing a store.
	KeyPrefix string
}

func Middleware(cfg Config) echo.MiddlewareFunc {
	if cfg.Store == nil {
		cfg.Store = NewMemoryStore()
	}
	if cfg.Rate <= 0 {
		cfg.Rate = 10
	}
	if cfg.Period <= 0 {
		cfg.Period = time.Minute
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := cfg.KeyPrefix + ":" + c.RealIP()
			count, resetTime := cfg.Store.Increment(key, cfg.Period)

			remaining := cfg.Rate - count
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Rate))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			c.Response().Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

			if count > cfg.Rate {
				return apperr.TooManyRequests("too many requests, try again later")
			}

			return next(c)
		}
	}
}
