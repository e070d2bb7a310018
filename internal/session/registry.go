package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fekuna/omnipos-replenishment-service/internal/replenishment"
	"github.com/fekuna/omnipos-replenishment-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("workflow session not found")

// Factory builds a fresh workflow instance for a new session.
type Factory func() replenishment.UseCase

type entry struct {
	workflow replenishment.UseCase
	lastSeen time.Time
}

// Registry holds the in-memory workflow sessions, one per operator tab.
// Sessions carry no durable state; idle ones are evicted after the TTL.
type Registry struct {
	factory Factory
	ttl     time.Duration
	logger  logger.ZapLogger

	mu       sync.Mutex
	sessions map[string]*entry
}

func NewRegistry(factory Factory, ttl time.Duration, log logger.ZapLogger) *Registry {
	return &Registry{
		factory:  factory,
		ttl:      ttl,
		logger:   log,
		sessions: make(map[string]*entry),
	}
}

func (r *Registry) Create() (string, replenishment.UseCase) {
	id := uuid.New().String()
	workflow := r.factory()

	r.mu.Lock()
	r.sessions[id] = &entry{workflow: workflow, lastSeen: time.Now()}
	r.mu.Unlock()

	r.logger.Info("workflow session created", zap.String("session_id", id))
	return id, workflow
}

func (r *Registry) Get(id string) (replenishment.UseCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastSeen = time.Now()
	return e.workflow, nil
}

func (r *Registry) Delete(id string) {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		r.logger.Info("workflow session deleted", zap.String("session_id", id))
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// StartEviction sweeps idle sessions until the context is cancelled.
func (r *Registry) StartEviction(ctx context.Context, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if evicted := r.evictIdle(time.Now()); evicted > 0 {
				r.logger.Info("evicted idle workflow sessions", zap.Int("count", evicted))
			}
		}
	}
}

func (r *Registry) evictIdle(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, e := range r.sessions {
		if now.Sub(e.lastSeen) > r.ttl {
			delete(r.sessions, id)
			evicted++
		}
	}
	return evicted
}
