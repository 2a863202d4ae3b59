package user

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	log "github.com/sirupsen/logrus"
)

type Resolver interface {
	Resolve(ctx context.Context, token string) (Session, error)
}

// CachedResolver remembers resolved sessions for ttl, so a client sending the
// same bearer token on every request is checked against the budgeting API once
// per ttl. Rejected tokens are never cached. A non-positive ttl disables caching.
type CachedResolver struct {
	resolver Resolver
	sessions *expirable.LRU[string, Session]
}

func NewCachedResolver(resolver Resolver, size int, ttl time.Duration) *CachedResolver {
	c := &CachedResolver{resolver: resolver}
	if ttl > 0 && size > 0 {
		c.sessions = expirable.NewLRU[string, Session](size, nil, ttl)
	}
	return c
}

func (c *CachedResolver) Resolve(ctx context.Context, token string) (Session, error) {
	if c.sessions == nil {
		return c.resolver.Resolve(ctx, token)
	}
	if session, ok := c.sessions.Get(token); ok {
		log.Tracef("session cache hit for user %d", session.User.Id)
		return session, nil
	}
	session, err := c.resolver.Resolve(ctx, token)
	if err != nil {
		return Session{}, err
	}
	c.sessions.Add(token, session)
	return session, nil
}
