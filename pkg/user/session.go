package user

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

type contextKey string

const SessionKey contextKey = "session"

var ErrNoSession = errors.New("no session in context")

func WithSession(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}

func CurrentSession(ctx context.Context) (Session, error) {
	session, ok := ctx.Value(SessionKey).(Session)
	if !ok {
		log.Trace("session not found in context")
		return Session{}, ErrNoSession
	}
	return session, nil
}

// CurrentId retrieves the current user's ID from the context. Returns ErrNoSession if there is no session.
func CurrentId(ctx context.Context) (int, error) {
	session, err := CurrentSession(ctx)
	if err != nil {
		return 0, err
	}
	return session.User.Id, nil
}

// Token returns the bearer credential of the session in ctx. It satisfies api.TokenProvider.
func Token(ctx context.Context) (string, error) {
	session, err := CurrentSession(ctx)
	if err != nil {
		return "", err
	}
	return session.Token, nil
}
