package app

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/tally-app/tally/internal/rest"
	"github.com/tally-app/tally/pkg/user"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies) {
	r.Use(sessionMiddleware(deps.Sessions))
}

// sessionMiddleware resolves the bearer credential of the request into a
// session. Requests without one pass through anonymously.
func sessionMiddleware(sessions user.Resolver) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			token, ok := bearerToken(req)
			if !ok {
				next.ServeHTTP(w, req)
				return
			}

			session, err := sessions.Resolve(req.Context(), token)
			if err != nil {
				if errors.Is(err, user.ErrInvalidCredentials) {
					log.Debug("rejected bearer token")
					rest.WriteError(w, http.StatusUnauthorized, "Invalid or expired token", "")
					return
				}
				log.Errorf("failed to resolve session: %v", err)
				http.Error(w, err.Error(), http.StatusBadGateway)
				return
			}
			log.Tracef("session of user %d", session.User.Id)
			next.ServeHTTP(w, req.WithContext(user.WithSession(req.Context(), session)))
		})
	}
}

func bearerToken(req *http.Request) (string, bool) {
	header := req.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
