package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tally-app/tally/internal/api"
)

func setupUpstreamRepo(t *testing.T) *UserRepoImpl {
	router := mux.NewRouter()
	router.HandleFunc("/signin", func(w http.ResponseWriter, r *http.Request) {
		var credentials credentialsDTO
		_ = json.NewDecoder(r.Body).Decode(&credentials)
		if credentials.Password != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(connectDTO{Jwt: "jwt-1", User: userDTO{Id: 1, Username: credentials.Username}})
	}).Methods("POST")
	router.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer jwt-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(userDTO{Id: 1, Username: "dave", FullName: "Dave Jones"})
	}).Methods("GET")
	router.HandleFunc("/signup", func(w http.ResponseWriter, r *http.Request) {
		var signUp signUpDTO
		_ = json.NewDecoder(r.Body).Decode(&signUp)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(userDTO{Id: 2, Username: signUp.Username, Email: signUp.Email})
	}).Methods("POST")

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return NewUserRepo(api.NewClient(server.URL, 5*time.Second, Token))
}

func TestUserRepoImpl(t *testing.T) {
	repo := setupUpstreamRepo(t)
	ctx := context.Background()

	t.Run("should connect and read connected user", func(t *testing.T) {
		// when
		session, err := repo.Connect(ctx, Credentials{Username: "dave", Password: "pw"})
		require.NoError(t, err)
		connected, err := repo.GetConnectedUser(WithSession(ctx, session))

		// then
		require.NoError(t, err)
		assert.Equal(t, "jwt-1", session.Token)
		assert.Equal(t, "Dave Jones", connected.FullName)
	})

	t.Run("should map rejected credentials", func(t *testing.T) {
		_, err := repo.Connect(ctx, Credentials{Username: "dave", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = repo.GetConnectedUser(WithSession(ctx, Session{Token: "other"}))
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("should create user", func(t *testing.T) {
		created, err := repo.CreateUser(ctx, SignUp{Username: "erin", Email: "erin@example.com", Password: "pw"})

		require.NoError(t, err)
		assert.Equal(t, 2, created.Id)
		assert.Equal(t, "erin@example.com", created.Email)
	})
}
