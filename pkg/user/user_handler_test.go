package user

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_SignUpAndSignIn(t *testing.T) {
	service, teardown := setup(t)
	defer teardown()
	handler := NewHandler(service)

	// when
	signUp := httptest.NewRecorder()
	handler.SignUp(signUp, httptest.NewRequest(http.MethodPost, "/api/signup",
		bytes.NewBufferString(`{"username": "carol", "email": "carol@example.com", "password": "pw", "fullName": "Carol Ann"}`)))
	signIn := httptest.NewRecorder()
	handler.SignIn(signIn, httptest.NewRequest(http.MethodPost, "/api/signin",
		bytes.NewBufferString(`{"username": "carol", "password": "pw"}`)))

	// then
	require.Equal(t, http.StatusCreated, signUp.Code)
	require.Equal(t, http.StatusOK, signIn.Code)
	var session SessionDTO
	require.NoError(t, json.NewDecoder(signIn.Body).Decode(&session))
	assert.NotEmpty(t, session.Jwt)
	assert.Equal(t, "Carol", session.User.FirstName)
}

func TestHandler_Errors(t *testing.T) {
	service, teardown := setup(t)
	defer teardown()
	handler := NewHandler(service)

	t.Run("should reject invalid sign up", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.SignUp(w, httptest.NewRequest(http.MethodPost, "/api/signup", bytes.NewBufferString(`{"username": "x"}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should reject wrong credentials", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.SignIn(w, httptest.NewRequest(http.MethodPost, "/api/signin", bytes.NewBufferString(`{"username": "nobody", "password": "pw"}`)))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("should require a session for the current user", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.CurrentUser(w, httptest.NewRequest(http.MethodGet, "/api/user/current", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
