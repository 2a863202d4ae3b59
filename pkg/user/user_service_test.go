package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRepoStub = NewStubUserRepository()

func setup(t *testing.T) (Service, func()) {
	service := NewUserService(userRepoStub)
	return service, func() {
		t.Log("Teardown after test")
		userRepoStub.Cleanup()
	}
}

func TestUserServiceImpl_SignUp(t *testing.T) {
	t.Run("should create a user", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// when
		created, err := service.SignUp(context.Background(), SignUp{Username: " alice ", Email: "alice@example.com", Password: "secret", FullName: "Alice Smith"})

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, created.Id)
		assert.Equal(t, "alice", created.Username)
		assert.Equal(t, "Alice", created.FirstName())
	})

	t.Run("should reject missing password", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		_, err := service.SignUp(context.Background(), SignUp{Username: "alice", Email: "alice@example.com"})

		assert.ErrorIs(t, err, ErrUserDataInvalid)
	})

	t.Run("should reject invalid email", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		_, err := service.SignUp(context.Background(), SignUp{Username: "alice", Email: "alice", Password: "secret"})

		assert.ErrorIs(t, err, ErrUserDataInvalid)
	})
}

func TestUserServiceImpl_SignInAndResolve(t *testing.T) {
	service, teardown := setup(t)
	defer teardown()

	// given
	_, err := service.SignUp(context.Background(), SignUp{Username: "bob", Email: "bob@example.com", Password: "pw"})
	require.NoError(t, err)

	// when
	session, err := service.SignIn(context.Background(), Credentials{Username: "bob", Password: "pw"})

	// then
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "bob", session.User.Username)

	resolved, err := service.Resolve(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, session, resolved)

	_, err = service.SignIn(context.Background(), Credentials{Username: "bob", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Resolve(context.Background(), "forged")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserServiceImpl_GetCurrentUser(t *testing.T) {
	service, teardown := setup(t)
	defer teardown()

	t.Run("should return the session user", func(t *testing.T) {
		ctx := WithSession(context.Background(), Session{Token: "t", User: User{Id: 5, Username: "carol"}})

		current, err := service.GetCurrentUser(ctx)

		require.NoError(t, err)
		assert.Equal(t, 5, current.Id)
	})

	t.Run("should return error when context has no session", func(t *testing.T) {
		_, err := service.GetCurrentUser(context.Background())

		assert.ErrorIs(t, err, ErrNoSession)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}

func TestSessionHelpers(t *testing.T) {
	_, err := CurrentId(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)

	ctx := WithSession(context.Background(), Session{Token: "jwt", User: User{Id: 9}})
	id, err := CurrentId(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 9, id)
	token, err := Token(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "jwt", token)
}
