package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

var ErrUserDataInvalid = errors.New("invalid user data")
var ErrInvalidCredentials = errors.New("invalid username or password")

type Service interface {
	SignUp(ctx context.Context, signUp SignUp) (User, error)
	SignIn(ctx context.Context, credentials Credentials) (Session, error)
	GetCurrentUser(ctx context.Context) (User, error)
	// Resolve checks a bearer credential against the budgeting API and returns its session.
	Resolve(ctx context.Context, token string) (Session, error)
}

type UserServiceImpl struct {
	repo Repo
}

func NewUserService(repo Repo) *UserServiceImpl {
	return &UserServiceImpl{repo: repo}
}

func (u *UserServiceImpl) SignUp(ctx context.Context, signUp SignUp) (User, error) {
	signUp.Username = strings.TrimSpace(signUp.Username)
	signUp.Email = strings.TrimSpace(signUp.Email)
	if signUp.Username == "" || signUp.Password == "" {
		return User{}, fmt.Errorf("%w: username and password are required", ErrUserDataInvalid)
	}
	if !strings.Contains(signUp.Email, "@") {
		return User{}, fmt.Errorf("%w: email %q is not valid", ErrUserDataInvalid, signUp.Email)
	}
	created, err := u.repo.CreateUser(ctx, signUp)
	if err != nil {
		return User{}, err
	}
	log.Debugf("user created: %d", created.Id)
	return created, nil
}

func (u *UserServiceImpl) SignIn(ctx context.Context, credentials Credentials) (Session, error) {
	if strings.TrimSpace(credentials.Username) == "" || credentials.Password == "" {
		return Session{}, ErrInvalidCredentials
	}
	return u.repo.Connect(ctx, credentials)
}

func (u *UserServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	session, err := CurrentSession(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return session.User, nil
}

func (u *UserServiceImpl) Resolve(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrInvalidCredentials
	}
	connected, err := u.repo.GetConnectedUser(WithSession(ctx, Session{Token: token}))
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, User: connected}, nil
}
