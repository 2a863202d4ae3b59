package user

import (
	"context"
	"strconv"
)

type StubUserRepository struct {
	nextId    int
	users     map[string]User
	passwords map[string]string
	tokens    map[string]string // token -> username
}

func NewStubUserRepository() *StubUserRepository {
	repo := &StubUserRepository{}
	repo.Cleanup()
	return repo
}

func (s *StubUserRepository) CreateUser(ctx context.Context, signUp SignUp) (User, error) {
	if _, exists := s.users[signUp.Username]; exists {
		return User{}, ErrUserDataInvalid
	}
	s.nextId++
	created := User{Id: s.nextId, Username: signUp.Username, Email: signUp.Email, FullName: signUp.FullName}
	s.users[signUp.Username] = created
	s.passwords[signUp.Username] = signUp.Password
	return created, nil
}

func (s *StubUserRepository) Connect(ctx context.Context, credentials Credentials) (Session, error) {
	found, ok := s.users[credentials.Username]
	if !ok || s.passwords[credentials.Username] != credentials.Password {
		return Session{}, ErrInvalidCredentials
	}
	token := "token-" + strconv.Itoa(found.Id)
	s.tokens[token] = found.Username
	return Session{Token: token, User: found}, nil
}

func (s *StubUserRepository) GetConnectedUser(ctx context.Context) (User, error) {
	token, err := Token(ctx)
	if err != nil {
		return User{}, err
	}
	username, ok := s.tokens[token]
	if !ok {
		return User{}, ErrInvalidCredentials
	}
	return s.users[username], nil
}

func (s *StubUserRepository) Cleanup() {
	s.nextId = 0
	s.users = map[string]User{}
	s.passwords = map[string]string{}
	s.tokens = map[string]string{}
}
