package user

import (
	"context"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tally-app/tally/internal/api"
)

type Repo interface {
	CreateUser(ctx context.Context, signUp SignUp) (User, error)
	Connect(ctx context.Context, credentials Credentials) (Session, error)
	GetConnectedUser(ctx context.Context) (User, error)
}

type userDTO struct {
	Id        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type signUpDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
}

type credentialsDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type connectDTO struct {
	Jwt  string  `json:"jwt"`
	User userDTO `json:"user"`
}

// UserRepoImpl reads and creates users through the budgeting API.
type UserRepoImpl struct {
	client *api.Client
}

func NewUserRepo(client *api.Client) *UserRepoImpl {
	return &UserRepoImpl{client: client}
}

func (u *UserRepoImpl) CreateUser(ctx context.Context, signUp SignUp) (User, error) {
	var created userDTO
	err := u.client.Do(ctx, api.Request{
		Method:    http.MethodPost,
		Path:      "/signup",
		Body:      signUpDTO(signUp),
		Anonymous: true,
	}, &created)
	if err != nil {
		log.Errorf("failed to create user %s: %v", signUp.Username, err)
		return User{}, err
	}
	return dtoToUser(created), nil
}

func (u *UserRepoImpl) Connect(ctx context.Context, credentials Credentials) (Session, error) {
	var connected connectDTO
	err := u.client.Do(ctx, api.Request{
		Method:    http.MethodPost,
		Path:      "/signin",
		Body:      credentialsDTO(credentials),
		Anonymous: true,
	}, &connected)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) || errors.Is(err, api.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	return Session{Token: connected.Jwt, User: dtoToUser(connected.User)}, nil
}

func (u *UserRepoImpl) GetConnectedUser(ctx context.Context) (User, error) {
	var connected userDTO
	err := u.client.Do(ctx, api.Request{Method: http.MethodGet, Path: "/user"}, &connected)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	return dtoToUser(connected), nil
}

func dtoToUser(dto userDTO) User {
	return User{
		Id:        dto.Id,
		Username:  dto.Username,
		Email:     dto.Email,
		FullName:  dto.FullName,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	}
}
