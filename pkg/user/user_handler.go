package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tally-app/tally/internal/rest"
)

type UserDTO struct {
	Id        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName,omitempty"`
	FirstName string    `json:"firstName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SignUpDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
}

type SignInDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SessionDTO struct {
	Jwt  string  `json:"jwt"`
	User UserDTO `json:"user"`
}

type Handler struct {
	userService Service
}

func NewHandler(userService Service) *Handler {
	return &Handler{
		userService: userService,
	}
}

// SignUp godoc
// @Summary Register a new user
// @Tags User
// @Accept json
// @Produce json
// @Param user body SignUpDTO true "User"
// @Success 201 {object} UserDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/signup [post]
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	log.Debug("Signing up user")

	var signUp SignUpDTO
	if err := json.NewDecoder(r.Body).Decode(&signUp); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}

	created, err := h.userService.SignUp(r.Context(), SignUp(signUp))
	if err != nil {
		if errors.Is(err, ErrUserDataInvalid) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid user data", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, userToDTO(created))
}

// SignIn godoc
// @Summary Sign in and obtain a bearer token
// @Tags User
// @Accept json
// @Produce json
// @Param credentials body SignInDTO true "Credentials"
// @Success 200 {object} SessionDTO
// @Failure 401 {object} rest.ErrorResponse "Invalid credentials"
// @Router /api/signin [post]
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var credentials SignInDTO
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}

	session, err := h.userService.SignIn(r.Context(), Credentials(credentials))
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			rest.WriteError(w, http.StatusUnauthorized, "Invalid username or password", "")
			return
		}
		log.Errorf("failed to sign in %s: %v", credentials.Username, err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	rest.WriteJSON(w, http.StatusOK, SessionDTO{Jwt: session.Token, User: userToDTO(session.User)})
}

// CurrentUser godoc
// @Summary Get current user
// @Tags User
// @Produce json
// @Success 200 {object} UserDTO
// @Failure 401 {string} string "No session"
// @Router /api/user/current [get]
// @Security Bearer
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	currentUser, err := h.userService.GetCurrentUser(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	rest.WriteJSON(w, http.StatusOK, userToDTO(currentUser))
}

func userToDTO(u User) UserDTO {
	return UserDTO{
		Id:        u.Id,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		FirstName: u.FirstName(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
