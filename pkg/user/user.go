package user

import "time"

type User struct {
	Id        int
	Username  string
	Email     string
	FullName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FirstName returns the first word of the full name, or "" when there is none.
func (u User) FirstName() string {
	for i, r := range u.FullName {
		if r == ' ' {
			return u.FullName[:i]
		}
	}
	return u.FullName
}

type Credentials struct {
	Username string
	Password string
}

type SignUp struct {
	Username string
	Email    string
	Password string
	FullName string
}

// Session is an authenticated caller: the bearer credential issued by the
// budgeting API and the user it belongs to.
type Session struct {
	Token string
	User  User
}
