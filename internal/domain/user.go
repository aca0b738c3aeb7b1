package domain

import "time"

type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"full_name" db:"full_name"`
	Role         Role      `json:"role" db:"role"`
	Department   *string   `json:"department,omitempty" db:"department"`
	Position     *string   `json:"position,omitempty" db:"position"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func (u *User) Actor() Actor {
	role, _ := ParseRole(string(u.Role))
	a := Actor{ID: u.ID, Role: role, Name: u.FullName}
	if u.Department != nil {
		a.Department = *u.Department
	}
	return a
}

type CreateUserInput struct {
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=8"`
	FullName   string  `json:"full_name" validate:"required,min=2"`
	Role       Role    `json:"role" validate:"required,oneof=staff hod hr gm admin"`
	Department *string `json:"department,omitempty" validate:"omitempty,max=150"`
	Position   *string `json:"position,omitempty" validate:"omitempty,max=150"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	User        *User  `json:"user"`
}
