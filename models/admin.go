package models

import (
	"errors"

	goval "github.com/go-passwd/validator"
	"golang.org/x/crypto/bcrypt"
)

// Admin is a dashboard operator. HashedPassword is empty for admins
// created through Google sign-in.
type Admin struct {
	Model
	Email          string `json:"email" gorm:"unique;not null" binding:"required,email"`
	Password       string `json:"password,omitempty" gorm:"-"`
	HashedPassword string `json:"-"`
	Name           string `json:"name"`
	Picture        string `json:"picture"`
	Role           string `json:"role" gorm:"default:admin"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is the auth payload returned by register and login.
type TokenResponse struct {
	Token string `json:"token"`
}

// GoogleAuthResponse mirrors the Google userinfo endpoint payload.
type GoogleAuthResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
	Locale        string `json:"locale"`
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(
		goval.MinLength(6, errors.New("password cant be less than 6 characters")),
		goval.MaxLength(64, errors.New("password cant be more than 64 characters")))
	return passwordValidator.Validate(password)
}

// VerifyPassword checks the given password against the stored hash.
func (a *Admin) VerifyPassword(password string) error {
	if a.HashedPassword == "" {
		return errors.New("admin has no password set")
	}
	return bcrypt.CompareHashAndPassword([]byte(a.HashedPassword), []byte(password))
}
