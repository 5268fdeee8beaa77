package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:64;unique;not null;index" json:"username" validate:"required,min=3,max=64"`
	Email        string    `gorm:"size:120;unique;not null;index" json:"email" validate:"required,email"`
	PasswordHash string    `gorm:"size:128" json:"-"`
	FirstName    string    `gorm:"size:64" json:"firstName"`
	IsActive     bool      `gorm:"default:true" json:"isActive"`
	IsAdmin      bool      `gorm:"default:false" json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FullName returns the display name for the user
func (u *User) FullName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}

// LoginInput - используется для валидации логина
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterInput - используется для валидации регистрации
type RegisterInput struct {
	Username        string `json:"username" validate:"required,min=3,max=64"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6,max=100"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	FirstName       string `json:"firstName" validate:"omitempty,max=64"`
}
