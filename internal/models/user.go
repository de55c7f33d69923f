package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Default operator account seeded on first boot
const (
	DefaultAdminEmail = "admin@fieldops.internal"
	DefaultAdminName  = "Administrator"
)

// User represents an operator who reviews and applies matches
type User struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
	Name      string         `json:"name" gorm:"type:varchar(255);not null" validate:"required,min=2,max=100"`
	Email     string         `json:"email" gorm:"type:varchar(255);uniqueIndex;not null" validate:"required,email"`
	Password  string         `json:"-" gorm:"type:varchar(255);not null" validate:"required,min=6"` // "-" excludes from JSON serialization
	IsAdmin   bool           `json:"is_admin" gorm:"default:false;index"`
}

// TableName overrides the table name used by User to `users`
func (User) TableName() string {
	return "users"
}

// HashPassword hashes the user's password using bcrypt
func (u *User) HashPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies the password against the hashed password
func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}

// CreateDefaultAdmin creates the seed administrator account
func CreateDefaultAdmin() *User {
	return &User{
		Name:     DefaultAdminName,
		Email:    DefaultAdminEmail,
		Password: "change-me-on-first-login", // This will be hashed
		IsAdmin:  true,
	}
}
