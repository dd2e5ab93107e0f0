package entities

import (
	"time"

	"github.com/google/uuid"
)

// User represents an advisor account
type User struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string     `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string     `json:"name" gorm:"type:varchar(255);not null"`
	CompanyName  string     `json:"company_name,omitempty" gorm:"type:varchar(255)"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;type:text;not null"`
	IsActive     bool       `json:"is_active" gorm:"default:true;not null"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" gorm:"type:timestamp"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user with a pre-hashed password
func NewUser(email, name, passwordHash string) *User {
	return &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}
