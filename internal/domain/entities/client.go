package entities

import (
	"time"

	"github.com/google/uuid"
)

// Client is an advisee entity. The email generator reads its display name
// and company when the request does not carry them.
type Client struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name          string    `json:"name" gorm:"type:varchar(255);not null"`
	Surname       string    `json:"surname,omitempty" gorm:"type:varchar(255)"`
	CompanyName   string    `json:"company_name,omitempty" gorm:"type:varchar(255)"`
	Industry      string    `json:"industry,omitempty" gorm:"type:varchar(255)"`
	ContactPerson string    `json:"contact_person,omitempty" gorm:"type:varchar(255)"`
	Email         string    `json:"email,omitempty" gorm:"type:varchar(255)"`
	Phone         string    `json:"phone,omitempty" gorm:"type:varchar(50)"`
	CreatedBy     uuid.UUID `json:"created_by" gorm:"type:uuid"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// DisplayName returns the client's full name for prompt building.
func (c *Client) DisplayName() string {
	if c.Surname != "" {
		return c.Name + " " + c.Surname
	}
	return c.Name
}

// Company returns the company used in prompts, falling back to the name.
func (c *Client) Company() string {
	if c.CompanyName != "" {
		return c.CompanyName
	}
	return c.Name
}

// NewClient creates a new client
func NewClient(name string, createdBy uuid.UUID) *Client {
	return &Client{
		ID:        uuid.New(),
		Name:      name,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}
