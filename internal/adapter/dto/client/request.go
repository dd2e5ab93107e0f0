package client

// CreateClientRequest is the payload for adding a client to the book
type CreateClientRequest struct {
	Name          string `json:"name" validate:"required"`
	Surname       string `json:"surname"`
	CompanyName   string `json:"company_name"`
	Industry      string `json:"industry"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone"`
}

// UpdateClientRequest edits a client record; nil fields are untouched
type UpdateClientRequest struct {
	Name          *string `json:"name"`
	Surname       *string `json:"surname"`
	CompanyName   *string `json:"company_name"`
	Industry      *string `json:"industry"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         *string `json:"phone"`
}
