package meeting

// CreateMeetingRequest is the multipart form for a new meeting. The
// audio file part is read separately from the form.
type CreateMeetingRequest struct {
	ClientID     string `form:"client_id" validate:"required,uuid"`
	Title        string `form:"title" validate:"required"`
	MeetingDate  string `form:"meeting_date"`
	Participants string `form:"participants"`
}

// UpdateMeetingRequest edits meeting metadata; nil fields are untouched
type UpdateMeetingRequest struct {
	Title        *string `json:"title"`
	MeetingDate  *string `json:"meeting_date"`
	Participants *string `json:"participants"`
}
