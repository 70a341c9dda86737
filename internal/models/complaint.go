package models

import "time"

const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusResolved   = "resolved"
)

const TypePublicSafety = "Public Safety"

// ComplaintTypes is the fixed category enumeration, in dropdown order.
var ComplaintTypes = []string{
	"Road Issue",
	"Water Supply",
	"Electricity",
	"Garbage",
	TypePublicSafety,
	"Noise Complaint",
	"Property Dispute",
	"Other",
}

func IsValidComplaintType(t string) bool {
	for _, ct := range ComplaintTypes {
		if ct == t {
			return true
		}
	}
	return false
}

func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

type Attachment struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	ComplaintID string    `json:"-"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"-"`
}

type Complaint struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	UserName    string       `json:"user_name"`
	Type        string       `json:"type"`
	Location    string       `json:"location"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	Attachments []Attachment `json:"attachments"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	IsUrgent    bool         `json:"is_urgent"`
}

type CreateComplaintRequest struct {
	Type          string   `json:"type"`
	Location      string   `json:"location"`
	Description   string   `json:"description"`
	AttachmentIDs []string `json:"attachment_ids"`
}

// StatusEvent is pushed to the complaint owner over the websocket
// when an administrator changes the status.
type StatusEvent struct {
	ComplaintID string    `json:"complaint_id"`
	UserID      string    `json:"-"`
	Status      string    `json:"status"`
	UpdatedAt   time.Time `json:"updated_at"`
}
