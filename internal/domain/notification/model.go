package notification

import (
	"context"
	"time"
)

// Notification is an in-app message row written by the store sink. Exactly
// one of UserID and Role is set.
type Notification struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	UserID       string    `json:"user_id,omitempty" gorm:"size:190;index"`
	Role         string    `json:"role,omitempty" gorm:"size:32;index"`
	Kind         string    `json:"kind" gorm:"size:32;not null"`
	Title        string    `json:"title" gorm:"size:255;not null"`
	Message      string    `json:"message" gorm:"type:text"`
	SubmissionID string    `json:"submission_id" gorm:"size:36;index"`
	Read         bool      `json:"read" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	// ListFor returns rows addressed to userID or broadcast to role, newest first.
	ListFor(ctx context.Context, userID, role string, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
}
