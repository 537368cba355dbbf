package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationPriority string

const (
	NotificationPriorityLow    NotificationPriority = "low"
	NotificationPriorityNormal NotificationPriority = "normal"
	NotificationPriorityHigh   NotificationPriority = "high"
)

type Notification struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Type      string
	Title     string
	Message   string
	Priority  NotificationPriority
	ActionRef *string
	CreatedAt time.Time
	ReadAt    *time.Time
}

// CreateNotificationInput fans one notification out to several recipients.
type CreateNotificationInput struct {
	UserIds   []uuid.UUID
	Type      string
	Title     string
	Message   string
	Priority  NotificationPriority
	ActionRef *string
}
