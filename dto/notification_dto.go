package dto

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/opsdrill/exercise-backend/models"
)

type APINotification struct {
	Id        string      `json:"id"`
	Type      string      `json:"type"`
	Title     string      `json:"title"`
	Message   string      `json:"message"`
	Priority  string      `json:"priority"`
	ActionRef null.String `json:"action_ref"`
	CreatedAt time.Time   `json:"created_at"`
	ReadAt    null.Time   `json:"read_at"`
}

func AdaptNotificationDto(notification models.Notification) APINotification {
	return APINotification{
		Id:        notification.Id.String(),
		Type:      notification.Type,
		Title:     notification.Title,
		Message:   notification.Message,
		Priority:  string(notification.Priority),
		ActionRef: null.StringFromPtr(notification.ActionRef),
		CreatedAt: notification.CreatedAt,
		ReadAt:    null.TimeFromPtr(notification.ReadAt),
	}
}
