package dbmodels

import (
	"time"

	"github.com/google/uuid"

	"github.com/opsdrill/exercise-backend/models"
	"github.com/opsdrill/exercise-backend/utils"
)

type DBNotification struct {
	Id        uuid.UUID  `db:"id"`
	UserId    uuid.UUID  `db:"user_id"`
	Type      string     `db:"type"`
	Title     string     `db:"title"`
	Message   string     `db:"message"`
	Priority  string     `db:"priority"`
	ActionRef *string    `db:"action_ref"`
	CreatedAt time.Time  `db:"created_at"`
	ReadAt    *time.Time `db:"read_at"`
}

const TABLE_NOTIFICATIONS = "notifications"

var SelectNotificationColumn = utils.ColumnList[DBNotification]()

func AdaptNotification(db DBNotification) (models.Notification, error) {
	return models.Notification{
		Id:        db.Id,
		UserId:    db.UserId,
		Type:      db.Type,
		Title:     db.Title,
		Message:   db.Message,
		Priority:  models.NotificationPriority(db.Priority),
		ActionRef: db.ActionRef,
		CreatedAt: db.CreatedAt,
		ReadAt:    db.ReadAt,
	}, nil
}
