package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationPayload is the frame written to a live stream or persisted
// for offline delivery.
type NotificationPayload struct {
	Topic   string `json:"topic,omitempty"`
	Message string `json:"message"`
	From    string `json:"from,omitempty"`
}

// Notify is an outbound notification addressed to one user.
type Notify struct {
	ReceiverID uuid.UUID           `json:"receiver_id"`
	Payload    NotificationPayload `json:"payload"`
}

// Notification is the persisted fallback row for an offline recipient.
type Notification struct {
	ID         uuid.UUID `db:"id" json:"id"`
	ReceiverID uuid.UUID `db:"receiver_id" json:"receiver_id"`
	Topic      string    `db:"topic" json:"topic,omitempty"`
	Message    string    `db:"message" json:"message"`
	FromUser   string    `db:"from_user" json:"from,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

func (n *Notification) ToNotify() *Notify {
	return &Notify{
		ReceiverID: n.ReceiverID,
		Payload: NotificationPayload{
			Topic:   n.Topic,
			Message: n.Message,
			From:    n.FromUser,
		},
	}
}
