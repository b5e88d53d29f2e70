package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	NotificationStatusDraft = "draft"
	NotificationStatusSent  = "sent"
)

type PushSubscriber struct {
	bun.BaseModel `bun:"table:push_subscribers"`

	ID        string    `bun:"id,pk" json:"id"`
	Endpoint  string    `bun:"endpoint,unique,notnull" json:"endpoint"`
	P256dh    string    `bun:"p256dh" json:"p256dh"`
	Auth      string    `bun:"auth" json:"auth"`
	IsActive  bool      `bun:"is_active" json:"isActive"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"createdAt"`
}

// PushNotification is an admin-composed message. Delivery is handled by the
// external push sender consuming the Kafka dispatch topic.
type PushNotification struct {
	bun.BaseModel `bun:"table:push_notifications"`

	ID        string     `bun:"id,pk" json:"id"`
	Title     string     `bun:"title,notnull" json:"title"`
	Body      string     `bun:"body" json:"body"`
	ImageURL  string     `bun:"image_url" json:"imageUrl"`
	TargetURL string     `bun:"target_url" json:"targetUrl"`
	Status    string     `bun:"status,notnull" json:"status"`
	SentAt    *time.Time `bun:"sent_at,nullzero" json:"sentAt,omitempty"`
	CreatedAt time.Time  `bun:"created_at,notnull" json:"createdAt"`
}

type SubscribeRequest struct {
	Endpoint string `json:"endpoint"`
	P256dh   string `json:"p256dh"`
	Auth     string `json:"auth"`
}

type NotificationComposeRequest struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	ImageURL  string `json:"imageUrl"`
	TargetURL string `json:"targetUrl"`
}
