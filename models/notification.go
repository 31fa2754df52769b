package models

import "time"

const (
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationFollow  = "follow"
	NotificationMessage = "message"
)

type Actor struct {
	ID        string `bson:"id" json:"id"`
	Name      string `bson:"name" json:"name"`
	AvatarURL string `bson:"avatarUrl" json:"avatarUrl"`
}

type Notification struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	UserID        string    `bson:"userId" json:"userId"`
	Type          string    `bson:"type" json:"type"`
	Actor         Actor     `bson:"actor" json:"actor"`
	Action        string    `bson:"action" json:"action"`
	TargetID      string    `bson:"targetId" json:"targetId"`
	TargetPreview string    `bson:"targetPreview" json:"targetPreview"`
	Read          bool      `bson:"read" json:"read"`
	CreatedAt     time.Time `bson:"createdAt,omitempty" json:"createdAt"`
}

// PushSubscription is keyed by user id.
type PushSubscription struct {
	ID       string   `bson:"_id,omitempty" json:"id"`
	UserID   string   `bson:"userId" json:"userId"`
	Endpoint string   `bson:"endpoint" json:"endpoint"`
	Keys     PushKeys `bson:"keys" json:"keys"`
}

type PushKeys struct {
	P256dh string `bson:"p256dh" json:"p256dh"`
	Auth   string `bson:"auth" json:"auth"`
}
