package models

import "time"

type Conversation struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	Participants  []string  `bson:"participants" json:"participants"`
	LastMessage   string    `bson:"lastMessage" json:"lastMessage"`
	LastMessageAt time.Time `bson:"lastMessageAt,omitempty" json:"lastMessageAt"`
	CreatedAt     time.Time `bson:"createdAt,omitempty" json:"createdAt"`
}

// Message lives in conversations/{conversationId}/messages.
type Message struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	SenderID  string    `bson:"senderId" json:"senderId"`
	Content   string    `bson:"content" json:"content"`
	Type      string    `bson:"type" json:"type"` // text, image
	ReadBy    []string  `bson:"readBy" json:"readBy"`
	CreatedAt time.Time `bson:"createdAt,omitempty" json:"createdAt"`
}
