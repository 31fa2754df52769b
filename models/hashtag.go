package models

import "time"

// Hashtag records are keyed by slug (the tag without '#', lowercased).
type Hashtag struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Tag          string    `bson:"tag" json:"tag"`
	PostsCount   int       `bson:"postsCount" json:"postsCount"`
	WeeklyPosts  int       `bson:"weeklyPosts" json:"weeklyPosts"`
	MonthlyPosts int       `bson:"monthlyPosts" json:"monthlyPosts"`
	LastUsed     time.Time `bson:"lastUsed,omitempty" json:"lastUsed"`
	Trending     bool      `bson:"trending" json:"trending"`
	Category     string    `bson:"category" json:"category"`
}

type BadgeRequirement struct {
	Type  string `bson:"type" json:"type"`
	Value int    `bson:"value" json:"value"`
}

type Badge struct {
	ID          string           `bson:"_id,omitempty" json:"id"`
	Name        string           `bson:"name" json:"name"`
	Description string           `bson:"description" json:"description"`
	ImageURL    string           `bson:"imageUrl" json:"imageUrl"`
	Category    string           `bson:"category" json:"category"`
	Requirement BadgeRequirement `bson:"requirement" json:"requirement"`
	Rarity      string           `bson:"rarity" json:"rarity"`
	XPReward    int              `bson:"xpReward" json:"xpReward"`
}
