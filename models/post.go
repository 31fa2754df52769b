package models

import "time"

type AuthorInfo struct {
	Name       string `bson:"name" json:"name"`
	Title      string `bson:"title,omitempty" json:"title,omitempty"`
	AvatarURL  string `bson:"avatarUrl" json:"avatarUrl"`
	IsVerified bool   `bson:"isVerified,omitempty" json:"isVerified,omitempty"`
}

type Engagement struct {
	Likes    int `bson:"likes" json:"likes"`
	Comments int `bson:"comments" json:"comments"`
	Shares   int `bson:"shares" json:"shares"`
	Views    int `bson:"views" json:"views"`
}

type Post struct {
	ID               string     `bson:"_id,omitempty" json:"id"`
	AuthorID         string     `bson:"authorId" json:"authorId"`
	AuthorInfo       AuthorInfo `bson:"authorInfo" json:"authorInfo"`
	Title            string     `bson:"title" json:"title"`
	Content          string     `bson:"content" json:"content"`
	Tags             []string   `bson:"tags" json:"tags"`
	Hashtags         []string   `bson:"hashtags" json:"hashtags"`
	Media            []string   `bson:"media" json:"media"`
	Engagement       Engagement `bson:"engagement" json:"engagement"`
	IsActive         bool       `bson:"isActive" json:"isActive"`
	IsPinned         bool       `bson:"isPinned" json:"isPinned"`
	TitleLowercase   string     `bson:"titleLowercase" json:"-"`
	ContentLowercase string     `bson:"contentLowercase" json:"-"`
	CreatedAt        time.Time  `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt        time.Time  `bson:"updatedAt,omitempty" json:"updatedAt"`
}

// Comment lives in posts/{postId}/comments.
type Comment struct {
	ID              string     `bson:"_id,omitempty" json:"id"`
	PostID          string     `bson:"postId" json:"postId"`
	AuthorID        string     `bson:"authorId" json:"authorId"`
	AuthorInfo      AuthorInfo `bson:"authorInfo" json:"authorInfo"`
	Text            string     `bson:"text" json:"text"`
	Likes           int        `bson:"likes" json:"likes"`
	ParentCommentID *string    `bson:"parentCommentId" json:"parentCommentId"`
	CreatedAt       time.Time  `bson:"createdAt,omitempty" json:"createdAt"`
}

// Like lives in posts/{postId}/likes/{userId}.
type Like struct {
	UserID  string    `bson:"userId" json:"userId"`
	LikedAt time.Time `bson:"likedAt" json:"likedAt"`
}
