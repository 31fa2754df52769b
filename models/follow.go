package models

import "time"

// Follow is keyed by "{followerId}_{followingId}".
type Follow struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	FollowerID  string    `bson:"followerId" json:"followerId"`
	FollowingID string    `bson:"followingId" json:"followingId"`
	CreatedAt   time.Time `bson:"createdAt,omitempty" json:"createdAt"`
}

func FollowID(followerID, followingID string) string {
	return followerID + "_" + followingID
}
