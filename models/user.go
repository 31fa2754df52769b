package models

import "time"

type UserStats struct {
	Followers        int     `bson:"followers" json:"followers"`
	Following        int     `bson:"following" json:"following"`
	Posts            int     `bson:"posts" json:"posts"`
	HoursVolunteered float64 `bson:"hoursVolunteered" json:"hoursVolunteered"`
	Projects         int     `bson:"projects" json:"projects"`
}

type Gamification struct {
	Level  int      `bson:"level" json:"level"`
	XP     int      `bson:"xp" json:"xp"`
	Badges []string `bson:"badges" json:"badges"`
}

type User struct {
	ID           string       `bson:"_id,omitempty" json:"id"`
	Name         string       `bson:"name" json:"name"`
	FirstName    string       `bson:"firstName" json:"firstName"`
	LastName     string       `bson:"lastName" json:"lastName"`
	Username     string       `bson:"username" json:"username"`
	Email        string       `bson:"email" json:"email"`
	PasswordHash string       `bson:"passwordHash,omitempty" json:"-"`
	GoogleID     string       `bson:"googleId,omitempty" json:"-"`
	Phone        string       `bson:"phone,omitempty" json:"phone,omitempty"`
	BirthDate    string       `bson:"birthDate,omitempty" json:"birthDate,omitempty"`
	City         string       `bson:"city" json:"city"`
	Location     string       `bson:"location" json:"location"`
	Headline     string       `bson:"headline" json:"headline"`
	Bio          string       `bson:"bio" json:"bio"`
	AvatarURL    string       `bson:"avatarUrl" json:"avatarUrl"`
	BannerURL    string       `bson:"bannerUrl" json:"bannerUrl"`
	AvatarPath   string       `bson:"avatarPath,omitempty" json:"-"`
	BannerPath   string       `bson:"bannerPath,omitempty" json:"-"`
	Interests    []string     `bson:"interests" json:"interests"`
	Skills       []string     `bson:"skills" json:"skills"`
	Stats        UserStats    `bson:"stats" json:"stats"`
	Gamification Gamification `bson:"gamification" json:"gamification"`
	IsActive     bool         `bson:"isActive" json:"isActive"`
	IsVerified   bool         `bson:"isVerified" json:"isVerified"`
	CreatedAt    time.Time    `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt    time.Time    `bson:"updatedAt,omitempty" json:"updatedAt"`
}

// ProfileFields lists the fields a user may change through the profile form.
var ProfileFields = []string{
	"name", "firstName", "lastName", "phone", "birthDate", "city", "location",
	"headline", "bio", "interests",
}
