// Package seed loads the demo fixtures into a store and pushes static media
// into blob storage. Both are meant to be run once by hand.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Fixture file names inside the fixtures directory.
const (
	HomeFile         = "Home.json"
	ApplicationsFile = "Applications.json"
	MeFile           = "Me.json"
)

type FixtureAuthor struct {
	UserID     string `json:"userId"`
	Name       string `json:"name"`
	Title      string `json:"title"`
	AvatarURL  string `json:"avatarUrl"`
	IsVerified bool   `json:"isVerified"`
}

type FixtureComment struct {
	ID     int    `json:"id"`
	Author string `json:"author"`
	Text   string `json:"text"`
}

type FixturePost struct {
	Author      FixtureAuthor    `json:"author"`
	Content     string           `json:"content"`
	Likes       int              `json:"likes"`
	Comments    int              `json:"comments"`
	Shares      int              `json:"shares"`
	Views       int              `json:"views"`
	CommentList []FixtureComment `json:"commentList"`
}

type TrendingTopic struct {
	Tag   string `json:"tag"`
	Slug  string `json:"slug"`
	Posts int    `json:"posts"`
}

type Home struct {
	MockPosts      []FixturePost   `json:"mockPosts"`
	TrendingTopics []TrendingTopic `json:"trendingTopics"`
}

type FixtureProgram struct {
	Title           string   `json:"title"`
	Category        string   `json:"category"`
	Description     string   `json:"description"`
	FullDescription string   `json:"fullDescription"`
	Location        string   `json:"location"`
	Duration        string   `json:"duration"`
	Requirements    []string `json:"requirements"`
	Image           string   `json:"image"`
	Volunteers      int      `json:"volunteers"`
}

type Applications struct {
	Programs []FixtureProgram `json:"programs"`
}

type FixtureStats struct {
	Followers        int     `json:"followers"`
	Following        int     `json:"following"`
	Posts            int     `json:"posts"`
	HoursVolunteered float64 `json:"hoursVolunteered"`
	Projects         int     `json:"projects"`
}

type FixtureBadge struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type DefaultUser struct {
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Headline  string         `json:"headline"`
	Bio       string         `json:"bio"`
	Location  string         `json:"location"`
	Phone     string         `json:"phone"`
	AvatarURL string         `json:"avatarUrl"`
	Level     int            `json:"level"`
	XP        int            `json:"xp"`
	Stats     FixtureStats   `json:"stats"`
	Badges    []FixtureBadge `json:"badges"`
	Skills    []string       `json:"skills"`
}

type Me struct {
	DefaultUserData DefaultUser `json:"defaultUserData"`
}

// Fixtures is the content of the three fixture files.
type Fixtures struct {
	Home         Home
	Applications Applications
	Me           Me
}

// LoadFixtures reads Home.json, Applications.json and Me.json from dir.
func LoadFixtures(dir string) (*Fixtures, error) {
	var f Fixtures
	files := []struct {
		name string
		out  interface{}
	}{
		{HomeFile, &f.Home},
		{ApplicationsFile, &f.Applications},
		{MeFile, &f.Me},
	}
	for _, file := range files {
		raw, err := os.ReadFile(filepath.Join(dir, file.name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file.name, err)
		}
		if err := json.Unmarshal(raw, file.out); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file.name, err)
		}
	}
	return &f, nil
}
