package seed

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"kovan/models"
	"kovan/services"
	"kovan/store"
	"kovan/validation"
)

// TestUserID is the id of the demo user every seeded program is coordinated by.
const TestUserID = "test-user-001"

// DefaultBadges are the badge-1..badge-4 records referenced by user profiles.
var DefaultBadges = []models.Badge{
	{
		ID:          "badge-1",
		Name:        "İlk Adım",
		Description: "Platformda ilk kez kayıt ol",
		ImageURL:    "/images/badges/beginner.png",
		Category:    "milestone",
		Requirement: models.BadgeRequirement{Type: "signup", Value: 1},
		Rarity:      "common",
		XPReward:    10,
	},
	{
		ID:          "badge-2",
		Name:        "İlk Gönderi",
		Description: "İlk gönderini paylaş",
		ImageURL:    "/images/badges/first-post.png",
		Category:    "engagement",
		Requirement: models.BadgeRequirement{Type: "posts_created", Value: 1},
		Rarity:      "common",
		XPReward:    25,
	},
	{
		ID:          "badge-3",
		Name:        "10 Saat Gönüllü",
		Description: "10 saat gönüllülük tamamla",
		ImageURL:    "/images/badges/10-hours.png",
		Category:    "hours",
		Requirement: models.BadgeRequirement{Type: "hours_volunteered", Value: 10},
		Rarity:      "common",
		XPReward:    50,
	},
	{
		ID:          "badge-4",
		Name:        "İlk Proje",
		Description: "İlk gönüllü projesini tamamla",
		ImageURL:    "/images/badges/first-project.png",
		Category:    "projects",
		Requirement: models.BadgeRequirement{Type: "projects_completed", Value: 1},
		Rarity:      "rare",
		XPReward:    100,
	},
}

// Summary counts what a Run wrote.
type Summary struct {
	Posts    int
	Comments int
	Programs int
	Hashtags int
	Badges   int
}

type Seeder struct {
	st  store.Store
	now func() time.Time
	// Password, when set, lets the demo user log in with it.
	Password string
}

func New(st store.Store) *Seeder {
	return &Seeder{st: st, now: time.Now}
}

func (s *Seeder) collection(path string) *store.Collection {
	return store.NewCollection(s.st, path, store.WithClock(s.now))
}

// Run writes the demo user, posts with their comments, programs, trending
// hashtags and badges. Posts and programs get fresh ids, so running it twice
// duplicates them.
func (s *Seeder) Run(ctx context.Context, f *Fixtures) (Summary, error) {
	var sum Summary

	log.Println("📝 Uploading test user...")
	if err := s.seedUser(ctx, f.Me.DefaultUserData); err != nil {
		return sum, fmt.Errorf("seed user: %w", err)
	}
	log.Println("✅ Test user uploaded!")

	log.Println("📝 Uploading posts...")
	for _, p := range f.Home.MockPosts {
		comments, err := s.seedPost(ctx, p)
		if err != nil {
			return sum, fmt.Errorf("seed post by %s: %w", p.Author.Name, err)
		}
		sum.Posts++
		sum.Comments += comments
		log.Printf("✅ Post %q uploaded with comments!", p.Author.Name)
	}

	log.Println("📝 Uploading volunteer programs...")
	programs := s.collection(services.ProgramsCollection)
	for _, p := range f.Applications.Programs {
		if _, err := programs.Create(ctx, s.program(p, f.Me.DefaultUserData)); err != nil {
			return sum, fmt.Errorf("seed program %q: %w", p.Title, err)
		}
		sum.Programs++
		log.Printf("✅ Program %q uploaded!", p.Title)
	}

	log.Println("📝 Uploading trending hashtags...")
	hashtags := s.collection(services.HashtagsCollection)
	for _, t := range f.Home.TrendingTopics {
		if _, err := hashtags.Set(ctx, t.Slug, hashtag(t, s.now())); err != nil {
			return sum, fmt.Errorf("seed hashtag %q: %w", t.Tag, err)
		}
		sum.Hashtags++
		log.Printf("✅ Hashtag %q uploaded!", t.Tag)
	}

	log.Println("📝 Uploading badges...")
	badges := s.collection(services.BadgesCollection)
	for _, b := range DefaultBadges {
		if _, err := badges.Set(ctx, b.ID, b); err != nil {
			return sum, fmt.Errorf("seed badge %s: %w", b.ID, err)
		}
		sum.Badges++
		log.Printf("✅ Badge %q uploaded!", b.Name)
	}

	return sum, nil
}

func (s *Seeder) seedUser(ctx context.Context, d DefaultUser) error {
	email := strings.ToLower(strings.TrimSpace(d.Email))
	if email == "" {
		email = "test@example.com"
	}
	first, last := splitName(d.Name)
	badges := make([]string, 0, len(d.Badges))
	for _, b := range d.Badges {
		badges = append(badges, fmt.Sprintf("badge-%d", b.ID))
	}
	user := models.User{
		Name:      d.Name,
		FirstName: first,
		LastName:  last,
		Username:  "testuser",
		Email:     email,
		Phone:     validation.DigitsOnly(d.Phone),
		Location:  d.Location,
		Headline:  d.Headline,
		Bio:       d.Bio,
		AvatarURL: d.AvatarURL,
		Interests: []string{},
		Skills:    append([]string{}, d.Skills...),
		Stats: models.UserStats{
			Followers:        d.Stats.Followers,
			Following:        d.Stats.Following,
			Posts:            d.Stats.Posts,
			HoursVolunteered: d.Stats.HoursVolunteered,
			Projects:         d.Stats.Projects,
		},
		Gamification: models.Gamification{Level: d.Level, XP: d.XP, Badges: badges},
		IsActive:     true,
	}
	if s.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	_, err := s.collection(services.UsersCollection).Set(ctx, TestUserID, user)
	return err
}

func (s *Seeder) seedPost(ctx context.Context, p FixturePost) (int, error) {
	post := models.Post{
		AuthorID: p.Author.UserID,
		AuthorInfo: models.AuthorInfo{
			Name:       p.Author.Name,
			Title:      p.Author.Title,
			AvatarURL:  p.Author.AvatarURL,
			IsVerified: p.Author.IsVerified,
		},
		Content:  p.Content,
		Tags:     []string{},
		Hashtags: services.ExtractHashtags(p.Content, nil),
		Media:    []string{},
		Engagement: models.Engagement{
			Likes:    p.Likes,
			Comments: p.Comments,
			Shares:   p.Shares,
			Views:    p.Views,
		},
		IsActive:         true,
		ContentLowercase: strings.ToLower(p.Content),
	}
	doc, err := s.collection(services.PostsCollection).Create(ctx, post)
	if err != nil {
		return 0, err
	}
	postID := doc.ID()

	comments := s.collection(store.Join(services.PostsCollection, postID, services.CommentsCollection))
	for _, c := range p.CommentList {
		comment := models.Comment{
			PostID:     postID,
			AuthorID:   fmt.Sprintf("user-comment-%d", c.ID),
			AuthorInfo: models.AuthorInfo{Name: c.Author},
			Text:       c.Text,
		}
		if _, err := comments.Create(ctx, comment); err != nil {
			return 0, err
		}
	}
	return len(p.CommentList), nil
}

func (s *Seeder) program(p FixtureProgram, coordinator DefaultUser) models.Program {
	email := coordinator.Email
	if email == "" {
		email = "coordinator@example.com"
	}
	return models.Program{
		Title:           p.Title,
		Category:        p.Category,
		Description:     p.Description,
		FullDescription: p.FullDescription,
		Location:        p.Location,
		Duration:        p.Duration,
		Requirements:    append([]string{}, p.Requirements...),
		Image:           p.Image,
		Stats:           ProgramStats(p.Volunteers),
		Coordinator:     models.Coordinator{UserID: TestUserID, Name: coordinator.Name, Email: email},
		Status:          "active",
		StartDate:       s.now().UTC().Truncate(time.Millisecond),
	}
}

// ProgramStats derives the seeded counters from the volunteer count:
// 70% active, 30% completed, 130% applicants, each rounded down.
func ProgramStats(volunteers int) models.ProgramStats {
	return models.ProgramStats{
		TotalVolunteers:     volunteers,
		ActiveVolunteers:    volunteers * 7 / 10,
		CompletedVolunteers: volunteers * 3 / 10,
		Applicants:          volunteers * 13 / 10,
	}
}

func hashtag(t TrendingTopic, now time.Time) models.Hashtag {
	return models.Hashtag{
		Tag:          t.Tag,
		PostsCount:   t.Posts,
		WeeklyPosts:  t.Posts * 3 / 10,
		MonthlyPosts: t.Posts,
		LastUsed:     now.UTC().Truncate(time.Millisecond),
		Trending:     t.Posts > services.TrendingThreshold,
		Category:     "general",
	}
}

func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}
	return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
}
