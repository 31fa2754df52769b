package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"kovan/models"
	"kovan/store"
)

// TrendingThreshold is the post count above which a hashtag is trending.
const TrendingThreshold = 50

var hashtagPattern = regexp.MustCompile(`#[\p{L}\p{N}_]+`)

// ExtractHashtags returns the distinct lowercased #tags in content followed
// by the given tags (prefixed with '#' when missing), in first-seen order.
func ExtractHashtags(content string, tags []string) []string {
	seen := make(map[string]bool)
	out := []string{}
	add := func(tag string) {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || tag == "#" {
			return
		}
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		if !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}
	for _, m := range hashtagPattern.FindAllString(content, -1) {
		add(m)
	}
	for _, t := range tags {
		add(strings.Join(strings.Fields(t), ""))
	}
	return out
}

// Slug is the hashtag record id: the tag without '#', lowercased.
func Slug(tag string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
}

type HashtagService struct {
	deps     Deps
	hashtags *store.Collection
}

func NewHashtagService(d Deps) *HashtagService {
	d = d.withDefaults()
	return &HashtagService{deps: d, hashtags: d.collection(HashtagsCollection)}
}

// Record counts one more post for every tag, creating missing records.
// Each tag is counted in its own transaction.
func (s *HashtagService) Record(ctx context.Context, tags []string) error {
	now := s.deps.Now()
	for _, tag := range tags {
		slug := Slug(tag)
		if slug == "" {
			continue
		}
		err := s.record(ctx, tag, slug, now)
		if errors.Is(err, store.ErrDuplicate) {
			// another post created the record first; count against it
			err = s.record(ctx, tag, slug, now)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *HashtagService) record(ctx context.Context, tag, slug string, now time.Time) error {
	return s.deps.Store.RunInTransaction(ctx, func(ctx context.Context, tx store.Store) error {
		hashtags := s.hashtags.In(tx)
		_, err := hashtags.Document(ctx, slug)
		if errors.Is(err, store.ErrNotFound) {
			_, err = hashtags.Create(ctx, models.Hashtag{
				ID:           slug,
				Tag:          tag,
				PostsCount:   1,
				WeeklyPosts:  1,
				MonthlyPosts: 1,
				LastUsed:     now,
				Category:     "general",
			})
			return err
		}
		if err != nil {
			return err
		}
		for _, field := range []string{"postsCount", "weeklyPosts", "monthlyPosts"} {
			if err := hashtags.IncrementField(ctx, slug, field, 1); err != nil {
				return err
			}
		}
		doc, err := hashtags.Document(ctx, slug)
		if err != nil {
			return err
		}
		return hashtags.Update(ctx, slug, map[string]interface{}{
			"lastUsed": now,
			"trending": doc.Int("postsCount") > TrendingThreshold,
		})
	})
}

// Trending lists hashtags by post count, most first.
func (s *HashtagService) Trending(ctx context.Context, limit int) ([]models.Hashtag, error) {
	docs, err := s.hashtags.Find(ctx, store.Query{
		OrderBy:   "postsCount",
		Direction: store.Desc,
		Limit:     clampLimit(limit, 10, 50),
	})
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.Hashtag](docs)
}

type BadgeService struct {
	badges *store.Collection
}

func NewBadgeService(d Deps) *BadgeService {
	d = d.withDefaults()
	return &BadgeService{badges: d.collection(BadgesCollection)}
}

func (s *BadgeService) List(ctx context.Context) ([]models.Badge, error) {
	docs, err := s.badges.Find(ctx, store.Query{})
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.Badge](docs)
}
