package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"kovan/cache"
	"kovan/models"
	"kovan/search"
	"kovan/storage"
	"kovan/store"
	"kovan/validation"
)

// Counters under users/{id}.stats that IncrementStat may change.
var userStats = map[string]bool{
	"followers":        true,
	"following":        true,
	"posts":            true,
	"hoursVolunteered": true,
	"projects":         true,
}

type UserService struct {
	deps  Deps
	users *store.Collection
}

func NewUserService(d Deps) *UserService {
	d = d.withDefaults()
	return &UserService{deps: d, users: d.collection(UsersCollection)}
}

// Get reads a profile through the session cache.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	if u, err := s.deps.Profiles.GetProfile(ctx, id); err == nil {
		return u, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Printf("[UserService] cache read for %s failed: %v", id, err)
	}

	var u models.User
	if err := s.users.Get(ctx, id, &u); err != nil {
		return nil, err
	}
	if err := s.deps.Profiles.SetProfile(ctx, &u); err != nil {
		log.Printf("[UserService] cache write for %s failed: %v", id, err)
	}
	return &u, nil
}

// getFresh bypasses the cache, for reads that feed a write.
func (s *UserService) getFresh(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.users.Get(ctx, id, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserService) invalidate(ctx context.Context, id string) {
	if err := s.deps.Profiles.Invalidate(ctx, id); err != nil {
		log.Printf("[UserService] cache invalidate for %s failed: %v", id, err)
	}
}

// UpdateProfile applies the whitelisted profile fields and returns the
// updated profile. Other keys are ignored.
func (s *UserService) UpdateProfile(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error) {
	update := make(map[string]interface{})
	for _, f := range models.ProfileFields {
		if v, ok := fields[f]; ok {
			if str, ok := v.(string); ok {
				v = strings.TrimSpace(str)
			}
			update[f] = v
		}
	}
	if phone, ok := update["phone"].(string); ok && phone != "" {
		update["phone"] = validation.DigitsOnly(phone)
	}
	if _, hasName := update["name"]; !hasName {
		first, fok := update["firstName"].(string)
		last, lok := update["lastName"].(string)
		if fok || lok {
			current, err := s.getFresh(ctx, id)
			if err != nil {
				return nil, err
			}
			if !fok {
				first = current.FirstName
			}
			if !lok {
				last = current.LastName
			}
			update["name"] = strings.TrimSpace(first + " " + last)
		}
	}
	if len(update) > 0 {
		if err := s.users.Update(ctx, id, update); err != nil {
			return nil, err
		}
		s.invalidate(ctx, id)
	}
	return s.Get(ctx, id)
}

// AddSkill appends skill unless the user already lists it.
func (s *UserService) AddSkill(ctx context.Context, id, skill string) ([]string, error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return nil, validation.Errors{"skill": "Skill is required"}
	}
	u, err := s.getFresh(ctx, id)
	if err != nil {
		return nil, err
	}
	skills, added := appendUnique(u.Skills, skill)
	if added {
		if err := s.users.Update(ctx, id, map[string]interface{}{"skills": skills}); err != nil {
			return nil, err
		}
		s.invalidate(ctx, id)
	}
	return skills, nil
}

// AddBadge records badgeID on the user unless already earned.
func (s *UserService) AddBadge(ctx context.Context, id, badgeID string) ([]string, error) {
	badgeID = strings.TrimSpace(badgeID)
	if badgeID == "" {
		return nil, validation.Errors{"badgeId": "Badge is required"}
	}
	u, err := s.getFresh(ctx, id)
	if err != nil {
		return nil, err
	}
	badges, added := appendUnique(u.Gamification.Badges, badgeID)
	if added {
		if err := s.users.Update(ctx, id, map[string]interface{}{"gamification.badges": badges}); err != nil {
			return nil, err
		}
		s.invalidate(ctx, id)
	}
	return badges, nil
}

// IncrementStat adds delta to one of the user's stats counters.
func (s *UserService) IncrementStat(ctx context.Context, id, stat string, delta int64) error {
	if !userStats[stat] {
		return validation.Errors{"stat": fmt.Sprintf("unknown stat %q", stat)}
	}
	if err := s.users.IncrementField(ctx, id, "stats."+stat, delta); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// Leaderboard lists users by volunteered hours, most first.
func (s *UserService) Leaderboard(ctx context.Context, limit int) ([]models.User, error) {
	docs, err := s.users.Find(ctx, store.Query{
		OrderBy:   "stats.hoursVolunteered",
		Direction: store.Desc,
		Limit:     clampLimit(limit, 10, 100),
	})
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.User](docs)
}

// SearchByName is a case-sensitive name prefix search.
func (s *UserService) SearchByName(ctx context.Context, term string) ([]models.User, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.User{}, nil
	}
	docs, err := s.users.Find(ctx, store.Query{
		Where: []store.Filter{
			store.Where("name", store.OpGreaterEqual, term),
			store.Where("name", store.OpLessEqual, term+"\uf8ff"),
		},
		OrderBy: "name",
		Limit:   20,
	})
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.User](docs)
}

// Discovery is the discovery page: the matching users and the skill filter
// options drawn from every user.
type Discovery struct {
	Users  []models.User `json:"users"`
	Skills []string      `json:"skills"`
}

func (s *UserService) Discover(ctx context.Context, query, skill string) (*Discovery, error) {
	docs, err := s.users.Find(ctx, store.Query{})
	if err != nil {
		return nil, err
	}
	users, err := store.DecodeAll[models.User](search.Discover(docs, query, skill))
	if err != nil {
		return nil, err
	}
	skills := search.Skills(docs)
	if skills == nil {
		skills = []string{}
	}
	return &Discovery{Users: users, Skills: skills}, nil
}

// UploadAvatar stores a profile image and points avatarUrl at it. The
// previous avatar object is deleted.
func (s *UserService) UploadAvatar(ctx context.Context, id string, f Upload) (string, error) {
	return s.uploadImage(ctx, id, "avatar", storage.ProfileImagePath(id, f.Name), f)
}

// UploadBanner stores a banner image and points bannerUrl at it. The
// previous banner object is deleted.
func (s *UserService) UploadBanner(ctx context.Context, id string, f Upload) (string, error) {
	return s.uploadImage(ctx, id, "banner", storage.BannerImagePath(id, f.Name, s.deps.Now()), f)
}

// uploadImage writes {kind}Url and {kind}Path.
func (s *UserService) uploadImage(ctx context.Context, id, kind, objectPath string, f Upload) (string, error) {
	if err := validation.ValidateImage(f.ContentType, f.Size); err != nil {
		return "", err
	}
	user, err := s.getFresh(ctx, id)
	if err != nil {
		return "", err
	}
	previous := user.AvatarPath
	if kind == "banner" {
		previous = user.BannerPath
	}

	url, err := s.deps.Blob.Upload(ctx, objectPath, f.Body)
	if err != nil {
		log.Printf("[UserService] upload %s failed: %v", objectPath, err)
		return "", err
	}
	if err := s.users.Update(ctx, id, map[string]interface{}{kind + "Url": url, kind + "Path": objectPath}); err != nil {
		return "", err
	}
	s.invalidate(ctx, id)

	if previous != "" && previous != objectPath {
		if err := s.deps.Blob.Delete(ctx, previous); err != nil && !errors.Is(err, storage.ErrNotFound) {
			log.Printf("[UserService] delete old %s %s failed: %v", kind, previous, err)
		}
	}
	return url, nil
}

func appendUnique(list []string, item string) ([]string, bool) {
	for _, v := range list {
		if v == item {
			return list, false
		}
	}
	return append(append([]string{}, list...), item), true
}

func actorOf(u *models.User) models.Actor {
	return models.Actor{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL}
}
