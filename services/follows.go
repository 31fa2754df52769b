package services

import (
	"context"
	"errors"
	"log"

	"kovan/messaging"
	"kovan/models"
	"kovan/store"
	"kovan/validation"
)

type FollowService struct {
	deps    Deps
	follows *store.Collection
	users   *UserService
	notes   *NotificationService
}

func NewFollowService(d Deps, users *UserService, notes *NotificationService) *FollowService {
	d = d.withDefaults()
	return &FollowService{deps: d, follows: d.collection(FollowsCollection), users: users, notes: notes}
}

// Follow records that followerID follows followingID and updates both users'
// counters in one transaction.
func (s *FollowService) Follow(ctx context.Context, followerID, followingID string) error {
	if followerID == followingID {
		return validation.Errors{"userId": "You cannot follow yourself"}
	}
	id := models.FollowID(followerID, followingID)
	err := s.deps.Store.RunInTransaction(ctx, func(ctx context.Context, tx store.Store) error {
		follows := s.follows.In(tx)
		users := s.users.users.In(tx)
		if _, err := users.Document(ctx, followingID); err != nil {
			return err
		}
		if _, err := follows.Document(ctx, id); err == nil {
			return ErrConflict
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if _, err := follows.Set(ctx, id, models.Follow{FollowerID: followerID, FollowingID: followingID}); err != nil {
			return err
		}
		if err := users.IncrementField(ctx, followerID, "stats.following", 1); err != nil {
			return err
		}
		return users.IncrementField(ctx, followingID, "stats.followers", 1)
	})
	if err != nil {
		return err
	}
	s.users.invalidate(ctx, followerID)
	s.users.invalidate(ctx, followingID)

	s.deps.publish(messaging.UserFollowed, map[string]string{"followerId": followerID, "followingId": followingID})
	if follower, err := s.users.Get(ctx, followerID); err == nil {
		s.notes.notifyQuietly(ctx, models.Notification{
			UserID:   followingID,
			Type:     models.NotificationFollow,
			Actor:    actorOf(follower),
			Action:   "seni takip etmeye başladı",
			TargetID: followerID,
		})
	} else {
		log.Printf("[Follow] follower %s lookup failed: %v", followerID, err)
	}
	return nil
}

// Unfollow reverses Follow.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followingID string) error {
	id := models.FollowID(followerID, followingID)
	err := s.deps.Store.RunInTransaction(ctx, func(ctx context.Context, tx store.Store) error {
		follows := s.follows.In(tx)
		users := s.users.users.In(tx)
		if _, err := follows.Document(ctx, id); err != nil {
			return err
		}
		if err := follows.Remove(ctx, id); err != nil {
			return err
		}
		if err := users.IncrementField(ctx, followerID, "stats.following", -1); err != nil {
			return err
		}
		return users.IncrementField(ctx, followingID, "stats.followers", -1)
	})
	if err != nil {
		return err
	}
	s.users.invalidate(ctx, followerID)
	s.users.invalidate(ctx, followingID)
	return nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	_, err := s.follows.Document(ctx, models.FollowID(followerID, followingID))
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Followers lists the users following userID, most recent first.
func (s *FollowService) Followers(ctx context.Context, userID string) ([]models.User, error) {
	return s.list(ctx, "followingId", userID, "followerId")
}

// Following lists the users userID follows, most recent first.
func (s *FollowService) Following(ctx context.Context, userID string) ([]models.User, error) {
	return s.list(ctx, "followerId", userID, "followingId")
}

func (s *FollowService) list(ctx context.Context, field, userID, other string) ([]models.User, error) {
	docs, err := s.follows.Find(ctx, store.Query{
		Where:     []store.Filter{store.Where(field, store.OpEqual, userID)},
		OrderBy:   "createdAt",
		Direction: store.Desc,
	})
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(docs))
	for _, d := range docs {
		u, err := s.users.Get(ctx, d.String(other))
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, nil
}
