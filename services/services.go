// Package services implements the domain operations of the volunteer
// network on top of store.Collection.
package services

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"kovan/cache"
	"kovan/messaging"
	"kovan/push"
	"kovan/storage"
	"kovan/store"
)

var (
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Collection names.
const (
	UsersCollection         = "users"
	PostsCollection         = "posts"
	CommentsCollection      = "comments"
	LikesCollection         = "likes"
	ProgramsCollection      = "programs"
	ApplicationsCollection  = "applications"
	HashtagsCollection      = "hashtags"
	BadgesCollection        = "badges"
	NotificationsCollection = "notifications"
	FollowsCollection       = "follows"
	ConversationsCollection = "conversations"
	MessagesCollection      = "messages"
)

// Broadcaster pushes a live event to the connected clients of the given
// users. The websocket hub implements it.
type Broadcaster interface {
	SendToUsers(userIDs []string, eventType string, payload interface{})
}

type nopBroadcaster struct{}

func (nopBroadcaster) SendToUsers([]string, string, interface{}) {}

// Deps are the collaborators shared by every service. Nil optional
// collaborators are replaced by no-op implementations.
type Deps struct {
	Store       store.Store
	Publisher   messaging.Publisher
	Pusher      push.Pusher
	Blob        storage.Blob
	Profiles    cache.ProfileCache
	Broadcaster Broadcaster
	// Google enables Google sign-in when set.
	Google      *GoogleAuth
	Now         func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Publisher == nil {
		d.Publisher = messaging.Nop{}
	}
	if d.Pusher == nil {
		d.Pusher = push.Nop{}
	}
	if d.Blob == nil {
		d.Blob = storage.NewMemory("")
	}
	if d.Profiles == nil {
		d.Profiles = cache.Nop{}
	}
	if d.Broadcaster == nil {
		d.Broadcaster = nopBroadcaster{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

func (d Deps) collection(path string) *store.Collection {
	return store.NewCollection(d.Store, path, store.WithClock(d.Now))
}

func (d Deps) publish(subject string, event interface{}) {
	if err := d.Publisher.Publish(subject, event); err != nil {
		log.Printf("[events] publish %s failed: %v", subject, err)
	}
}

// Services bundles every domain service over one set of dependencies.
type Services struct {
	Auth          *AuthService
	Users         *UserService
	Follows       *FollowService
	Posts         *PostService
	Hashtags      *HashtagService
	Badges        *BadgeService
	Programs      *ProgramService
	Notifications *NotificationService
	Messages      *MessageService
}

func New(d Deps) *Services {
	d = d.withDefaults()
	notes := NewNotificationService(d)
	users := NewUserService(d)
	hashtags := NewHashtagService(d)
	return &Services{
		Auth:          NewAuthService(d, users),
		Users:         users,
		Follows:       NewFollowService(d, users, notes),
		Posts:         NewPostService(d, users, hashtags, notes),
		Hashtags:      hashtags,
		Badges:        NewBadgeService(d),
		Programs:      NewProgramService(d),
		Notifications: notes,
		Messages:      NewMessageService(d, users, notes),
	}
}

// Upload is one file received from a client.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// background runs fn detached from the request with its own timeout.
func background(name string, fn func(ctx context.Context)) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[%s] panic: %v", name, r)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		fn(ctx)
	}()
}
