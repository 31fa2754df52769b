package services

import (
	"context"
	"fmt"
	"log"

	"kovan/messaging"
	"kovan/models"
	"kovan/store"
)

type NotificationService struct {
	deps  Deps
	notes *store.Collection
}

func NewNotificationService(d Deps) *NotificationService {
	d = d.withDefaults()
	return &NotificationService{deps: d, notes: d.collection(NotificationsCollection)}
}

// Notify records n for its recipient and sends a push in the background.
// Notifications addressed to their own actor are dropped.
func (s *NotificationService) Notify(ctx context.Context, n models.Notification) error {
	if n.UserID == "" || n.UserID == n.Actor.ID {
		return nil
	}
	n.ID = ""
	n.Read = false
	doc, err := s.notes.Create(ctx, n)
	if err != nil {
		return err
	}
	n.ID = doc.ID()
	s.deps.publish(messaging.NotificationCreated, n)
	s.deps.Broadcaster.SendToUsers([]string{n.UserID}, "notification", n)

	title := fmt.Sprintf("%s %s", n.Actor.Name, n.Action)
	background("push", func(ctx context.Context) {
		if err := s.deps.Pusher.Notify(ctx, n.UserID, title, n.TargetPreview, "/notifications"); err != nil {
			log.Printf("[NotificationService] push to %s failed: %v", n.UserID, err)
		}
	})
	return nil
}

// notifyQuietly is Notify for side effects of another write: failures are
// logged, not returned.
func (s *NotificationService) notifyQuietly(ctx context.Context, n models.Notification) {
	if err := s.Notify(ctx, n); err != nil {
		log.Printf("[NotificationService] %s notification for %s failed: %v", n.Type, n.UserID, err)
	}
}

// Inbox is a user's notification list, newest first.
type Inbox struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unreadCount"`
}

func (s *NotificationService) List(ctx context.Context, userID string, limit int) (*Inbox, error) {
	docs, err := s.notes.Find(ctx, store.Query{
		Where:     []store.Filter{store.Where("userId", store.OpEqual, userID)},
		OrderBy:   "createdAt",
		Direction: store.Desc,
		Limit:     clampLimit(limit, 50, 200),
	})
	if err != nil {
		return nil, err
	}
	list, err := store.DecodeAll[models.Notification](docs)
	if err != nil {
		return nil, err
	}
	unread, err := s.unread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Inbox{Notifications: list, UnreadCount: len(unread)}, nil
}

func (s *NotificationService) unread(ctx context.Context, userID string) ([]store.Document, error) {
	return s.notes.Find(ctx, store.Query{Where: []store.Filter{
		store.Where("userId", store.OpEqual, userID),
		store.Where("read", store.OpEqual, false),
	}})
}

// MarkRead marks one notification read. Only its recipient may do so.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	doc, err := s.notes.Document(ctx, id)
	if err != nil {
		return err
	}
	if doc.String("userId") != userID {
		return ErrForbidden
	}
	return s.notes.Update(ctx, id, map[string]interface{}{"read": true})
}

// MarkAllRead marks every unread notification of userID read and returns
// how many changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	docs, err := s.unread(ctx, userID)
	if err != nil {
		return 0, err
	}
	for _, d := range docs {
		if err := s.notes.Update(ctx, d.ID(), map[string]interface{}{"read": true}); err != nil {
			return 0, err
		}
	}
	return len(docs), nil
}
