package services

import (
	"context"
	"log"
	"sort"
	"strings"

	"kovan/messaging"
	"kovan/models"
	"kovan/store"
	"kovan/validation"
)

type MessageService struct {
	deps          Deps
	conversations *store.Collection
	users         *UserService
	notes         *NotificationService
}

func NewMessageService(d Deps, users *UserService, notes *NotificationService) *MessageService {
	d = d.withDefaults()
	return &MessageService{deps: d, conversations: d.collection(ConversationsCollection), users: users, notes: notes}
}

func (s *MessageService) messages(conversationID string) *store.Collection {
	return s.conversations.Sub(conversationID, MessagesCollection)
}

// Create opens a conversation between userID and the other participants,
// or returns the existing one with exactly the same participants.
func (s *MessageService) Create(ctx context.Context, userID string, others []string) (*models.Conversation, bool, error) {
	participants := []string{userID}
	seen := map[string]bool{userID: true}
	for _, p := range others {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		if _, err := s.users.Get(ctx, p); err != nil {
			return nil, false, err
		}
		seen[p] = true
		participants = append(participants, p)
	}
	if len(participants) < 2 {
		return nil, false, validation.Errors{"participants": "Conversation must have at least two participants"}
	}

	mine, err := s.List(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	for i := range mine {
		if sameMembers(mine[i].Participants, participants) {
			return &mine[i], false, nil
		}
	}

	now := s.deps.Now()
	doc, err := s.conversations.Create(ctx, models.Conversation{
		Participants:  participants,
		LastMessageAt: now,
	})
	if err != nil {
		return nil, false, err
	}
	var conv models.Conversation
	if err := store.Decode(doc, &conv); err != nil {
		return nil, false, err
	}
	s.deps.Broadcaster.SendToUsers(participants, "conversation_created", conv)
	return &conv, true, nil
}

// List returns userID's conversations, most recently active first.
func (s *MessageService) List(ctx context.Context, userID string) ([]models.Conversation, error) {
	docs, err := s.conversations.Find(ctx, store.Query{
		Where:     []store.Filter{store.Where("participants", store.OpArrayContains, userID)},
		OrderBy:   "lastMessageAt",
		Direction: store.Desc,
	})
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.Conversation](docs)
}

// member loads a conversation and checks userID takes part in it.
func (s *MessageService) member(ctx context.Context, userID, conversationID string) (*models.Conversation, error) {
	var conv models.Conversation
	if err := s.conversations.Get(ctx, conversationID, &conv); err != nil {
		return nil, err
	}
	for _, p := range conv.Participants {
		if p == userID {
			return &conv, nil
		}
	}
	return nil, ErrForbidden
}

// Messages lists a conversation's messages oldest first. Participants only.
func (s *MessageService) Messages(ctx context.Context, userID, conversationID string) ([]models.Message, error) {
	if _, err := s.member(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	docs, err := s.messages(conversationID).Find(ctx, store.Query{OrderBy: "createdAt", Direction: store.Asc})
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.Message](docs)
}

// Send stores a message, updates the conversation summary, broadcasts the
// message to the participants and notifies the others.
func (s *MessageService) Send(ctx context.Context, userID, conversationID, content, kind string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, validation.Errors{"content": "Message cannot be empty"}
	}
	if kind == "" {
		kind = "text"
	}
	conv, err := s.member(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	doc, err := s.messages(conversationID).Create(ctx, models.Message{
		SenderID: userID,
		Content:  content,
		Type:     kind,
		ReadBy:   []string{userID},
	})
	if err != nil {
		log.Printf("[SendMessage] insert failed: %v", err)
		return nil, err
	}
	var msg models.Message
	if err := store.Decode(doc, &msg); err != nil {
		return nil, err
	}

	if err := s.conversations.Update(ctx, conversationID, map[string]interface{}{
		"lastMessage":   content,
		"lastMessageAt": msg.CreatedAt,
	}); err != nil {
		// the message is already stored
		log.Printf("[SendMessage] conversation summary update failed: %v", err)
	}

	s.deps.Broadcaster.SendToUsers(conv.Participants, "new_message", map[string]interface{}{
		"conversationId": conversationID,
		"message":        msg,
	})
	s.deps.publish(messaging.MessageSent, map[string]string{
		"conversationId": conversationID, "messageId": msg.ID, "senderId": userID,
	})

	if sender, err := s.users.Get(ctx, userID); err == nil {
		for _, p := range conv.Participants {
			if p == userID {
				continue
			}
			s.notes.notifyQuietly(ctx, models.Notification{
				UserID:        p,
				Type:          models.NotificationMessage,
				Actor:         actorOf(sender),
				Action:        "sana mesaj gönderdi",
				TargetID:      conversationID,
				TargetPreview: preview(content),
			})
		}
	}
	return &msg, nil
}

// MarkRead adds userID to readBy of every message in the conversation it has
// not read yet and returns how many changed.
func (s *MessageService) MarkRead(ctx context.Context, userID, conversationID string) (int, error) {
	conv, err := s.member(ctx, userID, conversationID)
	if err != nil {
		return 0, err
	}
	msgs := s.messages(conversationID)
	docs, err := msgs.Find(ctx, store.Query{})
	if err != nil {
		return 0, err
	}
	changed := 0
	for _, d := range docs {
		readBy, added := appendUnique(d.Strings("readBy"), userID)
		if !added {
			continue
		}
		if err := msgs.Update(ctx, d.ID(), map[string]interface{}{"readBy": readBy}); err != nil {
			return changed, err
		}
		changed++
	}
	if changed > 0 {
		s.deps.Broadcaster.SendToUsers(conv.Participants, "message_read", map[string]interface{}{
			"conversationId": conversationID,
			"userId":         userID,
		})
	}
	return changed, nil
}

func sameMembers(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := append([]string{}, a...)
	y := append([]string{}, b...)
	sort.Strings(x)
	sort.Strings(y)
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}
