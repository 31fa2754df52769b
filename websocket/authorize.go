package websocket

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kovan/services"
	"kovan/store"
)

var ErrNotAllowed = errors.New("subscription not allowed")

// Authorizer decides whether userID may watch the collection at path and
// returns q narrowed to the records that user may see.
type Authorizer func(ctx context.Context, userID, path string, q store.Query) (store.Query, error)

// Collections anyone signed in may watch as-is.
var publicCollections = map[string]bool{
	services.PostsCollection:    true,
	services.HashtagsCollection: true,
	services.ProgramsCollection: true,
	services.BadgesCollection:   true,
	services.UsersCollection:    true,
}

// Fields never sent to other users.
var privateUserFields = []string{"passwordHash", "googleId", "email", "phone", "birthDate"}

// DefaultAuthorizer allows public collections, post comments, and the
// caller's own notifications, conversations, messages and applications.
func DefaultAuthorizer(st store.Store) Authorizer {
	return func(ctx context.Context, userID, path string, q store.Query) (store.Query, error) {
		segs := strings.Split(path, "/")
		switch len(segs) {
		case 1:
			switch {
			case path == services.UsersCollection:
				if f := privateField(q); f != "" {
					return q, fmt.Errorf("%w: %s cannot be queried", ErrNotAllowed, f)
				}
				return q, nil
			case publicCollections[path]:
				return q, nil
			case path == services.NotificationsCollection:
				return narrow(q, store.Where("userId", store.OpEqual, userID)), nil
			case path == services.ConversationsCollection:
				return narrow(q, store.Where("participants", store.OpArrayContains, userID)), nil
			}
		case 3:
			parent, id, sub := segs[0], segs[1], segs[2]
			switch {
			case parent == services.PostsCollection && sub == services.CommentsCollection:
				return q, nil
			case parent == services.ProgramsCollection && sub == services.ApplicationsCollection:
				return narrow(q, store.Where("userId", store.OpEqual, userID)), nil
			case parent == services.ConversationsCollection && sub == services.MessagesCollection:
				if _, err := conversationMembers(ctx, st, userID, id); err != nil {
					return q, err
				}
				return q, nil
			}
		}
		return q, fmt.Errorf("%w: %s", ErrNotAllowed, path)
	}
}

// privateField returns the first private user field q filters or sorts on.
func privateField(q store.Query) string {
	fields := make([]string, 0, len(q.Where)+1)
	for _, f := range q.Where {
		fields = append(fields, f.Field)
	}
	if q.OrderBy != "" {
		fields = append(fields, q.OrderBy)
	}
	for _, field := range fields {
		root, _, _ := strings.Cut(field, ".")
		for _, p := range privateUserFields {
			if root == p {
				return field
			}
		}
	}
	return ""
}

func narrow(q store.Query, f store.Filter) store.Query {
	q.Where = append(append([]store.Filter{}, q.Where...), f)
	return q
}

func conversationMembers(ctx context.Context, st store.Store, userID, conversationID string) ([]string, error) {
	if conversationID == "" {
		return nil, fmt.Errorf("%w: conversation id is required", ErrNotAllowed)
	}
	doc, err := st.Get(ctx, services.ConversationsCollection, conversationID)
	if err != nil {
		return nil, err
	}
	members := doc.Strings("participants")
	for _, p := range members {
		if p == userID {
			return members, nil
		}
	}
	return nil, fmt.Errorf("%w: not a participant", ErrNotAllowed)
}

func (m *Manager) participants(ctx context.Context, userID, conversationID string) ([]string, error) {
	return conversationMembers(ctx, m.store, userID, conversationID)
}

// redact strips private fields from user records.
func redact(path string, docs []store.Document) []store.Document {
	if docs == nil {
		return []store.Document{}
	}
	if path != services.UsersCollection {
		return docs
	}
	out := make([]store.Document, len(docs))
	for i, d := range docs {
		c := make(store.Document, len(d))
		for k, v := range d {
			c[k] = v
		}
		for _, f := range privateUserFields {
			delete(c, f)
		}
		out[i] = c
	}
	return out
}
