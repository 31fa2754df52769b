package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"kovan/messaging"
	"kovan/models"
	"kovan/storage"
	"kovan/store"
	"kovan/validation"
)

type recordedBroadcast struct {
	users     []string
	eventType string
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []recordedBroadcast
}

func (b *recordingBroadcaster) SendToUsers(userIDs []string, eventType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recordedBroadcast{users: userIDs, eventType: eventType})
}

func (b *recordingBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.events))
	for i, e := range b.events {
		out[i] = e.eventType
	}
	return out
}

type testEnv struct {
	svc       *Services
	store     *store.MemoryStore
	events    *messaging.Recorder
	blob      *storage.Memory
	broadcast *recordingBroadcaster
}

// tickingClock advances one second per call so createdAt orders records by
// creation.
func tickingClock() func() time.Time {
	var mu sync.Mutex
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		store:     store.NewMemoryStore(),
		events:    &messaging.Recorder{},
		blob:      storage.NewMemory("https://cdn.test"),
		broadcast: &recordingBroadcaster{},
	}
	env.svc = New(Deps{
		Store:       env.store,
		Publisher:   env.events,
		Blob:        env.blob,
		Broadcaster: env.broadcast,
		Now:         tickingClock(),
	})
	env.svc.Auth.cost = bcrypt.MinCost
	return env
}

func (env *testEnv) register(t *testing.T, first, username string) *models.User {
	t.Helper()
	u, err := env.svc.Auth.Register(context.Background(), validation.Registration{
		FirstName:       first,
		LastName:        "Test",
		Email:           username + "@example.com",
		Phone:           "5551234567",
		BirthDate:       "1990-01-01",
		Username:        username,
		Password:        "secret1",
		ConfirmPassword: "secret1",
		AgreedToTerms:   true,
		AgreedToPrivacy: true,
		City:            "Ankara",
		Interests:       []string{"Çevre"},
	})
	require.NoError(t, err)
	return u
}

func (env *testEnv) post(t *testing.T, authorID, content string) *models.Post {
	t.Helper()
	p, err := env.svc.Posts.Create(context.Background(), authorID, PostInput{Title: "A post", Content: content})
	require.NoError(t, err)
	return p
}

func (env *testEnv) user(t *testing.T, id string) store.Document {
	t.Helper()
	doc, err := env.store.Get(context.Background(), UsersCollection, id)
	require.NoError(t, err)
	return doc
}
