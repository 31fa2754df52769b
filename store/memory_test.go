package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPosts(t *testing.T, st Store) {
	t.Helper()
	ctx := context.Background()
	posts := []Document{
		{"id": "p1", "title": "Beach cleanup", "isActive": true, "createdAt": time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "hashtags": []interface{}{"#cevre"}, "engagement": map[string]interface{}{"likes": int64(3)}},
		{"id": "p2", "title": "Food bank", "isActive": true, "createdAt": time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), "hashtags": []interface{}{"#gida", "#cevre"}, "engagement": map[string]interface{}{"likes": int64(10)}},
		{"id": "p3", "title": "Hidden", "isActive": false, "createdAt": time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), "engagement": map[string]interface{}{"likes": int64(7)}},
		{"id": "p4", "title": "No date", "isActive": true},
	}
	for _, p := range posts {
		_, err := st.Insert(ctx, "posts", p)
		require.NoError(t, err)
	}
}

func ids(docs []Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID()
	}
	return out
}

func TestMemoryStore_FindFiltersSortsAndLimits(t *testing.T) {
	st := NewMemoryStore()
	seedPosts(t, st)
	ctx := context.Background()

	docs, err := st.Find(ctx, "posts", Query{
		Where:     []Filter{Where("isActive", OpEqual, true)},
		OrderBy:   "createdAt",
		Direction: Desc,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p1"}, ids(docs), "records missing the ordered field are excluded")

	docs, err = st.Find(ctx, "posts", Query{OrderBy: "engagement.likes", Direction: Desc, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p3"}, ids(docs))

	docs, err = st.Find(ctx, "posts", Query{Where: []Filter{Where("hashtags", OpArrayContains, "#cevre")}})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, ids(docs))

	docs, err = st.Find(ctx, "posts", Query{Where: []Filter{Where("id", OpIn, []string{"p3", "p4"})}})
	require.NoError(t, err)
	assert.Equal(t, []string{"p3", "p4"}, ids(docs))

	docs, err = st.Find(ctx, "posts", Query{Where: []Filter{
		Where("engagement.likes", OpGreaterEqual, 3),
		Where("engagement.likes", OpLess, 10),
	}})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p3"}, ids(docs))
}

func TestMemoryStore_PrefixRange(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	for _, name := range []string{"Ayse", "Ahmet", "Mehmet", "Ali"} {
		_, err := st.Insert(ctx, "users", Document{"profile": map[string]interface{}{"name": name}})
		require.NoError(t, err)
	}
	docs, err := st.Find(ctx, "users", Query{
		Where: []Filter{
			Where("profile.name", OpGreaterEqual, "A"),
			Where("profile.name", OpLessEqual, "A\uf8ff"),
		},
		OrderBy: "profile.name",
	})
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "Ahmet", docs[0].String("profile.name"))
	assert.Equal(t, "Ayse", docs[2].String("profile.name"))
}

func TestMemoryStore_InvalidQueryAndPath(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	_, err := st.Find(ctx, "posts", Query{Where: []Filter{Where("a", "~=", 1)}})
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = st.Find(ctx, "posts", Query{Where: []Filter{Where("a", OpIn, "x")}})
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = st.Find(ctx, "posts/p1", Query{})
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = st.Get(ctx, "posts", "a/b")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestMemoryStore_UpdateAndIncrement(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	_, err := st.Insert(ctx, "users", Document{"id": "u1", "stats": map[string]interface{}{"posts": int64(1)}})
	require.NoError(t, err)

	require.NoError(t, st.Update(ctx, "users", "u1", Document{"stats.followers": 4, "city": "Izmir"}))
	require.NoError(t, st.Increment(ctx, "users", "u1", "stats.posts", 2))
	require.NoError(t, st.Increment(ctx, "users", "u1", "stats.projects", 1))

	doc, err := st.Get(ctx, "users", "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), doc.Int("stats.posts"))
	assert.Equal(t, int64(4), doc.Int("stats.followers"))
	assert.Equal(t, int64(1), doc.Int("stats.projects"))
	assert.Equal(t, "Izmir", doc.String("city"))

	assert.ErrorIs(t, st.Update(ctx, "users", "missing", Document{"a": 1}), ErrNotFound)
	assert.ErrorIs(t, st.Increment(ctx, "users", "missing", "a", 1), ErrNotFound)
}

func TestMemoryStore_ConcurrentIncrements(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	_, err := st.Insert(ctx, "posts", Document{"id": "p1", "engagement": map[string]interface{}{"views": int64(0)}})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, st.Increment(ctx, "posts", "p1", "engagement.views", 1))
		}()
	}
	wg.Wait()

	doc, err := st.Get(ctx, "posts", "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(50), doc.Int("engagement.views"))
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	_, err := st.Insert(ctx, "posts", Document{"id": "p1", "tags": []interface{}{"a"}})
	require.NoError(t, err)

	doc, err := st.Get(ctx, "posts", "p1")
	require.NoError(t, err)
	doc["tags"].([]interface{})[0] = "changed"

	again, err := st.Get(ctx, "posts", "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, again.Strings("tags"))
}

func TestMemoryStore_SubCollectionsAreIsolated(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, st.Set(ctx, Join("posts", "p1", "likes"), "u1", Document{"userId": "u1"}))
	require.NoError(t, st.Set(ctx, Join("posts", "p2", "likes"), "u1", Document{"userId": "u1"}))
	require.NoError(t, st.Delete(ctx, Join("posts", "p1", "likes"), "u1"))

	_, err := st.Get(ctx, "posts/p1/likes", "u1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.Get(ctx, "posts/p2/likes", "u1")
	assert.NoError(t, err)
}

func TestMemoryStore_TransactionRollsBack(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	_, err := st.Insert(ctx, "posts", Document{"id": "p1", "engagement": map[string]interface{}{"comments": int64(0)}})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = st.RunInTransaction(ctx, func(ctx context.Context, tx Store) error {
		if _, err := tx.Insert(ctx, "posts/p1/comments", Document{"text": "hi"}); err != nil {
			return err
		}
		if err := tx.Increment(ctx, "posts", "p1", "engagement.comments", 1); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	comments, err := st.Find(ctx, "posts/p1/comments", Query{})
	require.NoError(t, err)
	assert.Empty(t, comments)
	doc, err := st.Get(ctx, "posts", "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), doc.Int("engagement.comments"))
}

func TestMemoryStore_WatchClosesOnCancel(t *testing.T) {
	st := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := st.Watch(ctx, "posts")
	require.NoError(t, err)

	_, err = st.Insert(context.Background(), "posts", Document{"a": 1})
	require.NoError(t, err)
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a change signal")
	}

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryStore_RollbackKeepsConcurrentWrites(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	_, err := st.Insert(ctx, "posts", Document{"id": "p1", "engagement": map[string]interface{}{"likes": int64(0), "views": int64(0)}})
	require.NoError(t, err)

	var wg sync.WaitGroup
	started := make(chan struct{})
	boom := errors.New("boom")
	err = st.RunInTransaction(ctx, func(ctx context.Context, tx Store) error {
		if _, err := tx.Insert(ctx, "posts/p1/likes", Document{"id": "u1"}); err != nil {
			return err
		}
		if err := tx.Increment(ctx, "posts", "p1", "engagement.likes", 1); err != nil {
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			close(started)
			assert.NoError(t, st.Increment(context.Background(), "posts", "p1", "engagement.views", 1))
		}()
		<-started
		return boom
	})
	assert.ErrorIs(t, err, boom)
	wg.Wait()

	doc, err := st.Get(ctx, "posts", "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), doc.Int("engagement.likes"))
	assert.Equal(t, int64(1), doc.Int("engagement.views"))
	_, err = st.Get(ctx, "posts/p1/likes", "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_NestedTransactionJoins(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	err := st.RunInTransaction(ctx, func(ctx context.Context, tx Store) error {
		return tx.RunInTransaction(ctx, func(ctx context.Context, inner Store) error {
			return inner.Set(ctx, "hashtags", "cevre", Document{"postsCount": int64(1)})
		})
	})
	require.NoError(t, err)
	doc, err := st.Get(ctx, "hashtags", "cevre")
	require.NoError(t, err)
	assert.Equal(t, int64(1), doc.Int("postsCount"))
}

func TestMemoryStore_InsertDuplicateID(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	_, err := st.Insert(ctx, "posts", Document{"id": "p1"})
	require.NoError(t, err)
	_, err = st.Insert(ctx, "posts", Document{"id": "p1"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestMemoryStore_FindByID(t *testing.T) {
	st := NewMemoryStore()
	seedPosts(t, st)
	docs, err := st.Find(context.Background(), "posts", Query{Where: []Filter{Where("id", OpIn, []interface{}{"p1", "p3"})}, OrderBy: "id", Direction: Desc})
	require.NoError(t, err)
	assert.Equal(t, []string{"p3", "p1"}, ids(docs))
}
