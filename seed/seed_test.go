package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kovan/services"
	"kovan/storage"
	"kovan/store"
)

func TestLoadShippedFixtures(t *testing.T) {
	f, err := LoadFixtures("../fixtures")
	require.NoError(t, err)
	assert.NotEmpty(t, f.Home.MockPosts)
	assert.NotEmpty(t, f.Home.TrendingTopics)
	assert.NotEmpty(t, f.Applications.Programs)
	assert.NotEmpty(t, f.Me.DefaultUserData.Name)
}

func TestLoadFixturesMissingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, HomeFile), []byte(`{}`), 0o644))

	_, err := LoadFixtures(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ApplicationsFile)
}

func TestProgramStats(t *testing.T) {
	s := ProgramStats(57)
	assert.Equal(t, 57, s.TotalVolunteers)
	assert.Equal(t, 39, s.ActiveVolunteers)
	assert.Equal(t, 17, s.CompletedVolunteers)
	assert.Equal(t, 74, s.Applicants)
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	f, err := LoadFixtures("../fixtures")
	require.NoError(t, err)

	st := store.NewMemoryStore()
	seeder := New(st)
	seeder.Password = "gizli-parola"
	sum, err := seeder.Run(ctx, f)
	require.NoError(t, err)

	wantComments := 0
	for _, p := range f.Home.MockPosts {
		wantComments += len(p.CommentList)
	}
	assert.Equal(t, Summary{
		Posts:    len(f.Home.MockPosts),
		Comments: wantComments,
		Programs: len(f.Applications.Programs),
		Hashtags: len(f.Home.TrendingTopics),
		Badges:   len(DefaultBadges),
	}, sum)

	svc := services.New(services.Deps{Store: st})

	user, err := svc.Users.Get(ctx, TestUserID)
	require.NoError(t, err)
	assert.Equal(t, "Elif Yılmaz", user.Name)
	assert.Equal(t, []string{"badge-1", "badge-2", "badge-3"}, user.Gamification.Badges)
	assert.Equal(t, 248.0, user.Stats.HoursVolunteered)

	loggedIn, err := svc.Auth.Login(ctx, "testuser", "gizli-parola")
	require.NoError(t, err)
	assert.Equal(t, TestUserID, loggedIn.ID)

	posts, err := svc.Posts.Feed(ctx, 0)
	require.NoError(t, err)
	require.Len(t, posts, len(f.Home.MockPosts))
	var withComments int
	for _, p := range posts {
		comments, err := svc.Posts.ListComments(ctx, p.ID)
		require.NoError(t, err)
		for _, c := range comments {
			assert.Regexp(t, `^user-comment-\d+$`, c.AuthorID)
			assert.Equal(t, p.ID, c.PostID)
		}
		withComments += len(comments)
	}
	assert.Equal(t, wantComments, withComments)

	tagged, err := svc.Posts.ByHashtag(ctx, "çevre", 0)
	require.NoError(t, err)
	assert.Len(t, tagged, 1)

	programs, err := svc.Programs.List(ctx, "all")
	require.NoError(t, err)
	require.Len(t, programs, len(f.Applications.Programs))
	for _, p := range programs {
		assert.Equal(t, TestUserID, p.Coordinator.UserID)
		assert.Equal(t, "active", p.Status)
	}

	trending, err := svc.Hashtags.Trending(ctx, 0)
	require.NoError(t, err)
	require.Len(t, trending, len(f.Home.TrendingTopics))
	assert.Equal(t, "#çevre", trending[0].Tag)
	assert.True(t, trending[0].Trending)
	assert.Equal(t, 46, trending[0].WeeklyPosts)
	assert.False(t, trending[len(trending)-1].Trending)

	badges, err := svc.Badges.List(ctx)
	require.NoError(t, err)
	assert.Len(t, badges, 4)
}

func TestUploadMedia(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hero.jpg"), []byte("jpeg"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "intro.mp4"), []byte("mp4"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	blob := storage.NewMemory("https://cdn.test")
	results, err := UploadMedia(context.Background(), blob, dir)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.NoError(t, r.Err)
	}
	assert.Equal(t, "https://cdn.test/media/hero.jpg", results[0].URL)

	data, err := blob.Open("media/intro.mp4")
	require.NoError(t, err)
	assert.Equal(t, "mp4", string(data))
}

func TestUploadMediaMissingDir(t *testing.T) {
	_, err := UploadMedia(context.Background(), storage.NewMemory(""), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
