package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.register(t, "Ayşe", "ayse")

	updated, err := env.svc.Users.UpdateProfile(ctx, u.ID, map[string]interface{}{
		"firstName":    " Ayşegül ",
		"bio":          "Doğa gönüllüsü",
		"phone":        "(555) 123-45-67",
		"email":        "hacker@example.com",
		"passwordHash": "x",
		"stats":        map[string]interface{}{"followers": 1000},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ayşegül Test", updated.Name)
	assert.Equal(t, "Doğa gönüllüsü", updated.Bio)
	assert.Equal(t, "5551234567", updated.Phone)
	assert.Equal(t, "ayse@example.com", updated.Email)
	assert.Equal(t, 0, updated.Stats.Followers)
	assert.Equal(t, u.PasswordHash, env.user(t, u.ID).String("passwordHash"))
}

func TestSkillsAndBadges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.register(t, "Ayşe", "ayse")

	skills, err := env.svc.Users.AddSkill(ctx, u.ID, "İlk Yardım")
	require.NoError(t, err)
	assert.Equal(t, []string{"İlk Yardım"}, skills)
	skills, err = env.svc.Users.AddSkill(ctx, u.ID, "İlk Yardım")
	require.NoError(t, err)
	assert.Equal(t, []string{"İlk Yardım"}, skills)
	_, err = env.svc.Users.AddSkill(ctx, u.ID, " ")
	assert.Error(t, err)

	badges, err := env.svc.Users.AddBadge(ctx, u.ID, "badge-1")
	require.NoError(t, err)
	badges, err = env.svc.Users.AddBadge(ctx, u.ID, "badge-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"badge-1"}, badges)

	assert.Error(t, env.svc.Users.IncrementStat(ctx, u.ID, "karma", 1))
}

func TestLeaderboardAndSearch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ayse := env.register(t, "Ayşe", "ayse")
	ali := env.register(t, "Ali", "ali")
	mehmet := env.register(t, "Mehmet", "mehmet")
	require.NoError(t, env.svc.Users.IncrementStat(ctx, ayse.ID, "hoursVolunteered", 5))
	require.NoError(t, env.svc.Users.IncrementStat(ctx, ali.ID, "hoursVolunteered", 12))
	require.NoError(t, env.svc.Users.IncrementStat(ctx, mehmet.ID, "hoursVolunteered", 1))

	top, err := env.svc.Users.Leaderboard(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, ali.ID, top[0].ID)
	assert.Equal(t, ayse.ID, top[1].ID)

	found, err := env.svc.Users.SearchByName(ctx, "A")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Ali Test", found[0].Name)
	assert.Equal(t, "Ayşe Test", found[1].Name)

	found, err = env.svc.Users.SearchByName(ctx, "  ")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestDiscover(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ayse := env.register(t, "Ayşe", "ayse")
	env.register(t, "Mehmet", "mehmet")
	_, err := env.svc.Users.AddSkill(ctx, ayse.ID, "Fotoğrafçılık")
	require.NoError(t, err)

	d, err := env.svc.Users.Discover(ctx, "", "Fotoğrafçılık")
	require.NoError(t, err)
	require.Len(t, d.Users, 1)
	assert.Equal(t, ayse.ID, d.Users[0].ID)
	assert.Equal(t, []string{"Fotoğrafçılık"}, d.Skills)

	d, err = env.svc.Users.Discover(ctx, "mehmet", "")
	require.NoError(t, err)
	require.Len(t, d.Users, 1)
	assert.Equal(t, "Mehmet Test", d.Users[0].Name)
}

func TestUploadAvatar(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.register(t, "Ayşe", "ayse")

	url, err := env.svc.Users.UploadAvatar(ctx, u.ID, Upload{Name: "me.png", ContentType: "image/png", Size: 3, Body: bytes.NewReader([]byte("png"))})
	require.NoError(t, err)
	assert.Equal(t, url, env.user(t, u.ID).String("avatarUrl"))

	objects, err := env.blob.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, objects, 1)

	_, err = env.svc.Users.UploadAvatar(ctx, u.ID, Upload{Name: "big.png", ContentType: "image/png", Size: 11 << 20, Body: bytes.NewReader(nil)})
	assert.Error(t, err)
	_, err = env.svc.Users.UploadBanner(ctx, "ghost", Upload{Name: "b.png", ContentType: "image/png", Size: 1, Body: bytes.NewReader([]byte("x"))})
	assert.Error(t, err)
}

func TestUploadAvatar_ReplacesPreviousObject(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.register(t, "Ayşe", "ayse")
	png := func(name string) Upload {
		return Upload{Name: name, ContentType: "image/png", Size: 3, Body: bytes.NewReader([]byte("png"))}
	}

	_, err := env.svc.Users.UploadAvatar(ctx, u.ID, png("first.png"))
	require.NoError(t, err)
	url, err := env.svc.Users.UploadAvatar(ctx, u.ID, png("second.png"))
	require.NoError(t, err)

	objects, err := env.blob.List(ctx, "users/"+u.ID+"/profile/")
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, url, objects[0].URL)
	assert.Equal(t, objects[0].Path, env.user(t, u.ID).String("avatarPath"))

	_, err = env.svc.Users.UploadBanner(ctx, u.ID, png("b1.png"))
	require.NoError(t, err)
	_, err = env.svc.Users.UploadBanner(ctx, u.ID, png("b2.png"))
	require.NoError(t, err)
	banners, err := env.blob.List(ctx, "users/"+u.ID+"/uploads/")
	require.NoError(t, err)
	assert.Len(t, banners, 1)
}
