package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kovan/models"
	"kovan/store"
	"kovan/validation"
)

func (env *testEnv) program(t *testing.T, title, category, coordinatorID string) string {
	t.Helper()
	doc, err := store.NewCollection(env.store, ProgramsCollection).Create(context.Background(), models.Program{
		Title:       title,
		Category:    category,
		Coordinator: models.Coordinator{UserID: coordinatorID},
		Status:      "active",
	})
	require.NoError(t, err)
	return doc.ID()
}

func TestListPrograms(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.program(t, "Fidan", "environment", "c1")
	env.program(t, "Kodlama", "education", "c1")

	all, err := env.svc.Programs.List(ctx, "all")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	all, err = env.svc.Programs.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := env.svc.Programs.List(ctx, "environment")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Fidan", filtered[0].Title)
}

func TestApply(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "Ayşe", "ayse")
	id := env.program(t, "Fidan", "environment", "c1")

	_, err := env.svc.Programs.Apply(ctx, user.ID, id, ApplyInput{})
	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs, "consent")

	app, err := env.svc.Programs.Apply(ctx, user.ID, id, ApplyInput{ConsentAccepted: true, Motivation: " doğayı seviyorum "})
	require.NoError(t, err)
	assert.Equal(t, "Fidan", app.ProgramTitle)
	assert.Equal(t, "doğayı seviyorum", app.Motivation)
	assert.Equal(t, "pending", app.Status)

	_, err = env.svc.Programs.Apply(ctx, user.ID, id, ApplyInput{ConsentAccepted: true})
	assert.ErrorIs(t, err, ErrConflict)

	p, err := env.svc.Programs.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stats.Applicants)

	_, err = env.svc.Programs.Apply(ctx, user.ID, "missing", ApplyInput{ConsentAccepted: true})
	assert.ErrorIs(t, err, store.ErrNotFound)

	mine, err := env.svc.Programs.MyApplications(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, id, mine[0].ProgramID)
}

func TestProgramUploadImage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.program(t, "Fidan", "environment", "coordinator")
	img := Upload{Name: "fidan.jpg", ContentType: "image/jpeg", Size: 4, Body: bytes.NewReader([]byte("jpeg"))}

	_, err := env.svc.Programs.UploadImage(ctx, "someone", id, img)
	assert.ErrorIs(t, err, ErrForbidden)

	url, err := env.svc.Programs.UploadImage(ctx, "coordinator", id, img)
	require.NoError(t, err)
	p, err := env.svc.Programs.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, url, p.Image)
}
