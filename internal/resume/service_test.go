package resume

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placement-backend/internal/shared/storage/kv"
)

const owner = "guest:g-1"

func newTestService() (*Service, *kv.MemoryStore) {
	store := kv.NewMemoryStore()
	svc := NewService(store)
	n := 0
	svc.NewID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return svc, store
}

func TestServiceGetDefaults(t *testing.T) {
	svc, _ := newTestService()
	d, err := svc.Get(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, DefaultData(), d)
}

func TestServiceReplaceAssignsIDs(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	view, err := svc.Replace(ctx, owner, []byte(`{"personal":{"fullName":"Sam","email":"s@x.io"},"education":[{"school":"MIT"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "id-1", view.Data.Education[0].ID)
	assert.Equal(t, 30, view.Score.Score)

	raw, err := store.Get(ctx, owner, DataKey)
	require.NoError(t, err)
	assert.Contains(t, raw, `"id":"id-1"`)
}

func TestServicePatchMergesTopLevel(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Replace(ctx, owner, []byte(`{"personal":{"fullName":"Sam"},"summary":"old"}`))
	require.NoError(t, err)

	view, err := svc.Patch(ctx, owner, []byte(`{"summary":"new"}`))
	require.NoError(t, err)
	assert.Equal(t, "Sam", view.Data.Personal.FullName)
	assert.Equal(t, "new", view.Data.Summary)

	view, err = svc.Patch(ctx, owner, []byte(`{"personal":{"email":"s@x.io"}}`))
	require.NoError(t, err)
	assert.Equal(t, "", view.Data.Personal.FullName)
	assert.Equal(t, "s@x.io", view.Data.Personal.Email)
}

func TestServiceRejectsInvalidBody(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Replace(context.Background(), owner, []byte(`[1,2]`))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Patch(context.Background(), owner, []byte(`{"education":"MIT"}`))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestServiceLoadSample(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	view, err := svc.LoadSample(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "Alex Carter", view.Data.Personal.FullName)

	score, err := svc.Score(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 100, score.Score)
}

func TestServiceTemplateAndColor(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	tpl, err := svc.Template(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, TemplateModern, tpl)

	_, err = svc.SetTemplate(ctx, owner, "fancy")
	assert.ErrorIs(t, err, ErrInvalidInput)

	tpl, err = svc.SetTemplate(ctx, owner, " Classic ")
	require.NoError(t, err)
	assert.Equal(t, TemplateClassic, tpl)

	require.NoError(t, store.Set(ctx, owner, TemplateKey, "retro"))
	tpl, err = svc.Template(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, TemplateModern, tpl)

	color, err := svc.Color(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, DefaultColor, color)

	_, err = svc.SetColor(ctx, owner, "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	color, err = svc.SetColor(ctx, owner, "hsl(0, 0%, 10%)")
	require.NoError(t, err)
	assert.Equal(t, "hsl(0, 0%, 10%)", color)
}

func TestServiceSubmission(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	sub, err := svc.Submission(ctx, owner)
	require.NoError(t, err)
	assert.False(t, sub.IsShipped)

	link := func(s string) *string { return &s }
	sub, err = svc.PatchSubmission(ctx, owner, SubmissionPatch{
		LovableLink: link("https://lovable.dev/p"),
		GitHubLink:  link("https://github.com/x"),
	})
	require.NoError(t, err)
	assert.False(t, sub.IsShipped)

	sub, err = svc.PatchSubmission(ctx, owner, SubmissionPatch{DeployedURL: link(" https://x.app ")})
	require.NoError(t, err)
	assert.True(t, sub.IsShipped)
	assert.Equal(t, "https://lovable.dev/p", sub.LovableLink)
	assert.Equal(t, "https://x.app", sub.DeployedURL)

	require.NoError(t, store.Set(ctx, owner, SubmissionKey, "garbage"))
	sub, err = svc.Submission(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, Submission{}, sub.Submission)
}

func TestServiceOwnersAreIsolated(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.LoadSample(ctx, owner)
	require.NoError(t, err)

	d, err := svc.Get(ctx, "user:other")
	require.NoError(t, err)
	assert.Equal(t, "", d.Personal.FullName)
}
