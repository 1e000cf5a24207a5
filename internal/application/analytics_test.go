package application_test

import (
	"context"
	"testing"

	"github.com/linskybing/dynamic-forms/internal/application"
	"github.com/linskybing/dynamic-forms/internal/domain/form"
	"github.com/linskybing/dynamic-forms/internal/domain/submission"
	"github.com/linskybing/dynamic-forms/internal/notify"
	"github.com/linskybing/dynamic-forms/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormAnalytics(t *testing.T) {
	ctx := context.Background()
	repos := testutils.NewMemoryRepos()
	svc := application.New(repos, notify.LogSink{})
	bob := submission.UserRef{ID: "bob", Role: submission.RoleUser}

	_, err := svc.Schema.Publish(ctx, []byte(signupDoc), form.FormatYAML, "boss")
	require.NoError(t, err)

	_, err = svc.Submission.SaveDraft(ctx, application.SaveDraftInput{
		Owner: alice, FormID: "signup", SchemaVersion: 1,
		Payload: form.Payload{"role": form.Text("business"), "company": form.Text("Acme")},
	})
	require.NoError(t, err)
	_, _, err = svc.Submission.Submit(ctx, alice, "signup")
	require.NoError(t, err)

	_, err = svc.Submission.SaveDraft(ctx, application.SaveDraftInput{
		Owner: bob, FormID: "signup", SchemaVersion: 1,
		Payload: form.Payload{"role": form.Text("personal")},
	})
	require.NoError(t, err)

	stats, err := svc.Analytics.Form(ctx, "signup")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, int64(1), stats.Drafts)
	assert.Equal(t, 1, stats.ByState[submission.StateSubmitted])
	assert.InDelta(t, 0.5, stats.CompletionRate, 1e-9)
	require.Len(t, stats.Fields, 2)
	assert.Equal(t, application.FieldStat{Key: "role", Label: "role", Type: form.FieldRadio, Filled: 1, FillRate: 1}, stats.Fields[0])
	assert.Equal(t, application.FieldStat{Key: "company", Label: "company", Type: form.FieldText, Filled: 1, FillRate: 1}, stats.Fields[1])

	require.Len(t, stats.ByDay, application.AnalyticsWindow)
	total := 0
	for _, d := range stats.ByDay {
		total += d.Count
	}
	assert.Equal(t, 1, total)
}

func TestFormAnalytics_UnknownForm(t *testing.T) {
	svc := application.New(testutils.NewMemoryRepos(), notify.LogSink{})

	stats, err := svc.Analytics.Form(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.CompletionRate)
	assert.Empty(t, stats.Fields)
	assert.Len(t, stats.ByDay, application.AnalyticsWindow)
}
