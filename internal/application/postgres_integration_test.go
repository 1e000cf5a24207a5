//go:build integration
// +build integration

package application_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/linskybing/dynamic-forms/internal/application"
	"github.com/linskybing/dynamic-forms/internal/domain/errs"
	"github.com/linskybing/dynamic-forms/internal/domain/form"
	"github.com/linskybing/dynamic-forms/internal/domain/submission"
	"github.com/linskybing/dynamic-forms/internal/notify"
	"github.com/linskybing/dynamic-forms/internal/repository"
	"github.com/linskybing/dynamic-forms/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var pgDB *gorm.DB

func TestMain(m *testing.M) {
	gdb, cleanup := testutils.SetupPostgresForIntegration()
	pgDB = gdb
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func newPostgresServices(t *testing.T) *application.Services {
	t.Helper()
	repos := repository.NewRepositories(pgDB)
	return application.New(repos, notify.NewStoreSink(repos.Notification))
}

func TestPostgres_SubmissionLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newPostgresServices(t)
	formID := fmt.Sprintf("signup-%d", time.Now().UnixNano())
	doc := fmt.Sprintf("formId: %s\n%s", formID, signupDoc[len("formId: signup\n"):])

	schema, err := svc.Schema.Publish(ctx, []byte(doc), form.FormatYAML, "boss")
	require.NoError(t, err)
	assert.Equal(t, 1, schema.Version)

	_, err = svc.Submission.SaveDraft(ctx, application.SaveDraftInput{
		Owner: alice, FormID: formID, SchemaVersion: 1,
		Payload: form.Payload{"role": form.Text("business"), "company": form.Text("Acme")},
	})
	require.NoError(t, err)

	sub, res, err := svc.Submission.Submit(ctx, alice, formID)
	require.NoError(t, err)
	require.NotNil(t, sub, "validation: %+v", res)
	assert.Equal(t, submission.StateSubmitted, sub.State)

	reviewed, err := svc.Submission.TransitionByID(ctx, sub.ID, sub.Revision, submission.StateUnderReview, boss, "")
	require.NoError(t, err)
	assert.Equal(t, sub.Revision+1, reviewed.Revision)

	_, err = svc.Submission.TransitionByID(ctx, sub.ID, sub.Revision, submission.StateApproved, boss, "")
	assert.ErrorIs(t, err, errs.ErrConcurrentModification)

	approved, err := svc.Submission.TransitionByID(ctx, sub.ID, reviewed.Revision, submission.StateApproved, boss, "looks good")
	require.NoError(t, err)
	assert.Equal(t, submission.StateApproved, approved.State)

	stored, err := svc.Submission.Get(ctx, sub.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, "looks good", stored.ReviewNotes)
	assert.Len(t, stored.History, 4)

	notes, err := svc.Notification.List(ctx, alice, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, notes)
}

func TestPostgres_RepublishSameVersionConflicts(t *testing.T) {
	ctx := context.Background()
	repos := repository.NewRepositories(pgDB)
	s := &form.FormSchema{FormID: fmt.Sprintf("dup-%d", time.Now().UnixNano()), Version: 1,
		Fields: []form.FieldDef{{Key: "a", Type: form.FieldText}}}

	require.NoError(t, repos.Schema.Create(ctx, s, "boss"))
	err := repos.Schema.Create(ctx, s, "boss")
	assert.ErrorIs(t, err, errs.ErrConcurrentModification)
}

func TestPostgres_ConcurrentAutosavesKeepEveryField(t *testing.T) {
	ctx := context.Background()
	svc := newPostgresServices(t)
	formID := fmt.Sprintf("wide-%d", time.Now().UnixNano())

	fields := make([]form.FieldDef, 8)
	for i := range fields {
		fields[i] = form.FieldDef{Key: fmt.Sprintf("f%d", i), Type: form.FieldText}
	}
	doc := fmt.Sprintf(`{"formId": %q, "fields": [`, formID)
	for i, f := range fields {
		if i > 0 {
			doc += ","
		}
		doc += fmt.Sprintf(`{"key": %q, "type": "text"}`, f.Key)
	}
	doc += "]}"
	_, err := svc.Schema.Publish(ctx, []byte(doc), form.FormatJSON, "boss")
	require.NoError(t, err)

	base := time.Now().UTC()
	var wg sync.WaitGroup
	errCh := make(chan error, len(fields))
	for i, f := range fields {
		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()
			_, err := svc.Submission.SaveDraft(ctx, application.SaveDraftInput{
				Owner: alice, FormID: formID, SchemaVersion: 1,
				Payload:         form.Payload{key: form.Text("v")},
				ClientTimestamp: base.Add(time.Duration(i) * time.Millisecond),
			})
			errCh <- err
		}(i, f.Key)
	}
	wg.Wait()
	close(errCh)

	saved := 0
	for err := range errCh {
		if err == nil {
			saved++
			continue
		}
		assert.ErrorIs(t, err, errs.ErrConcurrentModification)
	}

	draft, err := svc.Submission.GetDraft(ctx, alice, formID)
	require.NoError(t, err)
	assert.Len(t, draft.Payload, saved)
}
