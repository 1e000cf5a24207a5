package testutils

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/linskybing/dynamic-forms/internal/domain/errs"
	"github.com/linskybing/dynamic-forms/internal/domain/form"
	"github.com/linskybing/dynamic-forms/internal/domain/notification"
	"github.com/linskybing/dynamic-forms/internal/domain/submission"
	"github.com/linskybing/dynamic-forms/internal/repository"
	"gorm.io/gorm"
)

// NewMemoryRepos returns repositories backed by maps. They keep the
// compare-and-swap contracts of the gorm stores but have no transactions.
func NewMemoryRepos() *repository.Repos {
	return &repository.Repos{
		Schema:       NewMemorySchemaRepo(),
		Draft:        NewMemoryDraftRepo(),
		Submission:   NewMemorySubmissionRepo(),
		Notification: NewMemoryNotificationRepo(),
	}
}

type MemorySchemaRepo struct {
	mu      sync.Mutex
	schemas map[string][]*form.FormSchema
}

func NewMemorySchemaRepo() *MemorySchemaRepo {
	return &MemorySchemaRepo{schemas: map[string][]*form.FormSchema{}}
}

func (r *MemorySchemaRepo) Get(_ context.Context, formID string, version int) (*form.FormSchema, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.schemas[formID] {
		if s.Version == version {
			return s, nil
		}
	}
	return nil, errs.New(errs.KindSchemaNotFound, "memory.SchemaRepo.Get", "form %s version %d", formID, version)
}

func (r *MemorySchemaRepo) Latest(_ context.Context, formID string) (*form.FormSchema, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	versions := r.schemas[formID]
	if len(versions) == 0 {
		return nil, errs.New(errs.KindSchemaNotFound, "memory.SchemaRepo.Latest", "form %s", formID)
	}
	return versions[len(versions)-1], nil
}

func (r *MemorySchemaRepo) Create(_ context.Context, s *form.FormSchema, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.schemas[s.FormID] {
		if existing.Version == s.Version {
			return errs.New(errs.KindConcurrentModification, "memory.SchemaRepo.Create", "form %s version %d already published", s.FormID, s.Version)
		}
	}
	r.schemas[s.FormID] = append(r.schemas[s.FormID], s)
	sort.Slice(r.schemas[s.FormID], func(i, j int) bool {
		return r.schemas[s.FormID][i].Version < r.schemas[s.FormID][j].Version
	})
	return nil
}

func (r *MemorySchemaRepo) ListVersions(_ context.Context, formID string) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []int{}
	for _, s := range r.schemas[formID] {
		out = append(out, s.Version)
	}
	return out, nil
}

func (r *MemorySchemaRepo) ListLatest(_ context.Context) ([]form.FormSchema, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []form.FormSchema{}
	for _, versions := range r.schemas {
		if len(versions) > 0 {
			out = append(out, *versions[len(versions)-1])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FormID < out[j].FormID })
	return out, nil
}

func (r *MemorySchemaRepo) WithTx(*gorm.DB) repository.SchemaRepo { return r }

type draftKey struct{ owner, form string }

type MemoryDraftRepo struct {
	mu     sync.Mutex
	drafts map[draftKey]*submission.DraftRecord
}

func NewMemoryDraftRepo() *MemoryDraftRepo {
	return &MemoryDraftRepo{drafts: map[draftKey]*submission.DraftRecord{}}
}

func (r *MemoryDraftRepo) Read(_ context.Context, ownerID, formID string) (*submission.DraftRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drafts[draftKey{ownerID, formID}]
	if !ok {
		return nil, nil
	}
	return d.Clone(), nil
}

func (r *MemoryDraftRepo) WriteAtomic(_ context.Context, old, next *submission.DraftRecord) (*submission.DraftRecord, error) {
	const op = "memory.DraftRepo.WriteAtomic"
	r.mu.Lock()
	defer r.mu.Unlock()
	key := draftKey{next.OwnerID, next.FormID}
	current, exists := r.drafts[key]
	out := next.Clone()
	switch {
	case old == nil && exists:
		return nil, errs.New(errs.KindConcurrentModification, op, "draft was created concurrently")
	case old == nil:
		out.Revision = 1
	case !exists || current.Revision != old.Revision:
		return nil, errs.New(errs.KindConcurrentModification, op, "draft changed since revision %d", old.Revision)
	default:
		out.Revision = old.Revision + 1
	}
	r.drafts[key] = out.Clone()
	return out, nil
}

func (r *MemoryDraftRepo) ListStale(_ context.Context, cutoff time.Time) ([]submission.DraftRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []submission.DraftRecord{}
	for _, d := range r.drafts {
		if d.LastSavedAt.Before(cutoff) {
			out = append(out, *d.Clone())
		}
	}
	return out, nil
}

func (r *MemoryDraftRepo) DeleteIfUnchanged(_ context.Context, ownerID, formID string, lastSavedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := draftKey{ownerID, formID}
	d, ok := r.drafts[key]
	if !ok || !d.LastSavedAt.Equal(lastSavedAt) {
		return false, nil
	}
	delete(r.drafts, key)
	return true, nil
}

func (r *MemoryDraftRepo) CountByForm(_ context.Context, formID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k := range r.drafts {
		if k.form == formID {
			n++
		}
	}
	return n, nil
}

// Put stores d as is, for seeding tests.
func (r *MemoryDraftRepo) Put(d *submission.DraftRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts[draftKey{d.OwnerID, d.FormID}] = d.Clone()
}

func (r *MemoryDraftRepo) WithTx(*gorm.DB) repository.DraftRepo { return r }

type MemorySubmissionRepo struct {
	mu   sync.Mutex
	subs map[string]*submission.Submission
	seq  []string
}

func NewMemorySubmissionRepo() *MemorySubmissionRepo {
	return &MemorySubmissionRepo{subs: map[string]*submission.Submission{}}
}

func (r *MemorySubmissionRepo) Read(_ context.Context, id string) (*submission.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subs[id]
	if !ok {
		return nil, errs.New(errs.KindNotFound, "memory.SubmissionRepo.Read", "submission %s", id)
	}
	return s.Clone(), nil
}

func (r *MemorySubmissionRepo) Create(_ context.Context, s *submission.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subs[s.ID]; ok {
		return errs.New(errs.KindConcurrentModification, "memory.SubmissionRepo.Create", "submission %s exists", s.ID)
	}
	if s.Revision == 0 {
		s.Revision = 1
	}
	r.subs[s.ID] = s.Clone()
	r.seq = append(r.seq, s.ID)
	return nil
}

func (r *MemorySubmissionRepo) WriteAtomic(_ context.Context, old, next *submission.Submission) (*submission.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.subs[old.ID]
	if !ok || current.Revision != old.Revision {
		return nil, errs.New(errs.KindConcurrentModification, "memory.SubmissionRepo.WriteAtomic", "submission %s changed since revision %d", old.ID, old.Revision)
	}
	out := next.Clone()
	out.Revision = old.Revision + 1
	r.subs[old.ID] = out.Clone()
	return out, nil
}

func (r *MemorySubmissionRepo) ListByOwner(_ context.Context, ownerID string) ([]submission.Submission, error) {
	return r.filter(func(s *submission.Submission) bool { return s.OwnerID == ownerID }), nil
}

func (r *MemorySubmissionRepo) ListByForm(_ context.Context, formID string) ([]submission.Submission, error) {
	return r.filter(func(s *submission.Submission) bool { return s.FormID == formID }), nil
}

// filter returns matches newest first, like the gorm store.
func (r *MemorySubmissionRepo) filter(keep func(*submission.Submission) bool) []submission.Submission {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []submission.Submission{}
	for i := len(r.seq) - 1; i >= 0; i-- {
		if s := r.subs[r.seq[i]]; keep(s) {
			out = append(out, *s.Clone())
		}
	}
	return out
}

func (r *MemorySubmissionRepo) WithTx(*gorm.DB) repository.SubmissionRepo { return r }

type MemoryNotificationRepo struct {
	mu   sync.Mutex
	rows []notification.Notification
}

func NewMemoryNotificationRepo() *MemoryNotificationRepo {
	return &MemoryNotificationRepo{}
}

func (r *MemoryNotificationRepo) Create(_ context.Context, n *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	r.rows = append(r.rows, *n)
	return nil
}

func (r *MemoryNotificationRepo) ListFor(_ context.Context, userID, role string, limit int) ([]notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit <= 0 {
		limit = 50
	}
	out := []notification.Notification{}
	for i := len(r.rows) - 1; i >= 0 && len(out) < limit; i-- {
		n := r.rows[i]
		if n.UserID == userID || (role != "" && n.Role == role) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *MemoryNotificationRepo) MarkRead(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id && r.rows[i].UserID == userID {
			r.rows[i].Read = true
			return nil
		}
	}
	return errs.New(errs.KindNotFound, "memory.NotificationRepo.MarkRead", "notification %s not found", id)
}

func (r *MemoryNotificationRepo) WithTx(*gorm.DB) repository.NotificationRepo { return r }
