package application

import (
	"context"
	"errors"
	"log"

	"github.com/linskybing/dynamic-forms/internal/domain/errs"
	"github.com/linskybing/dynamic-forms/internal/domain/form"
	"github.com/linskybing/dynamic-forms/internal/domain/submission"
	"github.com/linskybing/dynamic-forms/internal/repository"
	"github.com/linskybing/dynamic-forms/pkg/utils"
)

type SchemaService struct {
	Repos *repository.Repos
}

func NewSchemaService(repos *repository.Repos) *SchemaService {
	return &SchemaService{
		Repos: repos,
	}
}

// Publish decodes raw, checks it and stores it as the next version of its
// form. The version in the document is ignored.
func (s *SchemaService) Publish(ctx context.Context, raw []byte, format form.Format, createdBy string) (*form.FormSchema, error) {
	schema, err := form.DecodeSchema(raw, format)
	if err != nil {
		return nil, err
	}

	latest, err := s.Repos.Schema.Latest(ctx, schema.FormID)
	switch {
	case err == nil:
		schema.Version = latest.Version + 1
	case errors.Is(err, errs.ErrSchemaNotFound):
		schema.Version = 1
	default:
		return nil, err
	}

	if err := s.Repos.Schema.Create(ctx, schema, createdBy); err != nil {
		return nil, err
	}
	log.Printf("Published form %s version %d (%d fields) by %s", schema.FormID, schema.Version, len(schema.Fields), createdBy)
	return schema, nil
}

// PublishBundle publishes every document of a multi-document YAML file in
// order and stops at the first failure.
func (s *SchemaService) PublishBundle(ctx context.Context, content string, createdBy string) ([]*form.FormSchema, error) {
	docs := utils.SplitYAMLDocuments(content)
	if len(docs) == 0 {
		return nil, errs.New(errs.KindSchemaInvariantViolation, "application.PublishBundle", "bundle contains no documents")
	}
	out := make([]*form.FormSchema, 0, len(docs))
	for _, doc := range docs {
		schema, err := s.Publish(ctx, []byte(doc), form.FormatYAML, createdBy)
		if err != nil {
			return out, err
		}
		out = append(out, schema)
	}
	return out, nil
}

// Resolve returns one published version; it never falls back to the latest.
func (s *SchemaService) Resolve(ctx context.Context, formID string, version int) (*form.FormSchema, error) {
	return s.Repos.Schema.Get(ctx, formID, version)
}

func (s *SchemaService) Latest(ctx context.Context, formID string) (*form.FormSchema, error) {
	return s.Repos.Schema.Latest(ctx, formID)
}

// List returns the latest version of every form. Users do not see forms that
// accept one submission per user once they have submitted them.
func (s *SchemaService) List(ctx context.Context, viewer submission.UserRef) ([]form.FormSchema, error) {
	schemas, err := s.Repos.Schema.ListLatest(ctx)
	if err != nil {
		return nil, err
	}
	if viewer.IsAdmin() {
		return schemas, nil
	}

	var done map[string]bool
	out := make([]form.FormSchema, 0, len(schemas))
	for _, schema := range schemas {
		if !schema.MultipleSubmissionsAllowed() {
			if done == nil {
				subs, err := s.Repos.Submission.ListByOwner(ctx, viewer.ID)
				if err != nil {
					return nil, err
				}
				done = map[string]bool{}
				for _, sub := range subs {
					if sub.State.Counted() {
						done[sub.FormID] = true
					}
				}
			}
			if done[schema.FormID] {
				continue
			}
		}
		out = append(out, schema)
	}
	return out, nil
}

func (s *SchemaService) Versions(ctx context.Context, formID string) ([]int, error) {
	return s.Repos.Schema.ListVersions(ctx, formID)
}

func (s *SchemaService) Diff(ctx context.Context, formID string, from, to int) (form.SchemaDiff, error) {
	older, err := s.Repos.Schema.Get(ctx, formID, from)
	if err != nil {
		return form.SchemaDiff{}, err
	}
	newer, err := s.Repos.Schema.Get(ctx, formID, to)
	if err != nil {
		return form.SchemaDiff{}, err
	}
	return form.Diff(older, newer), nil
}
