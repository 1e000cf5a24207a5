package form

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// SchemaRecord is the stored row of one published schema version. Rows are
// inserted once and never updated.
type SchemaRecord struct {
	ID        uint           `json:"-" gorm:"primaryKey"`
	FormID    string         `json:"form_id" gorm:"size:190;not null;uniqueIndex:idx_form_schema_version,priority:1"`
	Version   int            `json:"version" gorm:"not null;uniqueIndex:idx_form_schema_version,priority:2"`
	Title     string         `json:"title"`
	Fields    datatypes.JSON `json:"fields" gorm:"type:jsonb;not null"`
	// AllowMultipleSubmissions is a pointer so an explicit false is inserted
	// instead of the column default.
	AllowMultipleSubmissions *bool `json:"allow_multiple_submissions" gorm:"default:true"`
	CreatedBy string         `json:"created_by" gorm:"size:190"`
	CreatedAt time.Time      `json:"created_at"`
}

func (SchemaRecord) TableName() string {
	return "form_schemas"
}

func NewSchemaRecord(s *FormSchema, createdBy string) (*SchemaRecord, error) {
	fields, err := json.Marshal(s.Fields)
	if err != nil {
		return nil, err
	}
	return &SchemaRecord{
		FormID:    s.FormID,
		Version:   s.Version,
		Title:     s.Title,
		Fields:    datatypes.JSON(fields),
		CreatedBy: createdBy,

		AllowMultipleSubmissions: s.AllowMultipleSubmissions,
	}, nil
}

func (r *SchemaRecord) Schema() (*FormSchema, error) {
	s := &FormSchema{FormID: r.FormID, Version: r.Version, Title: r.Title, AllowMultipleSubmissions: r.AllowMultipleSubmissions}
	if err := json.Unmarshal(r.Fields, &s.Fields); err != nil {
		return nil, err
	}
	return s, nil
}

// Repository is the full schema persistence contract used by the schema service.
type Repository interface {
	SchemaStore
	Latest(ctx context.Context, formID string) (*FormSchema, error)
	Create(ctx context.Context, s *FormSchema, createdBy string) error
	ListVersions(ctx context.Context, formID string) ([]int, error)
	// ListLatest returns the latest version of every form, ordered by form id.
	ListLatest(ctx context.Context) ([]FormSchema, error)
}
