package submission

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type SubmissionRecord struct {
	ID            string         `gorm:"primaryKey;size:36"`
	FormID        string         `gorm:"size:190;not null;index"`
	SchemaVersion int            `gorm:"not null"`
	OwnerID       string         `gorm:"size:190;not null;index"`
	Payload       datatypes.JSON `gorm:"type:jsonb;not null"`
	State         string         `gorm:"size:32;not null;index"`
	ReviewerID    *string        `gorm:"size:190"`
	ReviewNotes   string         `gorm:"type:text"`
	History       datatypes.JSON `gorm:"type:jsonb;not null"`
	Revision      int64          `gorm:"not null;default:1"`
	SubmittedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (SubmissionRecord) TableName() string {
	return "submissions"
}

type DraftRow struct {
	OwnerID       string         `gorm:"primaryKey;size:190"`
	FormID        string         `gorm:"primaryKey;size:190"`
	SchemaVersion int            `gorm:"not null"`
	Payload       datatypes.JSON `gorm:"type:jsonb;not null"`
	Stamps        datatypes.JSON `gorm:"type:jsonb;not null"`
	LastSavedAt   time.Time      `gorm:"not null;index"`
	SourceOfTruth string         `gorm:"size:16"`
	Revision      int64          `gorm:"not null;default:1"`
	CreatedAt     time.Time
}

func (DraftRow) TableName() string {
	return "drafts"
}

func NewSubmissionRecord(s *Submission) (*SubmissionRecord, error) {
	payload, err := json.Marshal(s.Payload)
	if err != nil {
		return nil, err
	}
	history, err := json.Marshal(s.History)
	if err != nil {
		return nil, err
	}
	return &SubmissionRecord{
		ID:            s.ID,
		FormID:        s.FormID,
		SchemaVersion: s.SchemaVersion,
		OwnerID:       s.OwnerID,
		Payload:       datatypes.JSON(payload),
		State:         string(s.State),
		ReviewerID:    s.ReviewerID,
		ReviewNotes:   s.ReviewNotes,
		History:       datatypes.JSON(history),
		Revision:      s.Revision,
		SubmittedAt:   s.SubmittedAt,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}, nil
}

func (r *SubmissionRecord) Submission() (*Submission, error) {
	s := &Submission{
		ID:            r.ID,
		FormID:        r.FormID,
		SchemaVersion: r.SchemaVersion,
		OwnerID:       r.OwnerID,
		State:         State(r.State),
		ReviewerID:    r.ReviewerID,
		ReviewNotes:   r.ReviewNotes,
		Revision:      r.Revision,
		SubmittedAt:   r.SubmittedAt,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if err := json.Unmarshal(r.Payload, &s.Payload); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(r.History, &s.History); err != nil {
		return nil, err
	}
	return s, nil
}

func NewDraftRow(d *DraftRecord) (*DraftRow, error) {
	payload, err := json.Marshal(d.Payload)
	if err != nil {
		return nil, err
	}
	stamps, err := json.Marshal(d.Stamps)
	if err != nil {
		return nil, err
	}
	return &DraftRow{
		OwnerID:       d.OwnerID,
		FormID:        d.FormID,
		SchemaVersion: d.SchemaVersion,
		Payload:       datatypes.JSON(payload),
		Stamps:        datatypes.JSON(stamps),
		LastSavedAt:   d.LastSavedAt,
		SourceOfTruth: string(d.SourceOfTruth),
		Revision:      d.Revision,
		CreatedAt:     d.CreatedAt,
	}, nil
}

func (r *DraftRow) Draft() (*DraftRecord, error) {
	d := &DraftRecord{
		OwnerID:       r.OwnerID,
		FormID:        r.FormID,
		SchemaVersion: r.SchemaVersion,
		LastSavedAt:   r.LastSavedAt,
		SourceOfTruth: Source(r.SourceOfTruth),
		Revision:      r.Revision,
		CreatedAt:     r.CreatedAt,
	}
	if err := json.Unmarshal(r.Payload, &d.Payload); err != nil {
		return nil, err
	}
	if len(r.Stamps) > 0 {
		if err := json.Unmarshal(r.Stamps, &d.Stamps); err != nil {
			return nil, err
		}
	}
	if d.Stamps == nil {
		d.Stamps = map[string]FieldStamp{}
	}
	return d, nil
}
