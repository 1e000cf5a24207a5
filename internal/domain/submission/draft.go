package submission

import (
	"time"

	"github.com/linskybing/dynamic-forms/internal/domain/form"
)

type Source string

const (
	SourceLocal  Source = "local"
	SourceServer Source = "server"
)

// FieldStamp orders edits of one field: client timestamp first, then the
// server arrival sequence.
type FieldStamp struct {
	At  time.Time `json:"at"`
	Seq int64     `json:"seq"`
}

func (a FieldStamp) After(b FieldStamp) bool {
	if !a.At.Equal(b.At) {
		return a.At.After(b.At)
	}
	return a.Seq > b.Seq
}

// DraftRecord is the single active partial payload of one owner for one form.
type DraftRecord struct {
	OwnerID       string                `json:"ownerId"`
	FormID        string                `json:"formId"`
	SchemaVersion int                   `json:"schemaVersion"`
	Payload       form.Payload          `json:"payload"`
	Stamps        map[string]FieldStamp `json:"stamps"`
	LastSavedAt   time.Time             `json:"lastSavedAt"`
	SourceOfTruth Source                `json:"sourceOfTruth"`
	Revision      int64                 `json:"revision"`
	CreatedAt     time.Time             `json:"createdAt"`
}

func (d *DraftRecord) Clone() *DraftRecord {
	out := *d
	out.Payload = d.Payload.Clone()
	out.Stamps = make(map[string]FieldStamp, len(d.Stamps))
	for k, v := range d.Stamps {
		out.Stamps[k] = v
	}
	return &out
}

// DraftEdit is one autosave: the keys the client touched, stamped with the
// client's clock.
type DraftEdit struct {
	OwnerID         string
	FormID          string
	SchemaVersion   int
	Payload         form.Payload
	ClientTimestamp time.Time
	Source          Source
	ReceivedAt      time.Time
}

// MergeDraft folds edit into current field by field. A field takes the
// edited value only if the edit's stamp is after the stored one; ties on
// the client timestamp go to the later arrival. current may be nil.
func MergeDraft(current *DraftRecord, edit DraftEdit) *DraftRecord {
	var next *DraftRecord
	if current == nil {
		next = &DraftRecord{
			OwnerID:       edit.OwnerID,
			FormID:        edit.FormID,
			SchemaVersion: edit.SchemaVersion,
			Payload:       form.Payload{},
			Stamps:        map[string]FieldStamp{},
			SourceOfTruth: edit.Source,
			CreatedAt:     edit.ReceivedAt,
		}
	} else {
		next = current.Clone()
	}

	stamp := FieldStamp{At: edit.ClientTimestamp, Seq: next.Revision + 1}
	won := false
	for key, v := range edit.Payload {
		prev, ok := next.Stamps[key]
		if ok && !stamp.After(prev) {
			continue
		}
		next.Payload[key] = v.Clone()
		next.Stamps[key] = stamp
		won = true
	}
	if won && edit.Source != "" {
		next.SourceOfTruth = edit.Source
	}
	if edit.SchemaVersion > next.SchemaVersion {
		next.SchemaVersion = edit.SchemaVersion
	}
	next.LastSavedAt = edit.ReceivedAt
	return next
}
