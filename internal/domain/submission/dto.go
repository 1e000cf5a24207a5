package submission

import (
	"time"

	"github.com/linskybing/dynamic-forms/internal/domain/form"
)

type SaveDraftDTO struct {
	SchemaVersion   int          `json:"schemaVersion" binding:"required"`
	Payload         form.Payload `json:"payload"`
	ClientTimestamp time.Time    `json:"clientTimestamp" binding:"required"`
	Source          Source       `json:"source"`
}

type UpdateStatusDTO struct {
	State    State  `json:"state" binding:"required"`
	Revision int64  `json:"revision" binding:"required"`
	Notes    string `json:"notes"`
}

type UpdatePayloadDTO struct {
	Revision int64        `json:"revision" binding:"required"`
	Payload  form.Payload `json:"payload" binding:"required"`
}
