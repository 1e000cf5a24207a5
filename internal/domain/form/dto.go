package form

import "encoding/json"

type PublishSchemaDTO struct {
	Format Format          `json:"format"`
	Schema json.RawMessage `json:"schema" binding:"required"`
}

type ValidatePayloadDTO struct {
	Version int     `json:"version" binding:"required"`
	Payload Payload `json:"payload"`
}
