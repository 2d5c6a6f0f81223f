// internal/models/metadata.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// MetadataAsset tracks a metadata file or artwork uploaded by a seller before
// edition creation; its URL becomes the edition's token URI.
type MetadataAsset struct {
	BaseModel
	UploaderID uuid.UUID      `json:"uploader_id" gorm:"type:uuid;not null;index"`
	Key        string         `json:"key" gorm:"size:512;not null"`
	URL        string         `json:"url" gorm:"size:2048;not null"`
	MimeType   string         `json:"mime_type" gorm:"size:100"`
	Size       int64          `json:"size"`
	Tags       pq.StringArray `json:"tags" gorm:"type:text[]"`
}
