// internal/models/audit.go
package models

import "github.com/google/uuid"

// AuditLog records every mutating API request for operational forensics. It
// is plumbing around the ledger, not part of it: the ledger's own observable
// history is the LedgerEvent feed.
type AuditLog struct {
	BaseModel
	UserID       *uuid.UUID `json:"user_id" gorm:"type:uuid;index"`
	Action       string     `json:"action" gorm:"size:255;not null"`
	ResourceType string     `json:"resource_type" gorm:"size:50;index"`
	ResourceID   string     `json:"resource_id" gorm:"size:64;index"`
	IPAddress    string     `json:"ip_address" gorm:"size:45"`
	UserAgent    string     `json:"user_agent" gorm:"size:512"`
	NewValues    JSONB      `json:"new_values" gorm:"type:jsonb"`
}
