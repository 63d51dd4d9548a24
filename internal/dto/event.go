package dto

import (
	"github.com/GregMSThompson/accounts-backend/internal/models"
)

// ProfileChangeEvent is one committed write to a profile document, as
// delivered by the store's change feed. Delivered at most once per write,
// with no ordering guarantee across keys. After is nil when the document
// no longer exists (delete).
type ProfileChangeEvent struct {
	UID    string          `json:"uid"`
	Before *models.Profile `json:"before,omitempty"`
	After  *models.Profile `json:"after,omitempty"`
}
