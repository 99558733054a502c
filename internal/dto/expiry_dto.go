package dto

import (
	"time"

	"github.com/google/uuid"
)

// ExpiryCandidateMessage travels on the internal expiry topic between the
// sweep and its consumer.
type ExpiryCandidateMessage struct {
	EntityType  string    `json:"entity_type"` // "subscription" or "addon"
	EntityId    uuid.UUID `json:"entity_id"`
	UserId      uuid.UUID `json:"user_id"`
	ProductCode string    `json:"product_code"`
	EndDate     time.Time `json:"end_date"`
}
