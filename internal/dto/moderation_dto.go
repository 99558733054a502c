package dto

import (
	"github.com/google/uuid"
)

type BulkEditAdsRequest struct {
	AdIds  []uuid.UUID `json:"ad_ids" validate:"required,min=1"`
	Action string      `json:"action" validate:"required"`
}

// RejectedGroup is one subscription whose whole ad group was refused
// admission; none of its ads were updated.
type RejectedGroup struct {
	SubscriptionId uuid.UUID   `json:"subscription_id"`
	AdIds          []uuid.UUID `json:"ad_ids"`
	Reason         string      `json:"reason"`
}

type BulkEditAdsResponse struct {
	Summary         string          `json:"summary"` // "N of M succeeded"
	TotalRequested  int             `json:"total_requested"`
	TotalSucceeded  int             `json:"total_succeeded"`
	UpdatedAdIds    []uuid.UUID     `json:"updated_ad_ids"`
	RejectedGroups  []RejectedGroup `json:"rejected_groups,omitempty"`
	RecordFailures  int             `json:"record_failures"`
	UnresolvedAdIds []uuid.UUID     `json:"unresolved_ad_ids,omitempty"`
}
