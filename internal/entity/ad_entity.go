package entity

import (
	"time"

	"github.com/google/uuid"
)

type AdStatus string

const (
	AdStatusPending   AdStatus = "pending"
	AdStatusPublished AdStatus = "published"
	AdStatusRejected  AdStatus = "rejected"
	AdStatusRemoved   AdStatus = "removed"
)

// Ad is collaborator data for bulk moderation: it resolves an ad id to its
// owning subscription and receives the bulk status update.
type Ad struct {
	Id             uuid.UUID
	SubscriptionId uuid.UUID
	UserId         uuid.UUID
	Title          string
	Category       string
	L1Category     string
	L2Category     string
	Status         AdStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
