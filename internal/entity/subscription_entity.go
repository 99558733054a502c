// FILE: internal/entity/subscription_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubscriptionStatusPaymentPending SubscriptionStatus = "payment_pending"
	SubscriptionStatusActive         SubscriptionStatus = "active"
	SubscriptionStatusExpired        SubscriptionStatus = "expired"
	SubscriptionStatusCancelled      SubscriptionStatus = "cancelled"
	SubscriptionStatusSuspended      SubscriptionStatus = "suspended"
)

// Subscription is the actor-owned entity. The actor for a given id is the
// sole mutator; the relational mirror row is written by the actor after each
// successful state change and is read-only to every other component.
type Subscription struct {
	Id           uuid.UUID
	ProductCode  string
	UserId       uuid.UUID
	CompanyId    *uuid.UUID
	Vertical     string
	SubVertical  string
	Price        float64
	Currency     string
	StartDate    time.Time
	EndDate      time.Time
	Status       SubscriptionStatus
	Quota        SubscriptionQuota
	FreeAdsQuota FreeAdsSubscriptionQuota
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive reports whether the subscription is usable right now.
func (s *Subscription) IsActive() bool {
	return s.Status == SubscriptionStatusActive && s.EndDate.After(time.Now())
}

// Addon optionally references a parent subscription and carries its own
// quota, metered independently.
type Addon struct {
	Id                   uuid.UUID
	ProductCode          string
	UserId               uuid.UUID
	ParentSubscriptionId *uuid.UUID
	Vertical             string
	Price                float64
	Currency             string
	StartDate            time.Time
	EndDate              time.Time
	Status               SubscriptionStatus
	Quota                SubscriptionQuota
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (a *Addon) IsActive() bool {
	return a.Status == SubscriptionStatusActive && a.EndDate.After(time.Now())
}
