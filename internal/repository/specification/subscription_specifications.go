package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserOwnedBy filters rows by their owning user
type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// ByStatus filters by subscription status
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByVertical filters by vertical classification
type ByVertical struct {
	Vertical string
}

func (s ByVertical) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("vertical = ?", s.Vertical)
}

// ByCompany filters by owning company
type ByCompany struct {
	CompanyID uuid.UUID
}

func (s ByCompany) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("company_id = ?", s.CompanyID)
}

// ActiveAt matches rows whose validity window covers the given instant.
type ActiveAt struct {
	At time.Time
}

func (s ActiveAt) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", "active").Where("end_date > ?", s.At)
}

// EndDateBefore matches rows whose end date has passed; used by the expiry sweep.
type EndDateBefore struct {
	At time.Time
}

func (s EndDateBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("end_date <= ?", s.At)
}

// BySubscriptionID filters ads by their owning subscription
type BySubscriptionID struct {
	SubscriptionID uuid.UUID
}

func (s BySubscriptionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("subscription_id = ?", s.SubscriptionID)
}
