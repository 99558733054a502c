package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Subscription struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductCode  string         `gorm:"type:varchar(100);not null;index"`
	UserId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	CompanyId    *uuid.UUID     `gorm:"type:uuid;index"`
	Vertical     string         `gorm:"type:varchar(100);index"`
	SubVertical  string         `gorm:"type:varchar(100)"`
	Price        float64        `gorm:"type:decimal(10,2);not null"`
	Currency     string         `gorm:"type:varchar(10);not null"`
	StartDate    time.Time      `gorm:"not null"`
	EndDate      time.Time      `gorm:"not null;index"`
	Status       string         `gorm:"type:varchar(50);not null;index"`
	Quota        datatypes.JSON `gorm:"type:jsonb"`
	FreeAdsQuota datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

type Addon struct {
	Id                   uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductCode          string         `gorm:"type:varchar(100);not null;index"`
	UserId               uuid.UUID      `gorm:"type:uuid;not null;index"`
	ParentSubscriptionId *uuid.UUID     `gorm:"type:uuid;index"`
	Vertical             string         `gorm:"type:varchar(100);index"`
	Price                float64        `gorm:"type:decimal(10,2);not null"`
	Currency             string         `gorm:"type:varchar(10);not null"`
	StartDate            time.Time      `gorm:"not null"`
	EndDate              time.Time      `gorm:"not null;index"`
	Status               string         `gorm:"type:varchar(50);not null;index"`
	Quota                datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt            time.Time      `gorm:"autoCreateTime"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime"`
}

func (Addon) TableName() string {
	return "addons"
}
