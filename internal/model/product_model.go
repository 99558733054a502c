package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Product struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code         string         `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name         string         `gorm:"type:varchar(255);not null"`
	Vertical     string         `gorm:"type:varchar(100);index"`
	SubVertical  string         `gorm:"type:varchar(100)"`
	Price        float64        `gorm:"type:decimal(10,2);not null"`
	Currency     string         `gorm:"type:varchar(10);not null"`
	DurationDays int            `gorm:"default:30"`
	IsAddon      bool           `gorm:"default:false"`
	IsActive     bool           `gorm:"default:true"`
	Constraints  datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}
