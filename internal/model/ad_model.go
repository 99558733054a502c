package model

import (
	"time"

	"github.com/google/uuid"
)

type Ad struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SubscriptionId uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId         uuid.UUID `gorm:"type:uuid;not null;index"`
	Title          string    `gorm:"type:varchar(255)"`
	Category       string    `gorm:"type:varchar(100);index"`
	L1Category     string    `gorm:"type:varchar(100)"`
	L2Category     string    `gorm:"type:varchar(100)"`
	Status         string    `gorm:"type:varchar(50);not null;index"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (Ad) TableName() string {
	return "ads"
}
