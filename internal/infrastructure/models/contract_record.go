package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ContractRecord is a row of the resolution ledger
type ContractRecord struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	ChainID         int64          `gorm:"not null;index"`
	ContractAddress string         `gorm:"type:varchar(42);not null;index"`
	ContractType    string         `gorm:"type:varchar(32);not null;index"`
	RemoteName      string         `gorm:"type:varchar(64);not null"`
	Version         int16          `gorm:"type:smallint;not null"`
	ABIBand         string         `gorm:"column:abi_band;type:varchar(16);not null"`
	ABIAsset        string         `gorm:"column:abi_asset;type:varchar(64);not null"`
	Roles           pq.StringArray `gorm:"type:text[];default:'{}'"`
	ResolvedAt      time.Time      `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (ContractRecord) TableName() string {
	return "contract_records"
}
