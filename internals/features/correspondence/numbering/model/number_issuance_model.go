package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Status jurnal penerbitan nomor.
const (
	IssuanceComplete = "complete"
	IssuancePartial  = "partial"
	IssuanceFailed   = "failed"
)

// NumberIssuanceModel mencatat satu operasi penerbitan (Induk + Sub) beserta hasil tiap tulisan.
type NumberIssuanceModel struct {
	NumberIssuanceID       uuid.UUID      `json:"number_issuance_id" gorm:"type:uuid;primaryKey;column:number_issuance_id"`
	NumberIssuanceSequence int            `json:"number_issuance_sequence" gorm:"not null;column:number_issuance_sequence"`
	NumberIssuanceNumbers  pq.StringArray `json:"number_issuance_numbers" gorm:"type:text[];not null;column:number_issuance_numbers"`
	NumberIssuanceActor    string         `json:"number_issuance_actor" gorm:"type:text;not null;column:number_issuance_actor"`
	NumberIssuanceDate     time.Time      `json:"number_issuance_date" gorm:"type:date;column:number_issuance_date"`
	NumberIssuanceStatus   string         `json:"number_issuance_status" gorm:"type:varchar(16);not null;index;column:number_issuance_status"`

	// baris surat yang direncanakan, urut sesuai Results
	NumberIssuanceLetters datatypes.JSON `json:"number_issuance_letters" gorm:"type:jsonb;not null;default:'[]';column:number_issuance_letters"`
	NumberIssuanceResults datatypes.JSON `json:"number_issuance_results" gorm:"type:jsonb;not null;default:'[]';column:number_issuance_results"`

	NumberIssuanceCreatedAt time.Time `json:"number_issuance_created_at" gorm:"column:number_issuance_created_at;autoCreateTime"`
	NumberIssuanceUpdatedAt time.Time `json:"number_issuance_updated_at" gorm:"column:number_issuance_updated_at;autoUpdateTime"`
}

func (NumberIssuanceModel) TableName() string { return "number_issuances" }
