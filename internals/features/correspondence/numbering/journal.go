package numbering

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"suratku_backend/internals/apperror"
	"suratku_backend/internals/features/correspondence/numbering/model"
)

// Journal menyimpan riwayat penerbitan nomor supaya tulisan yang gagal bisa di-redrive.
type Journal interface {
	Save(ctx context.Context, m *model.NumberIssuanceModel) error
	Get(ctx context.Context, id uuid.UUID) (*model.NumberIssuanceModel, error)
}

// NopJournal dipakai kalau database tidak dikonfigurasi.
type NopJournal struct{}

func (NopJournal) Save(context.Context, *model.NumberIssuanceModel) error { return nil }

func (NopJournal) Get(_ context.Context, id uuid.UUID) (*model.NumberIssuanceModel, error) {
	return nil, &apperror.NotFoundError{Collection: "number_issuances", Key: id.String()}
}

// GormJournal menyimpan jurnal di Postgres.
type GormJournal struct {
	DB *gorm.DB
}

func NewGormJournal(db *gorm.DB) *GormJournal {
	return &GormJournal{DB: db}
}

// Save melakukan upsert berdasarkan primary key.
func (j *GormJournal) Save(ctx context.Context, m *model.NumberIssuanceModel) error {
	if m.NumberIssuanceID == uuid.Nil {
		m.NumberIssuanceID = uuid.New()
	}
	return j.DB.WithContext(ctx).Save(m).Error
}

func (j *GormJournal) Get(ctx context.Context, id uuid.UUID) (*model.NumberIssuanceModel, error) {
	var m model.NumberIssuanceModel
	err := j.DB.WithContext(ctx).First(&m, "number_issuance_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperror.NotFoundError{Collection: "number_issuances", Key: id.String()}
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
