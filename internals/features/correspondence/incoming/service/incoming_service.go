// Package service mencatat surat masuk. Nomor surat masuk disimpan apa adanya
// (nomor dari pengirim), tidak dihitung oleh mesin penomoran.
package service

import (
	"context"
	"strings"
	"time"

	"suratku_backend/internals/apperror"
	"suratku_backend/internals/collection"
	"suratku_backend/internals/constants"
	"suratku_backend/internals/features/correspondence/numbering"
	"suratku_backend/internals/session"
	"suratku_backend/internals/sheets"
)

type Service struct {
	letters *collection.Collection
}

func New(store collection.Store) *Service {
	return &Service{letters: collection.New(store, collection.IncomingSpec)}
}

// Letter adalah input pencatatan satu surat masuk.
type Letter struct {
	Nomor        string
	Kode         string
	TanggalMasuk time.Time
	Pengirim     string
	Perihal      string
	FileURL      string
}

func (s *Service) List(ctx context.Context) ([]sheets.Record, error) {
	return s.letters.List(ctx)
}

// Create mencatat surat masuk dengan penginput = actor dan status Archived.
func (s *Service) Create(ctx context.Context, actor session.Actor, l Letter) (sheets.Record, error) {
	if !actor.Valid() {
		return nil, apperror.Invalid("penginput", "actor wajib diisi")
	}
	if strings.TrimSpace(l.Nomor) == "" {
		return nil, apperror.Invalid("nomor", "nomor surat wajib diisi")
	}
	if l.TanggalMasuk.IsZero() {
		return nil, apperror.Invalid("tanggalMasuk", "tanggal masuk wajib diisi")
	}

	rec := sheets.Record{
		"nomor":        strings.TrimSpace(l.Nomor),
		"kode":         strings.TrimSpace(l.Kode),
		"tanggalMasuk": l.TanggalMasuk.Format(numbering.DisplayLayout),
		"rawDate":      l.TanggalMasuk.Format(numbering.RawDateLayout),
		"pengirim":     strings.TrimSpace(l.Pengirim),
		"perihal":      strings.TrimSpace(l.Perihal),
		"penginput":    actor.Name,
		"status":       constants.StatusArchived,
		"fileUrl":      strings.TrimSpace(l.FileURL),
	}
	id, err := s.letters.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	rec["id"] = id
	return rec, nil
}

func (s *Service) Update(ctx context.Context, id string, fields sheets.Record) (sheets.Record, error) {
	fields = fields.Clone()
	delete(fields, "id")
	return s.letters.Update(ctx, id, fields)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.letters.Delete(ctx, id)
}
