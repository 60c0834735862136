package dto

import (
	"strings"

	"suratku_backend/internals/sheets"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// IssueOutgoingRequest: terbitkan 1 Induk + N Sub
type IssueOutgoingRequest struct {
	Tanggal     string   `json:"tanggal" validate:"required,datetime=2006-01-02"`
	Kode        string   `json:"kode" validate:"required,max=50"`
	Perihal     string   `json:"perihal" validate:"required,max=500"`
	Tujuan      string   `json:"tujuan" validate:"omitempty,max=255"`
	SubPerihals []string `json:"subPerihals" validate:"omitempty,max=50,dive,required,max=500"`
	FileURL     string   `json:"fileUrl" validate:"omitempty,url"`
	// nomor urut manual; kosong → dihitung dari data
	NomorUrut int `json:"nomorUrut" validate:"omitempty,min=1"`
}

// Normalize: trim & normalisasi dasar
func (r *IssueOutgoingRequest) Normalize() {
	r.Tanggal = strings.TrimSpace(r.Tanggal)
	r.Kode = strings.TrimSpace(r.Kode)
	r.Perihal = strings.TrimSpace(r.Perihal)
	r.Tujuan = strings.TrimSpace(r.Tujuan)
	r.FileURL = strings.TrimSpace(r.FileURL)
	for i := range r.SubPerihals {
		r.SubPerihals[i] = strings.TrimSpace(r.SubPerihals[i])
	}
}

// UpdateOutgoingRequest: partial update (pakai pointer agar bisa bedakan omit vs kosong)
type UpdateOutgoingRequest struct {
	ID      string  `json:"id" validate:"required"`
	Nomor   *string `json:"nomor,omitempty" validate:"omitempty,max=100"`
	Perihal *string `json:"perihal,omitempty" validate:"omitempty,max=500"`
	Tujuan  *string `json:"tujuan,omitempty" validate:"omitempty,max=255"`
	Tanggal *string `json:"tanggal,omitempty"`
	RawDate *string `json:"rawDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status  *string `json:"status,omitempty"`
	FileURL *string `json:"fileUrl,omitempty" validate:"omitempty,url"`
}

// ToRecord: hanya kolom yang dikirim yang ikut diperbarui
func (r *UpdateOutgoingRequest) ToRecord() sheets.Record {
	rec := sheets.Record{}
	set := func(key string, v *string) {
		if v != nil {
			rec[key] = strings.TrimSpace(*v)
		}
	}
	set("nomor", r.Nomor)
	set("perihal", r.Perihal)
	set("tujuan", r.Tujuan)
	set("tanggal", r.Tanggal)
	set("rawDate", r.RawDate)
	set("status", r.Status)
	set("fileUrl", r.FileURL)
	return rec
}

// DeleteRequest: body {id} (boleh juga ?id=)
type DeleteRequest struct {
	ID string `json:"id"`
}

// RedriveRequest: tulis ulang surat yang gagal
type RedriveRequest struct {
	IssuanceID string           `json:"issuance_id" validate:"required_without=Letters"`
	Letters    []map[string]any `json:"letters" validate:"omitempty,max=51"`
}

func (r *RedriveRequest) Records() []sheets.Record {
	out := make([]sheets.Record, 0, len(r.Letters))
	for _, l := range r.Letters {
		out = append(out, sheets.Record(l))
	}
	return out
}
