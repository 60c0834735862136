package dto

import (
	"strings"

	"suratku_backend/internals/sheets"
)

// CreateIncomingRequest: catat surat masuk
type CreateIncomingRequest struct {
	Nomor        string `json:"nomor" validate:"required,max=100"`
	Kode         string `json:"kode" validate:"omitempty,max=50"`
	TanggalMasuk string `json:"tanggalMasuk" validate:"required,datetime=2006-01-02"`
	Pengirim     string `json:"pengirim" validate:"required,max=255"`
	Perihal      string `json:"perihal" validate:"required,max=500"`
	FileURL      string `json:"fileUrl" validate:"omitempty,url"`
}

func (r *CreateIncomingRequest) Normalize() {
	r.Nomor = strings.TrimSpace(r.Nomor)
	r.Kode = strings.TrimSpace(r.Kode)
	r.TanggalMasuk = strings.TrimSpace(r.TanggalMasuk)
	r.Pengirim = strings.TrimSpace(r.Pengirim)
	r.Perihal = strings.TrimSpace(r.Perihal)
	r.FileURL = strings.TrimSpace(r.FileURL)
}

// UpdateIncomingRequest: partial update
type UpdateIncomingRequest struct {
	ID           string  `json:"id" validate:"required"`
	Nomor        *string `json:"nomor,omitempty" validate:"omitempty,max=100"`
	Kode         *string `json:"kode,omitempty" validate:"omitempty,max=50"`
	TanggalMasuk *string `json:"tanggalMasuk,omitempty"`
	RawDate      *string `json:"rawDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Pengirim     *string `json:"pengirim,omitempty" validate:"omitempty,max=255"`
	Perihal      *string `json:"perihal,omitempty" validate:"omitempty,max=500"`
	FileURL      *string `json:"fileUrl,omitempty" validate:"omitempty,url"`
}

func (r *UpdateIncomingRequest) ToRecord() sheets.Record {
	rec := sheets.Record{}
	set := func(key string, v *string) {
		if v != nil {
			rec[key] = strings.TrimSpace(*v)
		}
	}
	set("nomor", r.Nomor)
	set("kode", r.Kode)
	set("tanggalMasuk", r.TanggalMasuk)
	set("rawDate", r.RawDate)
	set("pengirim", r.Pengirim)
	set("perihal", r.Perihal)
	set("fileUrl", r.FileURL)
	return rec
}

// DeleteRequest: body {id} (boleh juga ?id=)
type DeleteRequest struct {
	ID string `json:"id"`
}
