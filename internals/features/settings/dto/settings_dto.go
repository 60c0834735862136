package dto

import (
	"strings"

	"suratku_backend/internals/sheets"
)

// SettingsRequest: kolom yang dikenal divalidasi; kolom lain ikut diteruskan apa adanya
type SettingsRequest struct {
	NamaSekolah      string `json:"namaSekolah" validate:"omitempty,max=255"`
	KabupatenSekolah string `json:"kabupatenSekolah" validate:"omitempty,max=255"`
	TeleponSekolah   string `json:"teleponSekolah" validate:"omitempty,max=30"`
	KodeInstansi     string `json:"kodeInstansi" validate:"omitempty,max=100"`
	NamaKepsek       string `json:"namaKepsek" validate:"omitempty,max=255"`
	NipKepsek        string `json:"nipKepsek" validate:"omitempty,max=30"`
	NamaAdmin        string `json:"namaAdmin" validate:"omitempty,max=255"`
	UsernameAdmin    string `json:"usernameAdmin" validate:"omitempty,max=100"`
	HpAdmin          string `json:"hpAdmin" validate:"omitempty,max=30"`
	JabatanAdmin     string `json:"jabatanAdmin" validate:"omitempty,max=100"`
	FotoProfil       string `json:"fotoProfil" validate:"omitempty,url"`
	ResetFrequency   string `json:"resetFrequency" validate:"omitempty,oneof=yearly monthly never"`
}

// FromBody: ambil field yang dikenal untuk validasi dari map mentah
func FromBody(body map[string]any) SettingsRequest {
	get := func(k string) string { return strings.TrimSpace(sheets.Stringify(body[k])) }
	return SettingsRequest{
		NamaSekolah:      get("namaSekolah"),
		KabupatenSekolah: get("kabupatenSekolah"),
		TeleponSekolah:   get("teleponSekolah"),
		KodeInstansi:     get("kodeInstansi"),
		NamaKepsek:       get("namaKepsek"),
		NipKepsek:        get("nipKepsek"),
		NamaAdmin:        get("namaAdmin"),
		UsernameAdmin:    get("usernameAdmin"),
		HpAdmin:          get("hpAdmin"),
		JabatanAdmin:     get("jabatanAdmin"),
		FotoProfil:       get("fotoProfil"),
		ResetFrequency:   strings.ToLower(get("resetFrequency")),
	}
}

// ToRecord: semua kolom string di-trim; kolom internal tidak boleh ditulis dari luar
func ToRecord(body map[string]any) sheets.Record {
	rec := sheets.Record{}
	for k, v := range body {
		switch k {
		case "id", "lastReset":
			continue
		}
		if s, ok := v.(string); ok {
			v = strings.TrimSpace(s)
		}
		rec[k] = v
	}
	if v, ok := rec["resetFrequency"].(string); ok {
		rec["resetFrequency"] = strings.ToLower(v)
	}
	return rec
}
