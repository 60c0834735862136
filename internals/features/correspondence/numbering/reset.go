package numbering

import (
	"strings"
	"time"

	"suratku_backend/internals/sheets"
)

// ResetFrequency menentukan kapan sequence kembali ke 1.
type ResetFrequency string

const (
	ResetYearly  ResetFrequency = "yearly"
	ResetMonthly ResetFrequency = "monthly"
	ResetNever   ResetFrequency = "never"
)

// ParseResetFrequency: nilai kosong atau tidak dikenal → never.
func ParseResetFrequency(s string) ResetFrequency {
	switch ResetFrequency(strings.ToLower(strings.TrimSpace(s))) {
	case ResetYearly:
		return ResetYearly
	case ResetMonthly:
		return ResetMonthly
	default:
		return ResetNever
	}
}

// Valid true untuk tiga nilai yang dikenal.
func (f ResetFrequency) Valid() bool {
	return f == ResetYearly || f == ResetMonthly || f == ResetNever
}

// SamePeriod true kalau a dan b jatuh di periode yang sama.
func (f ResetFrequency) SamePeriod(a, b time.Time) bool {
	switch f {
	case ResetYearly:
		return a.Year() == b.Year()
	case ResetMonthly:
		return a.Year() == b.Year() && a.Month() == b.Month()
	default:
		return true
	}
}

// PeriodStart mengembalikan awal periode yang memuat t.
func (f ResetFrequency) PeriodStart(t time.Time) time.Time {
	switch f {
	case ResetYearly:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	case ResetMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Time{}
	}
}

// Tanggal surat disimpan dua kali: rawDate (yyyy-mm-dd) dan tanggal (dd/mm/yyyy).
const (
	RawDateLayout  = "2006-01-02"
	DisplayLayout  = "02/01/2006"
	displayLayout1 = "2/1/2006"
)

// LetterDate membaca tanggal surat; rawDate diutamakan.
func LetterDate(r sheets.Record, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	if raw := strings.TrimSpace(r.String("rawDate")); raw != "" {
		if len(raw) > len(RawDateLayout) {
			raw = raw[:len(RawDateLayout)]
		}
		if t, err := time.ParseInLocation(RawDateLayout, raw, loc); err == nil {
			return t, true
		}
	}
	for _, key := range []string{"tanggal", "tanggalMasuk"} {
		s := strings.TrimSpace(r.String(key))
		if s == "" {
			continue
		}
		for _, layout := range []string{DisplayLayout, displayLayout1} {
			if t, err := time.ParseInLocation(layout, s, loc); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// FilterPeriod menyisakan surat yang periodenya sama dengan ref. Surat tanpa tanggal
// yang bisa dibaca tetap disertakan supaya sequence-nya tidak hilang dari perhitungan max.
func FilterPeriod(rows []sheets.Record, f ResetFrequency, ref time.Time) []sheets.Record {
	if f == ResetNever || f == "" {
		return rows
	}
	out := make([]sheets.Record, 0, len(rows))
	for _, r := range rows {
		d, ok := LetterDate(r, ref.Location())
		if !ok || f.SamePeriod(d, ref) {
			out = append(out, r)
		}
	}
	return out
}

// Nomors mengambil kolom nomor dari daftar surat.
func Nomors(rows []sheets.Record) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.String("nomor"))
	}
	return out
}
