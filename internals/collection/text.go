package collection

import (
	"strings"

	"suratku_backend/internals/sheets"
)

// TextMarker memaksa spreadsheet memperlakukan nilai sebagai teks literal
// (nol di depan tetap ada, angka panjang tidak jadi notasi ilmiah).
const TextMarker = "'"

// CoerceText menandai nilai sebagai teks. Nilai kosong dibiarkan; nilai yang sudah
// bertanda tidak diubah, sehingga CoerceText(CoerceText(v)) == CoerceText(v).
func CoerceText(v any) any {
	s := sheets.Stringify(v)
	if s == "" {
		return v
	}
	if strings.HasPrefix(s, TextMarker) {
		return s
	}
	return TextMarker + s
}

// UnmarkText membuang penanda teks untuk perbandingan dan rendering.
func UnmarkText(s string) string {
	return strings.TrimPrefix(strings.TrimSpace(s), TextMarker)
}

// CoerceFields menandai kolom-kolom teks pada rec (in place) dan mengembalikannya.
func CoerceFields(rec sheets.Record, fields ...string) sheets.Record {
	for _, f := range fields {
		if v, ok := rec[f]; ok {
			rec[f] = CoerceText(v)
		}
	}
	return rec
}

// UnmarkFields membuang penanda teks dari kolom string pada rec (in place).
func UnmarkFields(rec sheets.Record, fields ...string) sheets.Record {
	for _, f := range fields {
		if s, ok := rec[f].(string); ok {
			rec[f] = UnmarkText(s)
		}
	}
	return rec
}
