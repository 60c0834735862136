package collection

import "suratku_backend/internals/sheets"

// BlankRow membuat baris kosong dengan kolom yang diberikan.
func BlankRow(fields []string) sheets.Record {
	rec := make(sheets.Record, len(fields))
	for _, f := range fields {
		rec[f] = ""
	}
	return rec
}

// PadTail menambahkan baris kosong sampai panjangnya minimal currentLen.
// Dipakai setiap replace-all: jumlah baris yang ditulis tidak boleh kurang dari
// jumlah baris yang tersimpan, kalau tidak ekor lama tetap hidup.
func PadTail(rows []sheets.Record, currentLen int, blank func() sheets.Record) []sheets.Record {
	out := make([]sheets.Record, len(rows), max(len(rows), currentLen))
	copy(out, rows)
	for len(out) < currentLen {
		out = append(out, blank())
	}
	return out
}
