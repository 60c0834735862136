package service

import (
	"context"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jszwec/csvutil"

	"suratku_backend/internals/apperror"
	"suratku_backend/internals/collection"
	"suratku_backend/internals/features/correspondence/numbering"
	"suratku_backend/internals/sheets"
)

type AgendaType string

const (
	AgendaMasuk  AgendaType = "masuk"
	AgendaKeluar AgendaType = "keluar"
)

func ParseAgendaType(s string) (AgendaType, error) {
	switch AgendaType(strings.ToLower(strings.TrimSpace(s))) {
	case "", AgendaMasuk:
		return AgendaMasuk, nil
	case AgendaKeluar:
		return AgendaKeluar, nil
	}
	return "", apperror.Invalid("type", "type harus masuk atau keluar")
}

// Header kop buku agenda; nilai kosong diisi default.
type Header struct {
	NamaSekolah      string `json:"namaSekolah"`
	KabupatenSekolah string `json:"kabupatenSekolah"`
	NamaKepsek       string `json:"namaKepsek"`
	NipKepsek        string `json:"nipKepsek"`
	Periode          string `json:"periode"`
}

// Entry adalah satu baris buku agenda.
type Entry struct {
	No      int    `json:"no" csv:"No"`
	Nomor   string `json:"nomor" csv:"Nomor Surat"`
	Tanggal string `json:"tanggal" csv:"Tanggal"`
	Pihak   string `json:"pihak" csv:"Pengirim/Tujuan"`
	Perihal string `json:"perihal" csv:"Perihal"`
	Ket     string `json:"ket" csv:"Ket"`
}

type Agenda struct {
	Type    AgendaType `json:"type"`
	Header  Header     `json:"header"`
	Entries []Entry    `json:"entries"`
}

// AgendaFilter: From/To inklusif; zero berarti tanpa batas.
type AgendaFilter struct {
	Type AgendaType
	From time.Time
	To   time.Time
}

var defaultHeader = Header{
	NamaSekolah:      "SD NEGERI 2 PALANGKA RAYA",
	KabupatenSekolah: "Palangka Raya",
}

func headerFrom(set sheets.Record) Header {
	set = collection.UnmarkFields(set.Clone(), collection.SettingsTextFields...)
	h := defaultHeader
	pick := func(dst *string, key string) {
		if v := strings.TrimSpace(set.String(key)); v != "" {
			*dst = v
		}
	}
	pick(&h.NamaSekolah, "namaSekolah")
	pick(&h.KabupatenSekolah, "kabupatenSekolah")
	pick(&h.NamaKepsek, "namaKepsek")
	pick(&h.NipKepsek, "nipKepsek")
	return h
}

func periodLabel(f AgendaFilter) string {
	switch {
	case f.From.IsZero() && f.To.IsZero():
		return "Semua"
	case f.To.IsZero():
		return "Sejak " + f.From.Format(numbering.DisplayLayout)
	case f.From.IsZero():
		return "s.d. " + f.To.Format(numbering.DisplayLayout)
	}
	return f.From.Format(numbering.DisplayLayout) + " - " + f.To.Format(numbering.DisplayLayout)
}

// Agenda menyusun buku agenda surat masuk/keluar, urut tanggal lalu nomor.
func (s *Service) Agenda(ctx context.Context, f AgendaFilter) (*Agenda, error) {
	set, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	col := s.incoming
	if f.Type == AgendaKeluar {
		col = s.outgoing
	}
	rows, err := col.List(ctx)
	if err != nil {
		return nil, err
	}

	type dated struct {
		rec  sheets.Record
		date time.Time
	}
	kept := make([]dated, 0, len(rows))
	for _, r := range rows {
		d, ok := numbering.LetterDate(r, s.loc)
		if !f.From.IsZero() && (!ok || d.Before(f.From)) {
			continue
		}
		if !f.To.IsZero() && (!ok || d.After(f.To)) {
			continue
		}
		kept = append(kept, dated{rec: r, date: d})
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if !kept[i].date.Equal(kept[j].date) {
			return kept[i].date.Before(kept[j].date)
		}
		return kept[i].rec.String("nomor") < kept[j].rec.String("nomor")
	})

	ag := &Agenda{Type: f.Type, Header: headerFrom(set), Entries: make([]Entry, 0, len(kept))}
	ag.Header.Periode = periodLabel(f)
	for i, k := range kept {
		e := Entry{
			No:      i + 1,
			Nomor:   k.rec.String("nomor"),
			Perihal: k.rec.String("perihal"),
			Ket:     k.rec.String("status"),
		}
		if !k.date.IsZero() {
			e.Tanggal = k.date.Format(numbering.DisplayLayout)
		}
		if f.Type == AgendaKeluar {
			e.Pihak = k.rec.String("tujuan")
		} else {
			e.Pihak = k.rec.String("pengirim")
		}
		ag.Entries = append(ag.Entries, e)
	}
	return ag, nil
}

// WriteCSV menulis entri agenda sebagai CSV dengan header kolom.
func WriteCSV(w io.Writer, entries []Entry) error {
	b, err := csvutil.Marshal(entries)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
