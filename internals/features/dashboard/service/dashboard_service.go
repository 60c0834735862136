// Package service menyusun ringkasan dashboard dan buku agenda surat.
package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"suratku_backend/internals/collection"
	"suratku_backend/internals/features/correspondence/numbering"
	"suratku_backend/internals/sheets"
)

type Store interface {
	collection.Store
	GetSettings(ctx context.Context) (sheets.Record, error)
}

type Service struct {
	store    Store
	users    *collection.Collection
	incoming *collection.Collection
	outgoing *collection.Collection
	loc      *time.Location
}

func New(store Store, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		store:    store,
		users:    collection.New(store, collection.UsersSpec),
		incoming: collection.New(store, collection.IncomingSpec),
		outgoing: collection.New(store, collection.OutgoingSpec),
		loc:      loc,
	}
}

type Summary struct {
	TotalUsers          int `json:"totalUsers"`
	TotalSuratMasuk     int `json:"totalSuratMasuk"`
	TotalSuratKeluar    int `json:"totalSuratKeluar"`
	SuratMasukBulanIni  int `json:"suratMasukBulanIni"`
	SuratKeluarBulanIni int `json:"suratKeluarBulanIni"`
	SuratBulanIni       int `json:"suratBulanIni"`
}

// fetchAll membaca tiga koleksi bersamaan; error pertama yang dikembalikan.
func (s *Service) fetchAll(ctx context.Context, cols ...*collection.Collection) ([][]sheets.Record, error) {
	out := make([][]sheets.Record, len(cols))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range cols {
		i, c := i, c
		g.Go(func() error {
			rows, err := c.List(gctx)
			out[i] = rows
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Summary menghitung total per koleksi dan surat bulan berjalan (berdasarkan tanggal surat).
func (s *Service) Summary(ctx context.Context, now time.Time) (*Summary, error) {
	res, err := s.fetchAll(ctx, s.users, s.incoming, s.outgoing)
	if err != nil {
		return nil, err
	}
	users, in, out := res[0], res[1], res[2]
	now = now.In(s.loc)

	sum := &Summary{
		TotalUsers:          len(users),
		TotalSuratMasuk:     len(in),
		TotalSuratKeluar:    len(out),
		SuratMasukBulanIni:  s.countMonth(in, now),
		SuratKeluarBulanIni: s.countMonth(out, now),
	}
	sum.SuratBulanIni = sum.SuratMasukBulanIni + sum.SuratKeluarBulanIni
	return sum, nil
}

func (s *Service) countMonth(rows []sheets.Record, now time.Time) int {
	n := 0
	for _, r := range rows {
		if d, ok := numbering.LetterDate(r, s.loc); ok && numbering.ResetMonthly.SamePeriod(d, now) {
			n++
		}
	}
	return n
}
