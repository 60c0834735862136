package service

import (
	"context"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"suratku_backend/internals/collection"
	"suratku_backend/internals/features/correspondence/numbering"
	"suratku_backend/internals/sheets"
)

// ResetOutcome menjelaskan apa yang dilakukan satu putaran reset.
type ResetOutcome string

const (
	ResetSkipped ResetOutcome = "skipped" // frekuensi never
	ResetStamped ResetOutcome = "stamped" // lastReset belum ada, hanya dicatat
	ResetSame    ResetOutcome = "same"    // masih di periode yang sama
	ResetDone    ResetOutcome = "reset"
)

// ResetSequence mengembalikan lastNumber ke 000 kalau periode (tahun/bulan) sudah berganti
// sejak lastReset. Nomor berikutnya tetap dihitung dari data surat pada periode berjalan.
func (s *Service) ResetSequence(ctx context.Context, now time.Time) (ResetOutcome, error) {
	set, err := s.store.GetSettings(ctx)
	if err != nil {
		return "", err
	}
	freq := numbering.ParseResetFrequency(set.String("resetFrequency"))
	if freq == numbering.ResetNever {
		return ResetSkipped, nil
	}

	stamp := now.Format(numbering.RawDateLayout)
	last, err := time.ParseInLocation(numbering.RawDateLayout, strings.TrimSpace(set.String("lastReset")), now.Location())
	if err != nil {
		_, err := s.store.UpdateSettings(ctx, sheets.Record{"lastReset": stamp})
		return ResetStamped, err
	}
	if freq.SamePeriod(last, now) {
		return ResetSame, nil
	}

	rec := collection.CoerceFields(sheets.Record{"lastNumber": "000", "lastReset": stamp}, "lastNumber")
	if _, err := s.store.UpdateSettings(ctx, rec); err != nil {
		return "", err
	}
	s.log.WithFields(logrus.Fields{"frequency": freq, "last_reset": last.Format(numbering.RawDateLayout)}).
		Info("[INFO] lastNumber di-reset")
	return ResetDone, nil
}

// StartResetCron menjadwalkan ResetSequence. Pemanggil wajib Stop() saat shutdown.
func (s *Service) StartResetCron(schedule string, loc *time.Location) (*cron.Cron, error) {
	if loc == nil {
		loc = time.Local
	}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		out, err := s.ResetSequence(ctx, time.Now().In(loc))
		if err != nil {
			s.log.WithError(err).Error("[RESET-JOB] gagal")
			return
		}
		s.log.WithField("outcome", out).Info("[RESET-JOB] selesai")
	})
	if err != nil {
		return nil, err
	}
	s.log.WithField("schedule", schedule).Info("[RESET-JOB] started")
	c.Start()
	return c, nil
}
