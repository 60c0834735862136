// Package service menerbitkan nomor surat keluar dan menulis suratnya ke store.
//
// Penerbitan Induk + Sub dijalankan sebagai saga: setiap surat adalah satu tulisan
// independen dengan hasilnya sendiri. Tulisan yang sudah sukses tidak di-rollback;
// yang gagal bisa dikirim ulang lewat Redrive.
package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"suratku_backend/internals/apperror"
	"suratku_backend/internals/collection"
	"suratku_backend/internals/constants"
	"suratku_backend/internals/features/correspondence/numbering"
	"suratku_backend/internals/features/correspondence/numbering/model"
	"suratku_backend/internals/session"
	"suratku_backend/internals/sheets"
)

// DefaultOrgCode dipakai kalau settings belum punya kodeInstansi.
const DefaultOrgCode = "/DIK-SDN2PLP/"

// LockKey adalah nama kunci untuk langkah baca-max-lalu-tulis.
const LockKey = "surat_keluar:sequence"

// Store adalah bagian Gateway yang dipakai service ini.
type Store interface {
	collection.Store
	GetSettings(ctx context.Context) (sheets.Record, error)
	UpdateSettings(ctx context.Context, rec sheets.Record) (sheets.Record, error)
}

// Options mengatur dependensi opsional.
type Options struct {
	Engine         *numbering.Engine
	Locker         numbering.Locker
	Journal        numbering.Journal
	Location       *time.Location
	DefaultOrgCode string
	Log            *logrus.Logger
}

type Service struct {
	store   Store
	letters *collection.Collection
	engine  *numbering.Engine
	locker  numbering.Locker
	journal numbering.Journal
	loc     *time.Location
	orgCode string
	log     *logrus.Logger
}

func New(store Store, opt Options) *Service {
	s := &Service{
		store:   store,
		letters: collection.New(store, collection.OutgoingSpec),
		engine:  opt.Engine,
		locker:  opt.Locker,
		journal: opt.Journal,
		loc:     opt.Location,
		orgCode: opt.DefaultOrgCode,
		log:     opt.Log,
	}
	if s.engine == nil {
		s.engine = numbering.Default
	}
	if s.locker == nil {
		s.locker = numbering.NoLock{}
	}
	if s.journal == nil {
		s.journal = numbering.NopJournal{}
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.orgCode == "" {
		s.orgCode = DefaultOrgCode
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	return s
}

/* =========================
   Read
========================= */

func (s *Service) List(ctx context.Context) ([]sheets.Record, error) {
	return s.letters.List(ctx)
}

// Verify mencari surat berdasarkan nomor; spasi dan huruf besar/kecil diabaikan.
func (s *Service) Verify(ctx context.Context, nomor string) (sheets.Record, error) {
	want := normalizeNomor(nomor)
	if want == "" {
		return nil, apperror.Invalid("nomor", "nomor wajib diisi")
	}
	rows, err := s.letters.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		if normalizeNomor(r.String("nomor")) == want {
			return r, nil
		}
	}
	return nil, &apperror.NotFoundError{Collection: collection.OutgoingSpec.Sheet.Name, Key: nomor}
}

func normalizeNomor(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(collection.UnmarkText(s)), ""))
}

/* =========================
   Numbering
========================= */

// PreviewRequest: tanggal + kode klasifikasi + jumlah sub.
type PreviewRequest struct {
	Tanggal time.Time
	Kode    string
	Sub     int
}

// Preview adalah nomor yang akan diterbitkan kalau issue dijalankan sekarang.
type Preview struct {
	numbering.Number
	OrgCode        string              `json:"org_code"`
	ResetFrequency string              `json:"reset_frequency"`
	Planned        []numbering.Planned `json:"planned"`
}

// settingsView adalah bagian settings yang dibutuhkan penomoran.
type settingsView struct {
	orgCode string
	reset   numbering.ResetFrequency
}

func (s *Service) readSettings(ctx context.Context) (settingsView, error) {
	rec, err := s.store.GetSettings(ctx)
	if err != nil {
		return settingsView{}, err
	}
	v := settingsView{
		orgCode: strings.TrimSpace(rec.String("kodeInstansi")),
		reset:   numbering.ParseResetFrequency(rec.String("resetFrequency")),
	}
	if v.orgCode == "" {
		v.orgCode = s.orgCode
	}
	return v, nil
}

// NextNumber membaca settings dan surat keluar (segar) lalu menghitung nomor berikutnya.
func (s *Service) NextNumber(ctx context.Context, req PreviewRequest) (Preview, error) {
	if req.Sub < 0 {
		return Preview{}, apperror.Invalid("sub", "jumlah sub tidak boleh negatif")
	}
	set, err := s.readSettings(ctx)
	if err != nil {
		return Preview{}, err
	}
	rows, err := s.letters.List(ctx)
	if err != nil {
		return Preview{}, err
	}
	tpl := s.template(set, req.Kode, req.Tanggal)
	nomors := numbering.Nomors(numbering.FilterPeriod(rows, set.reset, req.Tanggal.In(s.loc)))
	num, err := s.engine.Next(nomors, tpl)
	if err != nil {
		return Preview{}, err
	}
	planned, err := s.engine.Expand(num.Sequence, tpl, req.Sub)
	if err != nil {
		return Preview{}, err
	}
	return Preview{Number: num, OrgCode: set.orgCode, ResetFrequency: string(set.reset), Planned: planned}, nil
}

func (s *Service) template(set settingsView, kode string, tanggal time.Time) numbering.Template {
	return numbering.Template{
		OrgCode:   set.orgCode,
		ClassCode: collection.UnmarkText(kode),
		Date:      tanggal.In(s.loc),
	}
}

/* =========================
   Issue (saga)
========================= */

// IssueRequest adalah satu penerbitan Induk + Sub.
type IssueRequest struct {
	Tanggal     time.Time
	Kode        string
	Perihal     string
	Tujuan      string
	SubPerihals []string
	FileURL     string
	// Sequence > 0 memaksa nomor urut tertentu (koreksi manual); 0 → dihitung.
	Sequence int
}

// IssueResult adalah hasil penerbitan, termasuk hasil per tulisan.
type IssueResult struct {
	IssuanceID string                 `json:"issuance_id"`
	Sequence   int                    `json:"sequence"`
	Padded     string                 `json:"padded"`
	Letters    []sheets.Record        `json:"letters"`
	Results    []apperror.WriteResult `json:"results"`
}

// Issue menghitung nomor, lalu menulis Induk dan setiap Sub sebagai tulisan terpisah.
// Semua gagal → error tulisan pertama. Sebagian gagal → *apperror.PartialWriteError
// (IssueResult tetap dikembalikan supaya pemanggil tahu mana yang sudah tersimpan).
func (s *Service) Issue(ctx context.Context, actor session.Actor, req IssueRequest) (*IssueResult, error) {
	if !actor.Valid() {
		return nil, apperror.Invalid("penginput", "actor wajib diisi")
	}
	if strings.TrimSpace(req.Perihal) == "" {
		return nil, apperror.Invalid("perihal", "perihal wajib diisi")
	}
	for i, sp := range req.SubPerihals {
		if strings.TrimSpace(sp) == "" {
			return nil, apperror.Invalid("sub_perihals", "perihal sub ke-%d kosong", i+1)
		}
	}

	var res *IssueResult
	err := s.locker.WithLock(ctx, LockKey, func(ctx context.Context) error {
		set, err := s.readSettings(ctx)
		if err != nil {
			return err
		}
		tpl := s.template(set, req.Kode, req.Tanggal)
		if err := tpl.Validate(); err != nil {
			return err
		}

		seq := req.Sequence
		if seq <= 0 {
			rows, err := s.letters.List(ctx)
			if err != nil {
				return err
			}
			seq = s.engine.NextSequence(numbering.Nomors(numbering.FilterPeriod(rows, set.reset, tpl.Date)))
		}
		planned, err := s.engine.Expand(seq, tpl, len(req.SubPerihals))
		if err != nil {
			return err
		}

		letters := s.buildLetters(actor, req, tpl.Date, planned)
		res = &IssueResult{
			IssuanceID: uuid.NewString(),
			Sequence:   seq,
			Padded:     s.engine.FormatSequence(seq),
			Letters:    letters,
		}
		res.Results = s.writeAll(ctx, letters, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}

	ok := countOK(res.Results)
	if ok > 0 {
		s.bumpLastNumber(ctx, res.Sequence)
	}
	s.saveJournal(ctx, actor, req.Tanggal, res)

	s.log.WithFields(logrus.Fields{
		"issuance_id": res.IssuanceID,
		"sequence":    res.Padded,
		"written":     ok,
		"total":       len(res.Results),
		"actor":       actor.Name,
	}).Info("[INFO] surat keluar diterbitkan")

	return res, outcome(res.Results)
}

func (s *Service) buildLetters(actor session.Actor, req IssueRequest, date time.Time, planned []numbering.Planned) []sheets.Record {
	out := make([]sheets.Record, 0, len(planned))
	for _, p := range planned {
		perihal := strings.TrimSpace(req.Perihal)
		if p.SubIndex > 0 {
			perihal = perihal + " - " + strings.TrimSpace(req.SubPerihals[p.SubIndex-1])
		}
		out = append(out, sheets.Record{
			"nomor":     p.Nomor,
			"perihal":   perihal,
			"tujuan":    strings.TrimSpace(req.Tujuan),
			"tipe":      p.Tipe,
			"penginput": actor.Name,
			"tanggal":   date.Format(numbering.DisplayLayout),
			"rawDate":   date.Format(numbering.RawDateLayout),
			"status":    constants.StatusPublished,
			"fileUrl":   req.FileURL,
		})
	}
	return out
}

// writeAll menulis letters berurutan. only != nil membatasi ke indeks tertentu (redrive).
func (s *Service) writeAll(ctx context.Context, letters []sheets.Record, only []int) []apperror.WriteResult {
	idx := only
	if idx == nil {
		idx = make([]int, len(letters))
		for i := range letters {
			idx[i] = i
		}
	}
	results := make([]apperror.WriteResult, 0, len(idx))
	for _, i := range idx {
		r := apperror.WriteResult{Index: i, Key: letters[i].String("nomor")}
		id, err := s.letters.Create(ctx, letters[i])
		if err != nil {
			r.Err = err
			r.Error = err.Error()
			s.log.WithError(err).WithField("nomor", r.Key).Error("[ERROR] gagal menulis surat keluar")
		} else {
			r.ID = id
		}
		results = append(results, r)
	}
	return results
}

// bumpLastNumber menyimpan sequence terakhir ke settings, hanya kalau lebih besar dari
// nilai tersimpan (nomor manual yang lebih kecil tidak memundurkan lastNumber).
// Best-effort: gagal hanya dicatat.
func (s *Service) bumpLastNumber(ctx context.Context, seq int) {
	set, err := s.store.GetSettings(ctx)
	if err != nil {
		s.log.WithError(err).Warn("[WARN] gagal membaca lastNumber")
		return
	}
	stored, _ := strconv.Atoi(strings.TrimSpace(collection.UnmarkText(set.String("lastNumber"))))
	if seq <= stored {
		return
	}
	rec := collection.CoerceFields(sheets.Record{"lastNumber": s.engine.FormatSequence(seq)}, "lastNumber")
	if _, err := s.store.UpdateSettings(ctx, rec); err != nil {
		s.log.WithError(err).Warn("[WARN] gagal memperbarui lastNumber")
	}
}

func (s *Service) saveJournal(ctx context.Context, actor session.Actor, tanggal time.Time, res *IssueResult) {
	id, err := uuid.Parse(res.IssuanceID)
	if err != nil {
		return
	}
	numbers := make(pq.StringArray, 0, len(res.Letters))
	for _, l := range res.Letters {
		numbers = append(numbers, l.String("nomor"))
	}
	letters, _ := sonic.Marshal(res.Letters)
	results, _ := sonic.Marshal(res.Results)

	m := &model.NumberIssuanceModel{
		NumberIssuanceID:       id,
		NumberIssuanceSequence: res.Sequence,
		NumberIssuanceNumbers:  numbers,
		NumberIssuanceActor:    actor.Name,
		NumberIssuanceDate:     tanggal,
		NumberIssuanceStatus:   journalStatus(res.Results),
		NumberIssuanceLetters:  datatypes.JSON(letters),
		NumberIssuanceResults:  datatypes.JSON(results),
	}
	if err := s.journal.Save(ctx, m); err != nil {
		s.log.WithError(err).Warn("[WARN] gagal menyimpan jurnal penerbitan")
	}
}

/* =========================
   Redrive
========================= */

// RedriveRequest: tulis ulang surat yang gagal. Letters diisi langsung oleh pemanggil
// (dari hasil PartialWriteError), atau kosong dengan IssuanceID untuk dibaca dari jurnal.
type RedriveRequest struct {
	IssuanceID string
	Letters    []sheets.Record
}

// Redrive menulis ulang tepat subset yang gagal.
func (s *Service) Redrive(ctx context.Context, actor session.Actor, req RedriveRequest) (*IssueResult, error) {
	if !actor.Valid() {
		return nil, apperror.Invalid("penginput", "actor wajib diisi")
	}

	if len(req.Letters) > 0 {
		letters := make([]sheets.Record, len(req.Letters))
		for i, l := range req.Letters {
			if strings.TrimSpace(l.String("nomor")) == "" {
				return nil, apperror.Invalid("letters", "surat ke-%d tidak punya nomor", i+1)
			}
			letters[i] = l.Clone()
			if letters[i].String("penginput") == "" {
				letters[i]["penginput"] = actor.Name
			}
			delete(letters[i], "id")
		}
		res := &IssueResult{IssuanceID: req.IssuanceID, Letters: letters}
		res.Results = s.writeAll(ctx, letters, nil)
		return res, outcome(res.Results)
	}

	id, err := uuid.Parse(strings.TrimSpace(req.IssuanceID))
	if err != nil {
		return nil, apperror.Invalid("issuance_id", "issuance_id tidak valid")
	}
	m, err := s.journal.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	var letters []sheets.Record
	var prev []apperror.WriteResult
	if err := sonic.Unmarshal(m.NumberIssuanceLetters, &letters); err != nil {
		return nil, err
	}
	if err := sonic.Unmarshal(m.NumberIssuanceResults, &prev); err != nil {
		return nil, err
	}

	var failed []int
	for _, r := range prev {
		if r.Error != "" && r.Index < len(letters) {
			failed = append(failed, r.Index)
		}
	}
	res := &IssueResult{
		IssuanceID: m.NumberIssuanceID.String(),
		Sequence:   m.NumberIssuanceSequence,
		Padded:     s.engine.FormatSequence(m.NumberIssuanceSequence),
		Letters:    letters,
	}
	if len(failed) == 0 {
		res.Results = prev
		return res, nil
	}

	retried := s.writeAll(ctx, letters, failed)
	merged := mergeResults(prev, retried)
	res.Results = merged

	results, _ := sonic.Marshal(merged)
	m.NumberIssuanceResults = datatypes.JSON(results)
	m.NumberIssuanceStatus = journalStatus(merged)
	if err := s.journal.Save(ctx, m); err != nil {
		s.log.WithError(err).Warn("[WARN] gagal memperbarui jurnal penerbitan")
	}
	if countOK(retried) > 0 {
		s.bumpLastNumber(ctx, res.Sequence)
	}
	return res, outcome(retried)
}

func mergeResults(prev, retried []apperror.WriteResult) []apperror.WriteResult {
	byIndex := make(map[int]apperror.WriteResult, len(retried))
	for _, r := range retried {
		byIndex[r.Index] = r
	}
	out := make([]apperror.WriteResult, len(prev))
	for i, r := range prev {
		if nr, ok := byIndex[r.Index]; ok {
			out[i] = nr
			continue
		}
		out[i] = r
	}
	return out
}

/* =========================
   Update / Delete
========================= */

// Update memperbarui kolom surat (mis. fileUrl setelah upload).
func (s *Service) Update(ctx context.Context, id string, fields sheets.Record) (sheets.Record, error) {
	fields = fields.Clone()
	delete(fields, "id")
	return s.letters.Update(ctx, id, fields)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.letters.Delete(ctx, id)
}

/* =========================
   Outcome helpers
========================= */

func countOK(results []apperror.WriteResult) int {
	n := 0
	for _, r := range results {
		if r.OK() && r.Error == "" {
			n++
		}
	}
	return n
}

// outcome: semua sukses → nil; semua gagal → error pertama; campuran → PartialWriteError.
func outcome(results []apperror.WriteResult) error {
	ok := countOK(results)
	switch {
	case ok == len(results):
		return nil
	case ok == 0:
		for _, r := range results {
			if r.Err != nil {
				return r.Err
			}
		}
		return errors.New(results[0].Error)
	default:
		return &apperror.PartialWriteError{Results: results}
	}
}

func journalStatus(results []apperror.WriteResult) string {
	ok := countOK(results)
	switch {
	case ok == len(results):
		return model.IssuanceComplete
	case ok == 0:
		return model.IssuanceFailed
	default:
		return model.IssuancePartial
	}
}
