// Package service mengelola settings singleton: identitas sekolah, kode instansi,
// data admin, dan kebijakan reset nomor surat.
package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"suratku_backend/internals/apperror"
	"suratku_backend/internals/collection"
	"suratku_backend/internals/constants"
	"suratku_backend/internals/features/correspondence/numbering"
	"suratku_backend/internals/sheets"
)

// Store: aksi settings + koleksi users untuk sinkron admin.
type Store interface {
	collection.Store
	GetSettings(ctx context.Context) (sheets.Record, error)
	UpdateSettings(ctx context.Context, rec sheets.Record) (sheets.Record, error)
}

type Service struct {
	store Store
	users *collection.Collection
	log   *logrus.Logger
}

func New(store Store, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{store: store, users: collection.New(store, collection.UsersSpec), log: log}
}

// Get membaca settings dengan penanda teks sudah dibuang.
func (s *Service) Get(ctx context.Context) (sheets.Record, error) {
	rec, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec = sheets.Record{}
	}
	return collection.UnmarkFields(rec, collection.SettingsTextFields...), nil
}

// SaveResult: settings selalu tersimpan dulu; sinkron admin best-effort.
type SaveResult struct {
	AdminSynced bool   `json:"adminSynced"`
	AdminID     string `json:"adminId,omitempty"`
	SyncError   string `json:"syncError,omitempty"`
}

// Save menulis settings lalu menyamakan data user Admin (nama, username, avatar, jabatan).
func (s *Service) Save(ctx context.Context, rec sheets.Record) (*SaveResult, error) {
	if len(rec) == 0 {
		return nil, apperror.Invalid("settings", "tidak ada kolom yang dikirim")
	}
	if v, ok := rec["resetFrequency"]; ok {
		f := numbering.ResetFrequency(strings.ToLower(strings.TrimSpace(sheets.Stringify(v))))
		if f != "" && !f.Valid() {
			return nil, apperror.Invalid("resetFrequency", "harus yearly, monthly, atau never")
		}
	}

	payload := collection.CoerceFields(rec.Clone(), collection.SettingsTextFields...)
	if _, err := s.store.UpdateSettings(ctx, payload); err != nil {
		return nil, err
	}

	res := &SaveResult{}
	id, synced, err := s.syncAdmin(ctx, rec)
	res.AdminID = id
	res.AdminSynced = synced
	if err != nil {
		s.log.WithError(err).Warn("[WARN] settings tersimpan tapi sinkron admin gagal")
		res.SyncError = err.Error()
	}
	return res, nil
}

var adminSync = []struct{ setting, user string }{
	{"namaAdmin", "name"},
	{"usernameAdmin", "username"},
	{"fotoProfil", "avatar"},
	{"jabatanAdmin", "jabatan"},
}

func (s *Service) syncAdmin(ctx context.Context, rec sheets.Record) (string, bool, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return "", false, err
	}
	var admin sheets.Record
	for _, u := range users {
		if u.String("role") == constants.RoleAdmin {
			admin = u
			break
		}
	}
	if admin == nil {
		s.log.Warn("[WARN] user Admin tidak ditemukan di sheet users")
		return "", false, nil
	}

	updates := sheets.Record{}
	for _, m := range adminSync {
		v := strings.TrimSpace(rec.String(m.setting))
		if v != "" && v != admin.String(m.user) {
			updates[m.user] = v
		}
	}
	if len(updates) == 0 {
		return admin.ID(), false, nil
	}
	if _, err := s.users.Update(ctx, admin.ID(), updates); err != nil {
		return admin.ID(), false, err
	}
	s.log.WithField("admin_id", admin.ID()).Info("[INFO] data admin disinkronkan dari settings")
	return admin.ID(), true, nil
}
