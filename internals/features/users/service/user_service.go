// Package service mengelola akun pengguna di sheet users. Password di-hash bcrypt
// sebelum dikirim ke store dan tidak pernah dikembalikan ke pemanggil.
package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"suratku_backend/internals/apperror"
	"suratku_backend/internals/collection"
	"suratku_backend/internals/constants"
	"suratku_backend/internals/session"
	"suratku_backend/internals/sheets"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Store: koleksi users + aksi cascade profil.
type Store interface {
	collection.Store
	UpdateUserAndCascade(ctx context.Context, rec sheets.Record) (sheets.Record, error)
}

type Service struct {
	store Store
	users *collection.Collection
	log   *logrus.Logger
	cost  int
}

func New(store Store, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		store: store,
		users: collection.New(store, collection.UsersSpec),
		log:   log,
		cost:  bcrypt.DefaultCost,
	}
}

// WithCost mengganti cost bcrypt (test memakai bcrypt.MinCost).
func (s *Service) WithCost(cost int) *Service {
	s.cost = cost
	return s
}

// Public membuang password dari record.
func Public(r sheets.Record) sheets.Record {
	out := r.Clone()
	delete(out, "password")
	return out
}

func (s *Service) List(ctx context.Context) ([]sheets.Record, error) {
	rows, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]sheets.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, Public(r))
	}
	return out, nil
}

func isHashed(p string) bool {
	return strings.HasPrefix(p, "$2a$") || strings.HasPrefix(p, "$2b$") || strings.HasPrefix(p, "$2y$")
}

// HashPassword: nilai yang sudah berupa hash bcrypt dibiarkan.
func (s *Service) HashPassword(p string) (string, error) {
	if isHashed(p) {
		return p, nil
	}
	b, err := bcrypt.GenerateFromPassword([]byte(p), s.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *Service) prepare(fields sheets.Record) error {
	if v, ok := fields["role"]; ok {
		role := strings.TrimSpace(sheets.Stringify(v))
		if role != "" && !constants.IsKnownRole(role) {
			return apperror.Invalid("role", "role %q tidak dikenal", role)
		}
	}
	if v, ok := fields["password"]; ok {
		p := sheets.Stringify(v)
		if strings.TrimSpace(p) == "" {
			delete(fields, "password")
			return nil
		}
		hash, err := s.HashPassword(p)
		if err != nil {
			return err
		}
		fields["password"] = hash
	}
	return nil
}

func (s *Service) usernameTaken(ctx context.Context, username, exceptID string) (bool, error) {
	rows, err := s.users.List(ctx)
	if err != nil {
		return false, err
	}
	for _, r := range rows {
		if strings.EqualFold(r.String("username"), username) && r.ID() != exceptID {
			return true, nil
		}
	}
	return false, nil
}

// Create menambah user. Username unik (case-insensitive), password wajib.
func (s *Service) Create(ctx context.Context, fields sheets.Record) (sheets.Record, error) {
	rec := fields.Clone()
	delete(rec, "id")
	username := strings.TrimSpace(rec.String("username"))
	if username == "" {
		return nil, apperror.Invalid("username", "username wajib diisi")
	}
	if strings.TrimSpace(rec.String("password")) == "" {
		return nil, apperror.Invalid("password", "password wajib diisi")
	}
	if rec.String("role") == "" {
		rec["role"] = constants.RoleGuru
	}
	if rec.String("status") == "" {
		rec["status"] = StatusActive
	}
	if err := s.prepare(rec); err != nil {
		return nil, err
	}

	taken, err := s.usernameTaken(ctx, username, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.Invalid("username", "username %s sudah dipakai", username)
	}

	id, err := s.users.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	rec["id"] = id
	return Public(collection.UnmarkFields(rec, collection.UsersSpec.TextFields...)), nil
}

// Update menimpa kolom user; password kosong berarti tidak diganti.
func (s *Service) Update(ctx context.Context, id string, fields sheets.Record) (sheets.Record, error) {
	rec := fields.Clone()
	delete(rec, "id")
	if err := s.prepare(rec); err != nil {
		return nil, err
	}
	if username := strings.TrimSpace(rec.String("username")); username != "" {
		taken, err := s.usernameTaken(ctx, username, strings.TrimSpace(id))
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperror.Invalid("username", "username %s sudah dipakai", username)
		}
	}
	out, err := s.users.Update(ctx, id, rec)
	if err != nil {
		return nil, err
	}
	return Public(out), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

// UpdateProfile memperbarui profil sendiri. Perubahan nama ikut disebarkan ke kolom
// penginput surat oleh store.
func (s *Service) UpdateProfile(ctx context.Context, actor session.Actor, fields sheets.Record) (sheets.Record, error) {
	rec := fields.Clone()
	id := strings.TrimSpace(rec.String("id"))
	if id == "" {
		id = actor.ID
	}
	if id == "" {
		return nil, apperror.Invalid("id", "id wajib diisi")
	}
	// actor tanpa ID (header) tidak bisa dibuktikan pemilik profil
	if !actor.HasRole(constants.RoleAdmin) && (actor.ID == "" || actor.ID != id) {
		return nil, apperror.Invalid("id", "hanya boleh mengubah profil sendiri")
	}
	// role & status hanya lewat manajemen user
	delete(rec, "role")
	delete(rec, "status")
	if err := s.prepare(rec); err != nil {
		return nil, err
	}
	rec = collection.CoerceFields(rec, collection.UsersSpec.TextFields...)
	rec["id"] = id

	res, err := s.store.UpdateUserAndCascade(ctx, rec)
	if err != nil {
		return nil, err
	}
	s.log.WithField("user_id", id).Info("[INFO] profil diperbarui")
	return Public(res), nil
}

// Authenticate mencocokkan username + password untuk user berstatus Active.
// Baris lama yang masih menyimpan password polos di-hash ulang setelah login sukses.
func (s *Service) Authenticate(ctx context.Context, username, password string) (session.Actor, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return session.Actor{}, apperror.Invalid("username", "username dan password wajib diisi")
	}
	rows, err := s.users.List(ctx)
	if err != nil {
		return session.Actor{}, err
	}
	for _, r := range rows {
		if !strings.EqualFold(r.String("username"), username) {
			continue
		}
		if st := r.String("status"); st != "" && !strings.EqualFold(st, StatusActive) {
			break
		}
		stored := r.String("password")
		if isHashed(stored) {
			if bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) != nil {
				break
			}
		} else {
			if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
				break
			}
			s.upgradePassword(ctx, r.ID(), password)
		}
		return session.Actor{
			ID:       r.ID(),
			Name:     r.String("name"),
			Username: r.String("username"),
			Role:     r.String("role"),
		}, nil
	}
	return session.Actor{}, ErrInvalidLogin
}

// ErrInvalidLogin sengaja tidak membedakan username salah dan password salah.
var ErrInvalidLogin = &apperror.ValidationError{Field: "login", Message: "Username atau password salah, atau akun tidak aktif."}

func (s *Service) upgradePassword(ctx context.Context, id, plain string) {
	hash, err := s.HashPassword(plain)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if _, err := s.users.Update(ctx, id, sheets.Record{"password": hash}); err != nil {
		s.log.WithError(err).WithField("user_id", id).Warn("[WARN] gagal meng-hash ulang password lama")
	}
}
