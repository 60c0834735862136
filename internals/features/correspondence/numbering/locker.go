package numbering

import (
	"context"
	"hash/fnv"
	"log"

	"gorm.io/gorm"
)

// Locker membungkus langkah baca-max-lalu-tulis. Implementasi default (NoLock) tidak
// mengunci apa pun, jadi dua pemanggil bersamaan bisa mendapat sequence yang sama.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// NoLock langsung menjalankan fn.
type NoLock struct{}

func (NoLock) WithLock(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// AdvisoryLocker memakai pg_advisory_lock pada satu koneksi yang di-pin selama fn berjalan.
type AdvisoryLocker struct {
	DB *gorm.DB
}

func NewAdvisoryLocker(db *gorm.DB) *AdvisoryLocker {
	return &AdvisoryLocker{DB: db}
}

func (l *AdvisoryLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	id := LockID(key)
	return l.DB.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_lock(?)", id).Error; err != nil {
			return err
		}
		defer func() {
			// unlock tetap jalan walau ctx sudah dibatalkan
			if err := tx.WithContext(context.Background()).Exec("SELECT pg_advisory_unlock(?)", id).Error; err != nil {
				log.Printf("[ERROR] advisory unlock %q: %v", key, err)
			}
		}()
		return fn(ctx)
	})
}

// LockID memetakan nama kunci ke bigint untuk pg_advisory_lock.
func LockID(key string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return int64(h.Sum64())
}
