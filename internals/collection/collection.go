// Package collection memodelkan sheet sebagai tabel: baris berurutan, tanpa row-delete asli.
// Baca membuang baris padding, tulis menandai kolom teks, dan setiap replace-all di-padding
// supaya ekor lama tertimpa baris kosong.
package collection

import (
	"context"
	"strings"

	"suratku_backend/internals/apperror"
	"suratku_backend/internals/sheets"
)

// Store adalah bagian Gateway yang dibutuhkan koleksi.
type Store interface {
	List(ctx context.Context, c sheets.Collection) ([]sheets.Record, error)
	Create(ctx context.Context, c sheets.Collection, rec sheets.Record) (sheets.Record, error)
	Update(ctx context.Context, c sheets.Collection, rec sheets.Record) (sheets.Record, error)
	Delete(ctx context.Context, c sheets.Collection, id string) error
	ReplaceAll(ctx context.Context, c sheets.Collection, rows []sheets.Record) error
}

// Spec menjelaskan satu koleksi.
type Spec struct {
	Sheet sheets.Collection
	// KeyFields: kalau semuanya kosong, baris dianggap padding.
	KeyFields []string
	// TextFields: kolom yang selalu ditandai teks sebelum dikirim.
	TextFields []string
	// Fields: set kolom lengkap, dipakai untuk membuat baris padding.
	Fields []string
	// IDField: kolom identitas untuk delete-by-shrink; default "id".
	IDField string
}

func (s Spec) idField() string {
	if s.IDField == "" {
		return "id"
	}
	return s.IDField
}

// Collection menjalankan operasi tabel di atas Store.
type Collection struct {
	store Store
	spec  Spec
}

// New membuat Collection.
func New(store Store, spec Spec) *Collection {
	return &Collection{store: store, spec: spec}
}

// Spec mengembalikan deskripsi koleksi.
func (c *Collection) Spec() Spec { return c.spec }

// List mengembalikan baris yang bukan padding, dengan penanda teks sudah dibuang.
func (c *Collection) List(ctx context.Context) ([]sheets.Record, error) {
	rows, err := c.store.List(ctx, c.spec.Sheet)
	if err != nil {
		return nil, err
	}
	rows = DropBlank(rows, c.spec.KeyFields...)
	for _, r := range rows {
		UnmarkFields(r, c.spec.TextFields...)
	}
	return rows, nil
}

// Raw mengembalikan semua baris apa adanya, termasuk padding.
func (c *Collection) Raw(ctx context.Context) ([]sheets.Record, error) {
	return c.store.List(ctx, c.spec.Sheet)
}

// Create menambah satu baris dan mengembalikan id dari store.
func (c *Collection) Create(ctx context.Context, rec sheets.Record) (string, error) {
	payload := CoerceFields(rec.Clone(), c.spec.TextFields...)
	delete(payload, "id")
	res, err := c.store.Create(ctx, c.spec.Sheet, payload)
	if err != nil {
		return "", err
	}
	return res.ID(), nil
}

// Update menimpa kolom pada baris ber-id tertentu.
func (c *Collection) Update(ctx context.Context, id string, fields sheets.Record) (sheets.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.Invalid("id", "id wajib diisi")
	}
	payload := CoerceFields(fields.Clone(), c.spec.TextFields...)
	payload["id"] = id
	return c.store.Update(ctx, c.spec.Sheet, payload)
}

// Delete menghapus baris ber-id. Sheet dengan aksi replace dihapus lewat shrink;
// sheet lain memakai aksi delete remote.
func (c *Collection) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.Invalid("id", "id wajib diisi")
	}
	if c.spec.Sheet.Replace == "" {
		return c.store.Delete(ctx, c.spec.Sheet, id)
	}

	rows, err := c.store.List(ctx, c.spec.Sheet)
	if err != nil {
		return err
	}
	key := c.spec.idField()
	kept := make([]sheets.Record, 0, len(rows))
	removed := 0
	for _, r := range rows {
		if r.IsBlank(c.spec.KeyFields...) {
			continue
		}
		if strings.TrimSpace(UnmarkText(r.String(key))) == id {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	if removed == 0 {
		return &apperror.NotFoundError{Collection: c.spec.Sheet.Name, Key: id}
	}
	return c.write(ctx, kept, len(rows))
}

// ReplaceAll mengganti seluruh isi koleksi dengan rows, dengan padding ekor.
func (c *Collection) ReplaceAll(ctx context.Context, rows []sheets.Record) error {
	if c.spec.Sheet.Replace == "" {
		return apperror.Invalid("collection", "%s tidak mendukung replace", c.spec.Sheet.Name)
	}
	current, err := c.store.List(ctx, c.spec.Sheet)
	if err != nil {
		return err
	}
	return c.write(ctx, rows, len(current))
}

func (c *Collection) write(ctx context.Context, rows []sheets.Record, currentLen int) error {
	out := make([]sheets.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, CoerceFields(r.Clone(), c.spec.TextFields...))
	}
	out = PadTail(out, currentLen, func() sheets.Record { return BlankRow(c.spec.Fields) })
	return c.store.ReplaceAll(ctx, c.spec.Sheet, out)
}

// DropBlank membuang baris padding.
func DropBlank(rows []sheets.Record, keys ...string) []sheets.Record {
	out := make([]sheets.Record, 0, len(rows))
	for _, r := range rows {
		if r.IsBlank(keys...) {
			continue
		}
		out = append(out, r)
	}
	return out
}
