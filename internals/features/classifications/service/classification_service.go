// Package service mengelola daftar kode klasifikasi surat (dua level: main dan sub).
// Daftar selalu ditulis utuh lewat aksi replace, diurutkan numeric-aware.
package service

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"suratku_backend/internals/apperror"
	"suratku_backend/internals/collection"
	"suratku_backend/internals/sheets"
)

const (
	TypeMain = "main"
	TypeSub  = "sub"
)

// Item adalah satu kode klasifikasi.
type Item struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

func (it Item) record() sheets.Record {
	return sheets.Record{"code": it.Code, "label": it.Label, "type": it.Type}
}

func fromRecord(r sheets.Record) Item {
	return Item{
		Code:  strings.TrimSpace(r.String("code")),
		Label: strings.TrimSpace(r.String("label")),
		Type:  strings.ToLower(strings.TrimSpace(r.String("type"))),
	}
}

type Registry struct {
	codes *collection.Collection
}

func New(store collection.Store) *Registry {
	return &Registry{codes: collection.New(store, collection.ClassificationsSpec)}
}

// Segments menghitung jumlah segmen bertitik pada kode.
func Segments(code string) int {
	code = strings.TrimSpace(code)
	if code == "" {
		return 0
	}
	return len(strings.Split(code, "."))
}

// InferType: 3 segmen → main, 4+ → sub, selain itu main.
func InferType(code string) string {
	if Segments(code) >= 4 {
		return TypeSub
	}
	return TypeMain
}

// CompareCodes membandingkan kode per segmen; segmen angka dibandingkan sebagai angka.
func CompareCodes(a, b string) int {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := compareSegment(as[i], bs[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}

func compareSegment(a, b string) int {
	an, aerr := strconv.Atoi(a)
	bn, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}

// Sort mengurutkan item in-place berdasarkan kode.
func Sort(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return CompareCodes(items[i].Code, items[j].Code) < 0
	})
}

// List mengembalikan kode tanpa baris kosong, sudah terurut.
func (r *Registry) List(ctx context.Context) ([]Item, error) {
	rows, err := r.codes.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Item, 0, len(rows))
	for _, row := range rows {
		it := fromRecord(row)
		if it.Code == "" {
			continue
		}
		if it.Type == "" {
			it.Type = InferType(it.Code)
		}
		out = append(out, it)
	}
	Sort(out)
	return out, nil
}

// Normalize merapikan item dan memvalidasi tipe terhadap jumlah segmen.
func Normalize(it Item) (Item, error) {
	it.Code = strings.TrimSpace(collection.UnmarkText(strings.TrimSpace(it.Code)))
	it.Label = norm.NFC.String(strings.Join(strings.Fields(it.Label), " "))
	it.Type = strings.ToLower(strings.TrimSpace(it.Type))

	if it.Code == "" {
		return it, apperror.Invalid("code", "kode klasifikasi wajib diisi")
	}
	if it.Label == "" {
		return it, apperror.Invalid("label", "label untuk kode %s wajib diisi", it.Code)
	}

	seg := Segments(it.Code)
	if it.Type == "" {
		it.Type = InferType(it.Code)
		return it, nil
	}
	if it.Type != TypeMain && it.Type != TypeSub {
		return it, apperror.Invalid("type", "tipe %q tidak dikenal (main/sub)", it.Type)
	}
	if seg >= 3 && it.Type != InferType(it.Code) {
		return it, apperror.Invalid("type", "kode %s (%d segmen) harus bertipe %s", it.Code, seg, InferType(it.Code))
	}
	return it, nil
}

// Save mengganti seluruh daftar. Kode duplikat ditolak sebelum ada panggilan ke store.
func (r *Registry) Save(ctx context.Context, items []Item) ([]Item, error) {
	out := make([]Item, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, raw := range items {
		it, err := Normalize(raw)
		if err != nil {
			return nil, err
		}
		if seen[it.Code] {
			return nil, apperror.Invalid("code", "kode %s duplikat", it.Code)
		}
		seen[it.Code] = true
		out = append(out, it)
	}
	Sort(out)

	rows := make([]sheets.Record, 0, len(out))
	for _, it := range out {
		rows = append(rows, it.record())
	}
	if err := r.codes.ReplaceAll(ctx, rows); err != nil {
		return nil, err
	}
	return out, nil
}

// Add menambah satu kode baru.
func (r *Registry) Add(ctx context.Context, it Item) (Item, error) {
	it, err := Normalize(it)
	if err != nil {
		return it, err
	}
	items, err := r.List(ctx)
	if err != nil {
		return it, err
	}
	for _, cur := range items {
		if cur.Code == it.Code {
			return it, apperror.Invalid("code", "kode %s sudah ada", it.Code)
		}
	}
	if _, err := r.Save(ctx, append(items, it)); err != nil {
		return it, err
	}
	return it, nil
}

// Update mengganti kode lama dengan item (kode boleh berubah selama tidak bentrok).
func (r *Registry) Update(ctx context.Context, code string, it Item) (Item, error) {
	code = strings.TrimSpace(code)
	if it.Code == "" {
		it.Code = code
	}
	it, err := Normalize(it)
	if err != nil {
		return it, err
	}
	items, err := r.List(ctx)
	if err != nil {
		return it, err
	}

	found := false
	for i, cur := range items {
		switch {
		case cur.Code == code:
			items[i] = it
			found = true
		case cur.Code == it.Code:
			return it, apperror.Invalid("code", "kode %s sudah ada", it.Code)
		}
	}
	if !found {
		return it, &apperror.NotFoundError{Collection: sheets.Classifications.Name, Key: code}
	}
	if _, err := r.Save(ctx, items); err != nil {
		return it, err
	}
	return it, nil
}

// Delete menghapus satu kode (shrink + padding).
func (r *Registry) Delete(ctx context.Context, code string) error {
	return r.codes.Delete(ctx, collection.UnmarkText(strings.TrimSpace(code)))
}

// ImportResult merangkum hasil Import.
type ImportResult struct {
	Kept     int    `json:"kept"`
	Removed  int    `json:"removed"`
	Imported int    `json:"imported"`
	Total    int    `json:"total"`
	Items    []Item `json:"-"`
}

// Import menggabungkan items ke daftar yang ada. Kode yang cocok dengan replacePrefix
// (regex, opsional) dibuang dulu; kode yang sama dengan item baru ditimpa.
func (r *Registry) Import(ctx context.Context, items []Item, replacePrefix string) (*ImportResult, error) {
	var re *regexp.Regexp
	if strings.TrimSpace(replacePrefix) != "" {
		var err error
		if re, err = regexp.Compile(replacePrefix); err != nil {
			return nil, apperror.Invalid("replace", "regex tidak valid: %v", err)
		}
	}

	incoming := make(map[string]bool, len(items))
	for _, it := range items {
		incoming[strings.TrimSpace(collection.UnmarkText(strings.TrimSpace(it.Code)))] = true
	}

	current, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	res := &ImportResult{}
	merged := make([]Item, 0, len(current)+len(items))
	for _, cur := range current {
		if (re != nil && re.MatchString(cur.Code)) || incoming[cur.Code] {
			res.Removed++
			continue
		}
		merged = append(merged, cur)
	}
	res.Kept = len(merged)
	merged = append(merged, items...)
	res.Imported = len(items)

	saved, err := r.Save(ctx, merged)
	if err != nil {
		return nil, err
	}
	res.Total = len(saved)
	res.Items = saved
	return res, nil
}

// ParseLine membaca baris "kode label", contoh "400.3.2 Pendidikan Anak Usia Dini".
func ParseLine(line string) (Item, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Item{}, false
	}
	code := fields[0]
	return Item{
		Code:  code,
		Label: strings.Join(fields[1:], " "),
		Type:  InferType(code),
	}, true
}

// ParseLines membaca banyak baris; baris kosong dilewati.
func ParseLines(text string) []Item {
	var out []Item
	for _, line := range strings.Split(text, "\n") {
		if it, ok := ParseLine(line); ok {
			out = append(out, it)
		}
	}
	return out
}
