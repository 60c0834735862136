// Package numbering menghitung nomor surat keluar: sequence berikutnya dari data yang ada,
// pemecahan Induk + Sub, dan rendering template nomor.
//
// Engine tidak menyimpan state apa pun. Sequence selalu diturunkan dari daftar nomor
// yang dibaca segar oleh pemanggil.
package numbering

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"suratku_backend/internals/apperror"
	"suratku_backend/internals/collection"
)

const (
	Prefix = "B"
	Width  = 3

	TipeInduk = "Induk"
)

var romanMonths = [...]string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X", "XI", "XII"}

// RomanMonth: 1..12 → I..XII; di luar rentang → "".
func RomanMonth(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return romanMonths[m-1]
}

// Template adalah segmen tetap sebuah nomor. OrgCode dan ClassCode disisipkan apa adanya
// (OrgCode biasanya sudah diapit "/", misal "/ORG/").
type Template struct {
	OrgCode   string
	ClassCode string
	Date      time.Time
}

// Validate memastikan template bisa dirender.
func (t Template) Validate() error {
	if t.Date.IsZero() {
		return apperror.Invalid("tanggal", "tanggal surat wajib diisi")
	}
	if strings.TrimSpace(t.ClassCode) == "" {
		return apperror.Invalid("kode", "kode klasifikasi wajib diisi")
	}
	return nil
}

// Number adalah hasil perhitungan untuk satu surat.
type Number struct {
	Sequence int    `json:"sequence"`
	Padded   string `json:"padded"`
	SubIndex int    `json:"sub_index,omitempty"`
	Rendered string `json:"rendered"`
}

// Planned adalah satu surat yang akan ditulis dalam operasi Induk + Sub.
type Planned struct {
	Tipe     string `json:"tipe"`
	SubIndex int    `json:"sub_index"`
	Nomor    string `json:"nomor"`
}

// Engine menghitung nomor berdasarkan prefix dan lebar padding.
type Engine struct {
	prefix  string
	width   int
	pattern *regexp.Regexp
}

// New membuat Engine dengan prefix tertentu; width <= 0 memakai Width.
func New(prefix string, width int) *Engine {
	if width <= 0 {
		width = Width
	}
	return &Engine{
		prefix:  prefix,
		width:   width,
		pattern: regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `-(\d+)`),
	}
}

// Default adalah engine "B-" dengan padding 3 digit.
var Default = New(Prefix, Width)

// ExtractSequence mengambil angka sequence di awal nomor. Penanda teks dibuang dulu.
func (e *Engine) ExtractSequence(nomor string) (int, bool) {
	m := e.pattern.FindStringSubmatch(collection.UnmarkText(nomor))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// NextSequence = max(sequence yang ditemukan) + 1; tanpa kecocokan → 1.
func (e *Engine) NextSequence(nomors []string) int {
	maxSeq := 0
	for _, n := range nomors {
		if seq, ok := e.ExtractSequence(n); ok && seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1
}

// FormatSequence mem-padding sequence dengan nol di depan.
func (e *Engine) FormatSequence(seq int) string {
	return fmt.Sprintf("%0*d", e.width, seq)
}

// Render: <prefix>-<seq>[.<sub>]<org><class>/<romanMonth>/<year>. sub <= 0 berarti tanpa sub.
func (e *Engine) Render(seq, sub int, t Template) string {
	seg := e.FormatSequence(seq)
	if sub > 0 {
		seg += "." + strconv.Itoa(sub)
	}
	return fmt.Sprintf("%s-%s%s%s/%s/%d",
		e.prefix, seg, t.OrgCode, strings.TrimSpace(t.ClassCode), RomanMonth(t.Date.Month()), t.Date.Year())
}

// Next menghitung nomor Induk berikutnya dari daftar nomor yang ada.
func (e *Engine) Next(nomors []string, t Template) (Number, error) {
	if err := t.Validate(); err != nil {
		return Number{}, err
	}
	seq := e.NextSequence(nomors)
	return Number{
		Sequence: seq,
		Padded:   e.FormatSequence(seq),
		Rendered: e.Render(seq, 0, t),
	}, nil
}

// Expand menghasilkan 1 Induk (sequence saja) + subCount surat Sub-k (sequence.k).
func (e *Engine) Expand(seq int, t Template, subCount int) ([]Planned, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if seq <= 0 {
		return nil, apperror.Invalid("sequence", "sequence harus > 0")
	}
	if subCount < 0 {
		return nil, apperror.Invalid("sub", "jumlah sub tidak boleh negatif")
	}
	out := make([]Planned, 0, subCount+1)
	out = append(out, Planned{Tipe: TipeInduk, Nomor: e.Render(seq, 0, t)})
	for k := 1; k <= subCount; k++ {
		out = append(out, Planned{Tipe: SubTipe(k), SubIndex: k, Nomor: e.Render(seq, k, t)})
	}
	return out, nil
}

// SubTipe: "Sub-k".
func SubTipe(k int) string { return "Sub-" + strconv.Itoa(k) }
