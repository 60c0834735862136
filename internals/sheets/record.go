package sheets

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Record adalah satu baris sheet: nama kolom → nilai skalar.
type Record map[string]any

// String membaca nilai kolom sebagai teks; nil/hilang menjadi "".
func (r Record) String(key string) string {
	return Stringify(r[key])
}

// ID mengembalikan identifier yang diberikan store.
func (r Record) ID() string {
	return r.String("id")
}

// IsBlank true kalau semua kolom kunci kosong (baris padding).
func (r Record) IsBlank(keys ...string) bool {
	if len(keys) == 0 {
		for _, v := range r {
			if strings.TrimSpace(Stringify(v)) != "" {
				return false
			}
		}
		return true
	}
	for _, k := range keys {
		if strings.TrimSpace(r.String(k)) != "" {
			return false
		}
	}
	return true
}

// Clone menyalin record (dangkal; nilainya skalar).
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge menimpa kolom r dengan kolom dari other.
func (r Record) Merge(other Record) Record {
	for k, v := range other {
		r[k] = v
	}
	return r
}

// Stringify mengubah nilai skalar hasil decode JSON menjadi teks.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		s, err := codec.MarshalToString(t)
		if err != nil {
			return ""
		}
		return s
	}
}
