// Package apperror berisi taksonomi error inti: transport, remote, validasi,
// not-found, dan partial write. Semua error dikembalikan ke pemanggil apa adanya;
// tidak ada retry otomatis di dalam core.
package apperror

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// TransportError: endpoint tidak terjangkau atau status non-2xx.
type TransportError struct {
	Action string
	Status int    // 0 kalau request tidak pernah mendapat response
	Body   string // body mentah untuk diagnosa
	Err    error
}

func (e *TransportError) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("transport %s: status %d: %s", e.Action, e.Status, truncate(e.Body, 200))
	case e.Err != nil:
		return fmt.Sprintf("transport %s: %v", e.Action, e.Err)
	default:
		return fmt.Sprintf("transport %s: failed", e.Action)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout true kalau kegagalan karena batas waktu habis.
func (e *TransportError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// RemoteError: transport sukses, tapi payload membawa field "error".
type RemoteError struct {
	Action  string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote %s: %s", e.Action, e.Message)
}

// ValidationError: input buruk terdeteksi lokal sebelum ada panggilan jaringan.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Message
	}
	return fmt.Sprintf("validation %s: %s", e.Field, e.Message)
}

// NotFoundError: id/kode yang dituju tidak ada pada koleksi saat dicek lokal.
type NotFoundError struct {
	Collection string
	Key        string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Collection, e.Key)
}

// WriteResult adalah hasil satu langkah dari operasi multi-tulis.
type WriteResult struct {
	Index int    `json:"index"`
	Key   string `json:"key"`
	ID    string `json:"id,omitempty"`
	Err   error  `json:"-"`
	Error string `json:"error,omitempty"`
}

// OK true kalau langkah ini berhasil ditulis.
func (r WriteResult) OK() bool { return r.Err == nil }

// PartialWriteError: sebagian tulisan sukses, sebagian gagal. Yang sukses tidak di-rollback.
type PartialWriteError struct {
	Results []WriteResult
}

func (e *PartialWriteError) Error() string {
	failed := e.Failed()
	keys := make([]string, 0, len(failed))
	for _, r := range failed {
		keys = append(keys, r.Key)
	}
	return fmt.Sprintf("partial write: %d of %d failed (%s)", len(failed), len(e.Results), strings.Join(keys, ", "))
}

// Failed mengembalikan langkah yang gagal, urutan asli dipertahankan.
func (e *PartialWriteError) Failed() []WriteResult {
	var out []WriteResult
	for _, r := range e.Results {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}

// Unwrap mengekspos error tiap langkah untuk errors.Is/As.
func (e *PartialWriteError) Unwrap() []error {
	var errs []error
	for _, r := range e.Results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errs
}

// Invalid adalah shortcut untuk ValidationError.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
