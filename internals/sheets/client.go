// Package sheets adalah satu-satunya gerbang ke endpoint spreadsheet (Google Apps Script).
// Semua aksi dikirim ke URL yang sama: baca lewat GET ?action=, tulis lewat POST {action, data}.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/sirupsen/logrus"

	"suratku_backend/internals/apperror"
)

// codec: UseNumber supaya id dan nomor urut tidak berubah jadi float.
var codec = sonic.Config{UseNumber: true}.Froze()

const maxResponseBytes = 32 << 20

// Invoker adalah kontrak minimal adapter; dipakai Gateway dan bisa diganti di test.
type Invoker interface {
	Invoke(ctx context.Context, action Action, payload any) (Response, error)
}

// Client memanggil endpoint spreadsheet. Tidak menyimpan state; tidak ada cache.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	log        *logrus.Logger
}

// New membuat client. timeout membatasi setiap panggilan secara individual.
func New(baseURL string, timeout time.Duration, log *logrus.Logger) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("sheets: base URL kosong")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("sheets: base URL tidak valid: %w", err)
	}
	if timeout <= 0 {
		return nil, errors.New("sheets: timeout harus > 0")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		// Timeout transport sedikit di atas timeout per-call supaya context yang menang.
		httpClient: &http.Client{Timeout: timeout + time.Second},
		baseURL:    baseURL,
		timeout:    timeout,
		log:        log,
	}, nil
}

// Invoke menjalankan satu aksi. payload nil → GET, selain itu → POST {action, data}.
func (c *Client) Invoke(ctx context.Context, action Action, payload any) (Response, error) {
	if !action.Valid() {
		return nil, apperror.Invalid("action", "aksi tidak dikenal: %q", action)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.buildRequest(ctx, action, payload)
	if err != nil {
		return nil, err
	}

	entry := c.log.WithField("action", action.String())
	if payload != nil {
		entry = entry.WithField("payload", redact(payload))
	}
	entry.Info("[GAS] request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observe(action, outcomeTransport, start)
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %v", ctxErr, err)
		}
		entry.WithError(err).Error("[GAS] transport failure")
		return nil, &apperror.TransportError{Action: action.String(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		observe(action, outcomeTransport, start)
		entry.WithError(err).Error("[GAS] read body failed")
		return nil, &apperror.TransportError{Action: action.String(), Status: resp.StatusCode, Err: err}
	}

	entry = entry.WithFields(logrus.Fields{
		"status":  resp.StatusCode,
		"latency": time.Since(start).String(),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		observe(action, outcomeTransport, start)
		entry.WithField("body", string(body)).Error("[GAS] error response")
		return nil, &apperror.TransportError{Action: action.String(), Status: resp.StatusCode, Body: string(body)}
	}

	trimmed := bytes.TrimSpace(body)
	if !codec.Valid(trimmed) {
		observe(action, outcomeTransport, start)
		entry.WithField("body", string(body)).Error("[GAS] response is not JSON")
		return nil, &apperror.TransportError{
			Action: action.String(),
			Status: resp.StatusCode,
			Body:   string(body),
			Err:    errors.New("response is not valid JSON"),
		}
	}

	if msg, ok := remoteErrorMessage(trimmed); ok {
		observe(action, outcomeRemote, start)
		entry.WithField("remote_error", msg).Warn("[GAS] script error")
		return nil, &apperror.RemoteError{Action: action.String(), Message: msg}
	}

	observe(action, outcomeOK, start)
	entry.Info("[GAS] ok")
	return Response(trimmed), nil
}

func (c *Client) buildRequest(ctx context.Context, action Action, payload any) (*http.Request, error) {
	var (
		req *http.Request
		err error
	)
	if payload == nil {
		u, perr := url.Parse(c.baseURL)
		if perr != nil {
			return nil, &apperror.TransportError{Action: action.String(), Err: perr}
		}
		q := u.Query()
		q.Set("action", action.String())
		u.RawQuery = q.Encode()
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	} else {
		body, merr := codec.Marshal(envelope{Action: action, Data: payload})
		if merr != nil {
			return nil, apperror.Invalid("payload", "tidak bisa di-encode: %v", merr)
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
		if err == nil {
			// text/plain: hindari preflight/rewrite body oleh perantara.
			req.Header.Set("Content-Type", "text/plain;charset=utf-8")
		}
	}
	if err != nil {
		return nil, &apperror.TransportError{Action: action.String(), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")
	return req, nil
}

type envelope struct {
	Action Action `json:"action"`
	Data   any    `json:"data"`
}

// remoteErrorMessage membaca field "error" pada body objek; nilai falsy diabaikan.
func remoteErrorMessage(body []byte) (string, bool) {
	if len(body) == 0 || body[0] != '{' {
		return "", false
	}
	var probe struct {
		Error any `json:"error"`
	}
	if err := codec.Unmarshal(body, &probe); err != nil {
		return "", false
	}
	switch v := probe.Error.(type) {
	case nil:
		return "", false
	case string:
		if strings.TrimSpace(v) == "" {
			return "", false
		}
		return v, true
	case bool:
		return "remote reported error", v
	case json.Number:
		if f, err := v.Float64(); err == nil && f == 0 {
			return "", false
		}
		return v.String(), true
	default:
		return Stringify(v), true
	}
}

// Response adalah body JSON yang sudah lolos cek transport & field error.
type Response []byte

// Decode meng-unmarshal body ke out.
func (r Response) Decode(out any) error {
	if len(r) == 0 {
		return nil
	}
	return codec.Unmarshal(r, out)
}

// Records men-decode body array menjadi []Record. null menjadi slice kosong.
func (r Response) Records() ([]Record, error) {
	if len(r) == 0 || string(r) == "null" {
		return []Record{}, nil
	}
	if r[0] != '[' {
		return nil, fmt.Errorf("sheets: expected array response, got %s", preview(r))
	}
	var rows []Record
	if err := r.Decode(&rows); err != nil {
		return nil, fmt.Errorf("sheets: decode rows: %w", err)
	}
	if rows == nil {
		rows = []Record{}
	}
	return rows, nil
}

// Record men-decode body objek. Body non-objek menghasilkan Record kosong.
func (r Response) Record() (Record, error) {
	if len(r) == 0 || r[0] != '{' {
		return Record{}, nil
	}
	var rec Record
	if err := r.Decode(&rec); err != nil {
		return nil, fmt.Errorf("sheets: decode object: %w", err)
	}
	return rec, nil
}

func preview(b []byte) string {
	if len(b) > 40 {
		return string(b[:40]) + "…"
	}
	return string(b)
}
