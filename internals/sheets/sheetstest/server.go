// Package sheetstest menyediakan endpoint spreadsheet palsu di memori.
// Perilakunya meniru sheet: baris tidak pernah benar-benar dihapus (delete menggeser
// isi ke atas dan mengosongkan baris terakhir), dan replace-all hanya menimpa baris
// yang dikirim sehingga ekor lama tetap ada kalau tidak di-padding.
package sheetstest

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/sirupsen/logrus"

	"suratku_backend/internals/sheets"
)

var codec = sonic.Config{UseNumber: true}.Froze()

// Call mencatat satu request yang diterima.
type Call struct {
	Method string
	Action sheets.Action
	Data   []byte
	Header http.Header
}

// Server adalah endpoint palsu berbasis httptest.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	rows     map[string][]sheets.Record
	settings sheets.Record
	nextID   int
	calls    []Call

	// FailWrite, kalau diisi, membuat aksi tulis tertentu membalas {"error": ...}.
	FailWrite func(action sheets.Action, data sheets.Record) bool
}

var collections = []sheets.Collection{
	sheets.Users, sheets.IncomingLetters, sheets.OutgoingLetters, sheets.Classifications,
}

// NewServer menjalankan server dan menutupnya saat test selesai.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		rows:     make(map[string][]sheets.Record),
		settings: sheets.Record{},
		nextID:   1,
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Server.Close)
	return s
}

// Seed menambahkan baris awal ke koleksi (id diberikan otomatis kalau kosong).
func (s *Server) Seed(c sheets.Collection, rows ...sheets.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rows {
		r = r.Clone()
		if r.ID() == "" && c.Name != sheets.Classifications.Name {
			r["id"] = s.newID()
		}
		s.rows[c.Name] = append(s.rows[c.Name], r)
	}
}

// Rows mengembalikan salinan baris mentah, termasuk baris kosong.
func (s *Server) Rows(c sheets.Collection) []sheets.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sheets.Record, len(s.rows[c.Name]))
	for i, r := range s.rows[c.Name] {
		out[i] = r.Clone()
	}
	return out
}

// SetSettings mengganti record settings.
func (s *Server) SetSettings(rec sheets.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = rec.Clone()
}

// Settings mengembalikan salinan settings.
func (s *Server) Settings() sheets.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Clone()
}

// Calls mengembalikan semua request yang tercatat.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsFor memfilter Calls per aksi.
func (s *Server) CallsFor(action sheets.Action) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Action == action {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) newID() string {
	id := strconv.Itoa(s.nextID)
	s.nextID++
	return id
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		action := sheets.Action(r.URL.Query().Get("action"))
		s.calls = append(s.calls, Call{Method: r.Method, Action: action, Header: r.Header.Clone()})
		s.handleRead(w, action)
	case http.MethodPost:
		raw, _ := io.ReadAll(r.Body)
		var env struct {
			Action sheets.Action `json:"action"`
			Data   any           `json:"data"`
		}
		if err := codec.Unmarshal(raw, &env); err != nil {
			writeJSON(w, map[string]any{"error": "invalid body"})
			return
		}
		data, _ := codec.Marshal(env.Data)
		s.calls = append(s.calls, Call{Method: r.Method, Action: env.Action, Data: data, Header: r.Header.Clone()})
		s.handleWrite(w, env.Action, data)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleRead(w http.ResponseWriter, action sheets.Action) {
	if action == sheets.ActionGetSettings {
		writeJSON(w, s.settings)
		return
	}
	for _, c := range collections {
		if c.List == action {
			rows := s.rows[c.Name]
			if rows == nil {
				rows = []sheets.Record{}
			}
			writeJSON(w, rows)
			return
		}
	}
	writeJSON(w, map[string]any{"error": fmt.Sprintf("Unknown action: %s", action)})
}

func (s *Server) handleWrite(w http.ResponseWriter, action sheets.Action, data []byte) {
	if action == sheets.ActionSaveClassifications {
		var rows []sheets.Record
		if err := codec.Unmarshal(data, &rows); err != nil {
			writeJSON(w, map[string]any{"error": "expected array"})
			return
		}
		s.replace(sheets.Classifications, rows)
		writeJSON(w, map[string]any{"status": "success", "count": len(rows)})
		return
	}

	var rec sheets.Record
	if err := codec.Unmarshal(data, &rec); err != nil {
		writeJSON(w, map[string]any{"error": "expected object"})
		return
	}
	if s.FailWrite != nil && s.FailWrite(action, rec) {
		writeJSON(w, map[string]any{"error": "simulated failure"})
		return
	}

	switch action {
	case sheets.ActionUpdateSettings:
		s.settings.Merge(rec)
		writeJSON(w, map[string]any{"status": "success"})
		return
	case sheets.ActionUploadFile:
		writeJSON(w, map[string]any{
			"status": "success",
			"url":    fmt.Sprintf("https://files.example.test/%s/%s", rec.String("folder"), rec.String("name")),
		})
		return
	case sheets.ActionUpdateUserAndCascade:
		s.cascadeUser(w, rec)
		return
	}

	for _, c := range collections {
		switch action {
		case c.Create:
			rec = rec.Clone()
			rec["id"] = s.newID()
			s.rows[c.Name] = append(s.rows[c.Name], rec)
			writeJSON(w, map[string]any{"status": "success", "id": rec["id"]})
			return
		case c.Update:
			i := s.indexOf(c, rec.ID())
			if i < 0 {
				writeJSON(w, map[string]any{"error": "ID not found"})
				return
			}
			s.rows[c.Name][i].Merge(rec)
			writeJSON(w, s.rows[c.Name][i])
			return
		case c.Delete:
			i := s.indexOf(c, rec.ID())
			if i < 0 {
				writeJSON(w, map[string]any{"error": "ID not found"})
				return
			}
			s.shiftOut(c, i)
			writeJSON(w, map[string]any{"status": "success"})
			return
		}
	}
	writeJSON(w, map[string]any{"error": fmt.Sprintf("Unknown action: %s", action)})
}

func (s *Server) indexOf(c sheets.Collection, id string) int {
	if id == "" {
		return -1
	}
	for i, r := range s.rows[c.Name] {
		if r.ID() == id {
			return i
		}
	}
	return -1
}

// shiftOut meniru sheet tanpa row-delete: baris di bawah naik, baris terakhir dikosongkan.
func (s *Server) shiftOut(c sheets.Collection, i int) {
	rows := s.rows[c.Name]
	blank := sheets.Record{}
	for k := range rows[i] {
		blank[k] = ""
	}
	copy(rows[i:], rows[i+1:])
	rows[len(rows)-1] = blank
}

// replace menimpa baris dari atas; baris di luar panjang data tidak disentuh.
func (s *Server) replace(c sheets.Collection, rows []sheets.Record) {
	cur := s.rows[c.Name]
	for i, r := range rows {
		if i < len(cur) {
			cur[i] = r
		} else {
			cur = append(cur, r)
		}
	}
	s.rows[c.Name] = cur
}

func (s *Server) cascadeUser(w http.ResponseWriter, rec sheets.Record) {
	i := s.indexOf(sheets.Users, rec.ID())
	if i < 0 {
		writeJSON(w, map[string]any{"error": "User not found"})
		return
	}
	user := s.rows[sheets.Users.Name][i]
	oldName := user.String("name")
	user.Merge(rec)
	newName := user.String("name")
	if oldName != "" && newName != oldName {
		for _, c := range []sheets.Collection{sheets.IncomingLetters, sheets.OutgoingLetters} {
			for _, r := range s.rows[c.Name] {
				if r.String("penginput") == oldName {
					r["penginput"] = newName
				}
			}
		}
	}
	writeJSON(w, map[string]any{"status": "success", "user": user})
}

func writeJSON(w http.ResponseWriter, v any) {
	b, err := codec.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}

// NewGateway menjalankan server palsu dan mengembalikan Gateway yang terhubung ke sana.
func NewGateway(t testing.TB) (*sheets.Gateway, *Server) {
	t.Helper()
	srv := NewServer(t)
	l := logrus.New()
	l.SetOutput(io.Discard)
	c, err := sheets.New(srv.URL, 2*time.Second, l)
	if err != nil {
		t.Fatalf("sheetstest: %v", err)
	}
	return sheets.NewGateway(c), srv
}
