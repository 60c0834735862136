package sheets_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suratku_backend/internals/apperror"
	"suratku_backend/internals/sheets"
	"suratku_backend/internals/sheets/sheetstest"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newClient(t *testing.T, url string, timeout time.Duration) *sheets.Client {
	t.Helper()
	c, err := sheets.New(url, timeout, testLogger())
	require.NoError(t, err)
	return c
}

func TestInvokeReadUsesGETWithAction(t *testing.T) {
	srv := sheetstest.NewServer(t)
	srv.Seed(sheets.OutgoingLetters, sheets.Record{"nomor": "B-001/ORG/400.1/I/2024"})

	c := newClient(t, srv.URL, time.Second)
	resp, err := c.Invoke(context.Background(), sheets.ActionGetSuratKeluar, nil)
	require.NoError(t, err)

	rows, err := resp.Records()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "B-001/ORG/400.1/I/2024", rows[0].String("nomor"))
	assert.Equal(t, "1", rows[0].ID())

	calls := srv.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodGet, calls[0].Method)
	assert.Equal(t, sheets.ActionGetSuratKeluar, calls[0].Action)
	assert.Contains(t, calls[0].Header.Get("Cache-Control"), "no-store")
}

func TestInvokeWriteUsesTextPlainEnvelope(t *testing.T) {
	srv := sheetstest.NewServer(t)
	c := newClient(t, srv.URL, time.Second)

	resp, err := c.Invoke(context.Background(), sheets.ActionCreateSuratMasuk, sheets.Record{"nomor": "'005/X"})
	require.NoError(t, err)

	rec, err := resp.Record()
	require.NoError(t, err)
	assert.Equal(t, "success", rec.String("status"))

	calls := srv.CallsFor(sheets.ActionCreateSuratMasuk)
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, "text/plain;charset=utf-8", calls[0].Header.Get("Content-Type"))
	assert.JSONEq(t, `{"nomor":"'005/X"}`, string(calls[0].Data))
}

func TestInvokeNonSuccessIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("quota exceeded"))
	}))
	t.Cleanup(srv.Close)

	c := newClient(t, srv.URL, time.Second)
	_, err := c.Invoke(context.Background(), sheets.ActionGetUsers, nil)

	var te *apperror.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusInternalServerError, te.Status)
	assert.Equal(t, "quota exceeded", te.Body)
}

func TestInvokeErrorFieldIsRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"ID not found"}`))
	}))
	t.Cleanup(srv.Close)

	c := newClient(t, srv.URL, time.Second)
	_, err := c.Invoke(context.Background(), sheets.ActionUpdateUser, sheets.Record{"id": "9"})

	var re *apperror.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "ID not found", re.Message)
	assert.Equal(t, "updateUser", re.Action)
}

func TestInvokeFalsyErrorFieldIsIgnored(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"","status":"success"}`))
	}))
	t.Cleanup(srv.Close)

	c := newClient(t, srv.URL, time.Second)
	_, err := c.Invoke(context.Background(), sheets.ActionGetSettings, nil)
	assert.NoError(t, err)
}

func TestInvokeNonJSONIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>Sign in</html>"))
	}))
	t.Cleanup(srv.Close)

	c := newClient(t, srv.URL, time.Second)
	_, err := c.Invoke(context.Background(), sheets.ActionGetSettings, nil)

	var te *apperror.TransportError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, te.Body, "Sign in")
}

func TestInvokeTimeoutIsTransportError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c := newClient(t, srv.URL, 50*time.Millisecond)
	_, err := c.Invoke(context.Background(), sheets.ActionGetUsers, nil)

	var te *apperror.TransportError
	require.ErrorAs(t, err, &te)
	assert.True(t, te.Timeout())
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestInvokeUnknownActionNeverHitsNetwork(t *testing.T) {
	srv := sheetstest.NewServer(t)
	c := newClient(t, srv.URL, time.Second)

	_, err := c.Invoke(context.Background(), sheets.Action("dropTables"), nil)

	var ve *apperror.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, srv.Calls())
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := sheets.New("", time.Second, nil)
	assert.Error(t, err)

	_, err = sheets.New("https://script.example.test/exec", 0, nil)
	assert.Error(t, err)
}

func TestInvokeAuditLogRedactsPayload(t *testing.T) {
	srv := sheetstest.NewServer(t)
	log, hook := logtest.NewNullLogger()
	c, err := sheets.New(srv.URL, time.Second, log)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.Invoke(ctx, sheets.ActionGetUsers, nil)
	require.NoError(t, err)
	require.NotEmpty(t, hook.AllEntries())
	for _, e := range hook.AllEntries() {
		assert.Equal(t, "getUsers", e.Data["action"])
		assert.NotContains(t, e.Data, "payload")
	}

	hook.Reset()
	_, err = c.Invoke(ctx, sheets.ActionCreateUser, sheets.Record{"username": "siti", "password": "rahasia"})
	require.NoError(t, err)
	first := hook.AllEntries()[0]
	assert.Equal(t, "createUser", first.Data["action"])
	payload, ok := first.Data["payload"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "***", payload["password"])
	assert.Equal(t, "siti", payload["username"])
	assert.Contains(t, string(srv.CallsFor(sheets.ActionCreateUser)[0].Data), "rahasia")

	hook.Reset()
	content := strings.Repeat("A", 200)
	_, err = c.Invoke(ctx, sheets.ActionUploadFile, sheets.Record{"name": "a.pdf", "folder": "surat", "content": content})
	require.NoError(t, err)
	payload, ok = hook.AllEntries()[0].Data["payload"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, strings.Repeat("A", 64)+"…", payload["content"])
	assert.Equal(t, "a.pdf", payload["name"])
}
