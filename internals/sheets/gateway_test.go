package sheets_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suratku_backend/internals/apperror"
	"suratku_backend/internals/sheets"
	"suratku_backend/internals/sheets/sheetstest"
)

func newGateway(t *testing.T) (*sheets.Gateway, *sheetstest.Server) {
	t.Helper()
	srv := sheetstest.NewServer(t)
	return sheets.NewGateway(newClient(t, srv.URL, time.Second)), srv
}

func TestGatewayCreateReturnsStoreID(t *testing.T) {
	gw, _ := newGateway(t)
	ctx := context.Background()

	res, err := gw.Create(ctx, sheets.Users, sheets.Record{"name": "Siti"})
	require.NoError(t, err)
	assert.Equal(t, "1", res.ID())

	rows, err := gw.List(ctx, sheets.Users)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Siti", rows[0].String("name"))
}

func TestGatewayUpdateMissingIDFailsLocally(t *testing.T) {
	gw, srv := newGateway(t)

	_, err := gw.Update(context.Background(), sheets.Users, sheets.Record{"name": "x"})

	var ve *apperror.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, srv.Calls())
}

func TestGatewayUpdateUnknownIDIsRemoteError(t *testing.T) {
	gw, _ := newGateway(t)

	_, err := gw.Update(context.Background(), sheets.IncomingLetters, sheets.Record{"id": "404", "perihal": "x"})

	var re *apperror.RemoteError
	assert.ErrorAs(t, err, &re)
}

func TestGatewayUnsupportedOperation(t *testing.T) {
	gw, _ := newGateway(t)

	err := gw.Delete(context.Background(), sheets.Classifications, "1")

	var ve *apperror.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestGatewayUploadFile(t *testing.T) {
	gw, srv := newGateway(t)

	res, err := gw.UploadFile(context.Background(), sheets.Upload{
		Name:          "surat.pdf",
		MimeType:      "application/pdf",
		ContentBase64: "JVBERi0xLjQK",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://files.example.test/default/surat.pdf", res.URL)

	calls := srv.CallsFor(sheets.ActionUploadFile)
	require.Len(t, calls, 1)
	assert.Contains(t, string(calls[0].Data), `"folder":"default"`)
}

func TestCollectionByName(t *testing.T) {
	c, ok := sheets.CollectionByName("surat_keluar")
	require.True(t, ok)
	assert.Equal(t, sheets.ActionGetSuratKeluar, c.List)

	_, ok = sheets.CollectionByName("nope")
	assert.False(t, ok)
}
