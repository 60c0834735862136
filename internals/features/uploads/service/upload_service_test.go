package service_test

import (
	"context"
	"encoding/base64"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suratku_backend/internals/apperror"
	"suratku_backend/internals/constants"
	"suratku_backend/internals/features/uploads/service"
	"suratku_backend/internals/sheets"
	"suratku_backend/internals/sheets/sheetstest"
)

func quiet() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestUploadSendsBase64(t *testing.T) {
	gw, srv := sheetstest.NewGateway(t)
	svc := service.New(gw, 1, quiet())

	res, err := svc.Upload(context.Background(), service.File{
		Name:           "scan.pdf",
		Data:           []byte("%PDF-1.4"),
		Folder:         "Surat Masuk",
		CustomFilename: "B-007 Undangan",
	})
	require.NoError(t, err)
	assert.Equal(t, constants.FileTypePDF, res.FileType)
	assert.True(t, strings.HasPrefix(res.URL, "https://files.example.test/surat-masuk/"))

	calls := srv.CallsFor(sheets.ActionUploadFile)
	require.Len(t, calls, 1)
	body := string(calls[0].Data)
	assert.Contains(t, body, base64.StdEncoding.EncodeToString([]byte("%PDF-1.4")))
	assert.Contains(t, body, `"mimeType":"application/pdf"`)
	assert.Contains(t, body, `"customFilename":"b-007-undangan.pdf"`)
}

func TestUploadRejectsLocally(t *testing.T) {
	gw, srv := sheetstest.NewGateway(t)
	svc := service.New(gw, 1, quiet())

	cases := map[string]service.File{
		"empty":    {Name: "a.pdf"},
		"too big":  {Name: "a.pdf", Data: make([]byte, 1<<20+1)},
		"bad type": {Name: "a.exe", Data: []byte("x")},
	}
	for name, f := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Upload(context.Background(), f)
			var ve *apperror.ValidationError
			require.ErrorAs(t, err, &ve)
		})
	}
	assert.Empty(t, srv.Calls())
}
