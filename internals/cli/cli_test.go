package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suratku_backend/internals/cli"
	"suratku_backend/internals/configs"
	"suratku_backend/internals/sheets"
	"suratku_backend/internals/sheets/sheetstest"
)

func run(t *testing.T, gw *sheets.Gateway, args ...string) (string, error) {
	t.Helper()
	cfg := &configs.Config{Timezone: "UTC", DefaultOrgCode: "/ORG/"}
	open := func(context.Context) (*sheets.Gateway, *configs.Config, error) { return gw, cfg, nil }

	cmd := cli.NewRootCmd(open)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestImportClassificationsCSV(t *testing.T) {
	gw, srv := sheetstest.NewGateway(t)
	srv.Seed(sheets.Classifications,
		sheets.Record{"code": "400", "label": "Umum", "type": "main"},
		sheets.Record{"code": "400.3.2", "label": "Lama", "type": "main"},
	)
	csv := writeFile(t, "kode.csv", "code,label,type\n400.3.2,Kurikulum,main\n400.3.5,Kesiswaan,\n")

	out, err := run(t, gw, "import-classifications", "--csv", csv)
	require.NoError(t, err)
	assert.Contains(t, out, "imported=2")
	assert.Contains(t, out, "total=3")

	rows := srv.Rows(sheets.Classifications)
	var labels []string
	for _, r := range rows {
		labels = append(labels, r.String("label"))
	}
	assert.Contains(t, labels, "Kurikulum")
	assert.NotContains(t, labels, "Lama")
}

func TestImportClassificationsTextWithReplace(t *testing.T) {
	gw, srv := sheetstest.NewGateway(t)
	srv.Seed(sheets.Classifications,
		sheets.Record{"code": "400.3.9", "label": "Dihapus", "type": "main"},
		sheets.Record{"code": "500", "label": "Tetap", "type": "main"},
	)
	txt := writeFile(t, "kode.txt", "400.3.2 Kurikulum\n\n400.3.3 Evaluasi\n")

	out, err := run(t, gw, "import-classifications", "--txt", txt, "--replace", `^400\.3\.`)
	require.NoError(t, err)
	assert.Contains(t, out, "removed=1")
	assert.Contains(t, out, "total=3")
}

func TestImportClassificationsDryRunDoesNotWrite(t *testing.T) {
	gw, srv := sheetstest.NewGateway(t)
	csv := writeFile(t, "kode.csv", "code,label,type\n400,Umum,main\n")

	out, err := run(t, gw, "import-classifications", "--csv", csv, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "dry-run: 1")
	assert.Empty(t, srv.CallsFor(sheets.ActionSaveClassifications))
}

func TestImportClassificationsNeedsSource(t *testing.T) {
	gw, _ := sheetstest.NewGateway(t)

	_, err := run(t, gw, "import-classifications")
	assert.Error(t, err)
}

func TestNextNumber(t *testing.T) {
	gw, srv := sheetstest.NewGateway(t)
	srv.SetSettings(sheets.Record{"kodeInstansi": "/ORG/", "resetFrequency": "never"})
	srv.Seed(sheets.OutgoingLetters, sheets.Record{"nomor": "B-004/ORG/400/I/2024"})

	out, err := run(t, gw, "next-number", "--tanggal", "2024-03-15", "--kode", "400", "--sub", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "B-005/ORG/400/III/2024", lines[0])
	assert.Contains(t, lines[2], "B-005.2/ORG/400/III/2024")
	assert.Empty(t, srv.CallsFor(sheets.ActionCreateSuratKeluar))
}

func TestNextNumberBadDate(t *testing.T) {
	gw, _ := sheetstest.NewGateway(t)

	_, err := run(t, gw, "next-number", "--tanggal", "15/03/2024", "--kode", "400")
	assert.Error(t, err)
}

func TestListHidesPasswords(t *testing.T) {
	gw, srv := sheetstest.NewGateway(t)
	srv.Seed(sheets.Users, sheets.Record{"username": "admin", "password": "rahasia", "name": "Admin"})

	out, err := run(t, gw, "list", "users", "--timeout", time.Second.String())
	require.NoError(t, err)
	assert.Contains(t, out, `"username":"admin"`)
	assert.NotContains(t, out, "rahasia")
}

func TestListUnknownCollection(t *testing.T) {
	gw, _ := sheetstest.NewGateway(t)

	_, err := run(t, gw, "list", "arsip")
	assert.Error(t, err)
}

func TestSeedDefaults(t *testing.T) {
	gw, srv := sheetstest.NewGateway(t)
	srv.Seed(sheets.Classifications,
		sheets.Record{"code": "400", "label": "Umum", "type": "main"},
		sheets.Record{"code": "400.3.4.9", "label": "Kode lama", "type": "sub"},
	)
	srv.Seed(sheets.Users, sheets.Record{"username": "admin", "password": "x", "name": "Admin", "role": "Admin"})

	out, err := run(t, gw, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "seed selesai")

	codes := map[string]bool{}
	for _, r := range srv.Rows(sheets.Classifications) {
		codes[strings.TrimPrefix(r.String("code"), "'")] = true
	}
	assert.True(t, codes["400"])
	assert.True(t, codes["400.3.13.3"])
	assert.False(t, codes["400.3.4.9"])

	// admin sudah ada → tidak dibuat ulang
	assert.Len(t, srv.Rows(sheets.Users), 1)
	assert.Empty(t, srv.CallsFor(sheets.ActionCreateUser))
}
