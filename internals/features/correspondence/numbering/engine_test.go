package numbering_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suratku_backend/internals/apperror"
	"suratku_backend/internals/features/correspondence/numbering"
	"suratku_backend/internals/sheets"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRomanMonth(t *testing.T) {
	assert.Equal(t, "I", numbering.RomanMonth(time.January))
	assert.Equal(t, "III", numbering.RomanMonth(time.March))
	assert.Equal(t, "XII", numbering.RomanMonth(time.December))
	assert.Equal(t, "", numbering.RomanMonth(0))
}

func TestExtractSequence(t *testing.T) {
	e := numbering.Default

	cases := map[string]int{
		"B-005/ORG/400.1/III/2024":  5,
		"'B-012/ORG/400.1/III/2024": 12,
		" B-100.2/ORG/400/I/2023":   100,
		"B-7/X/1/I/2020":            7,
	}
	for in, want := range cases {
		got, ok := e.ExtractSequence(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "SK-001/X", "005/B-009", "B-/x"} {
		_, ok := e.ExtractSequence(in)
		assert.False(t, ok, in)
	}
}

func TestNextSequenceIgnoresOrder(t *testing.T) {
	e := numbering.Default
	orders := [][]string{
		{"B-001/A/1/I/2024", "B-002/A/1/I/2024", "B-005/A/1/I/2024"},
		{"B-005/A/1/I/2024", "B-001/A/1/I/2024", "B-002/A/1/I/2024"},
		{"B-002/A/1/I/2024", "surat lama", "B-005/A/1/I/2024", "B-001/A/1/I/2024"},
	}
	for _, nomors := range orders {
		assert.Equal(t, 6, e.NextSequence(nomors))
	}
	assert.Equal(t, 1, e.NextSequence(nil))
	assert.Equal(t, 1, e.NextSequence([]string{"tanpa pola"}))
}

func TestNextRendersParentNumber(t *testing.T) {
	tpl := numbering.Template{OrgCode: "/ORG/", ClassCode: "400.1", Date: date("2024-03-15")}

	n, err := numbering.Default.Next([]string{"B-041/ORG/400.1/II/2024"}, tpl)
	require.NoError(t, err)

	assert.Equal(t, 42, n.Sequence)
	assert.Equal(t, "042", n.Padded)
	assert.Equal(t, "B-042/ORG/400.1/III/2024", n.Rendered)
}

func TestNextOnEmptyCollection(t *testing.T) {
	tpl := numbering.Template{OrgCode: "/ORG/", ClassCode: "400.1", Date: date("2024-03-15")}

	n, err := numbering.Default.Next(nil, tpl)
	require.NoError(t, err)
	assert.Equal(t, "B-001/ORG/400.1/III/2024", n.Rendered)
}

func TestNextRequiresDateAndClass(t *testing.T) {
	_, err := numbering.Default.Next(nil, numbering.Template{ClassCode: "400"})
	var ve *apperror.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "tanggal", ve.Field)

	_, err = numbering.Default.Next(nil, numbering.Template{Date: date("2024-01-01")})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "kode", ve.Field)
}

func TestExpandParentAndSubs(t *testing.T) {
	tpl := numbering.Template{OrgCode: "/ORG/", ClassCode: "400.3.5", Date: date("2024-11-02")}

	planned, err := numbering.Default.Expand(7, tpl, 3)
	require.NoError(t, err)
	require.Len(t, planned, 4)

	want := []struct{ tipe, seg string }{
		{"Induk", "B-007/"},
		{"Sub-1", "B-007.1/"},
		{"Sub-2", "B-007.2/"},
		{"Sub-3", "B-007.3/"},
	}
	for i, w := range want {
		assert.Equal(t, w.tipe, planned[i].Tipe)
		assert.True(t, strings.HasPrefix(planned[i].Nomor, w.seg), planned[i].Nomor)
		assert.True(t, strings.HasSuffix(planned[i].Nomor, "/ORG/400.3.5/XI/2024"), planned[i].Nomor)
		assert.Equal(t, i, planned[i].SubIndex)
	}
}

func TestExpandWithoutSubs(t *testing.T) {
	tpl := numbering.Template{OrgCode: "/ORG/", ClassCode: "400", Date: date("2024-01-10")}

	planned, err := numbering.Default.Expand(1, tpl, 0)
	require.NoError(t, err)
	require.Len(t, planned, 1)
	assert.Equal(t, "B-001/ORG/400/I/2024", planned[0].Nomor)

	_, err = numbering.Default.Expand(1, tpl, -1)
	assert.Error(t, err)
}

func TestCustomWidth(t *testing.T) {
	e := numbering.New("SK", 4)
	assert.Equal(t, "0009", e.FormatSequence(9))
	seq, ok := e.ExtractSequence("SK-0010/x")
	require.True(t, ok)
	assert.Equal(t, 10, seq)
}

func TestResetFrequency(t *testing.T) {
	assert.Equal(t, numbering.ResetYearly, numbering.ParseResetFrequency(" Yearly "))
	assert.Equal(t, numbering.ResetMonthly, numbering.ParseResetFrequency("monthly"))
	assert.Equal(t, numbering.ResetNever, numbering.ParseResetFrequency(""))
	assert.Equal(t, numbering.ResetNever, numbering.ParseResetFrequency("weekly"))

	a, b := date("2024-03-31"), date("2024-04-01")
	assert.True(t, numbering.ResetYearly.SamePeriod(a, b))
	assert.False(t, numbering.ResetMonthly.SamePeriod(a, b))
	assert.True(t, numbering.ResetNever.SamePeriod(a, date("1999-01-01")))

	assert.Equal(t, date("2024-01-01"), numbering.ResetYearly.PeriodStart(b))
	assert.Equal(t, date("2024-04-01"), numbering.ResetMonthly.PeriodStart(b))
}

func TestFilterPeriodDropsOldLetters(t *testing.T) {
	rows := []sheets.Record{
		{"nomor": "B-050/A/1/XII/2023", "rawDate": "2023-12-30"},
		{"nomor": "B-003/A/1/I/2024", "rawDate": "2024-01-05"},
		{"nomor": "B-004/A/1/II/2024", "tanggal": "07/02/2024"},
		{"nomor": "B-002/A/1/?/?"},
	}
	ref := date("2024-02-10")

	yearly := numbering.FilterPeriod(rows, numbering.ResetYearly, ref)
	assert.Equal(t, 5, numbering.Default.NextSequence(numbering.Nomors(yearly)))

	monthly := numbering.FilterPeriod(rows, numbering.ResetMonthly, ref)
	assert.Len(t, monthly, 2)

	never := numbering.FilterPeriod(rows, numbering.ResetNever, ref)
	assert.Equal(t, 51, numbering.Default.NextSequence(numbering.Nomors(never)))
}

func TestLetterDate(t *testing.T) {
	d, ok := numbering.LetterDate(sheets.Record{"rawDate": "2024-03-15T00:00:00.000Z"}, time.UTC)
	require.True(t, ok)
	assert.Equal(t, date("2024-03-15"), d)

	d, ok = numbering.LetterDate(sheets.Record{"tanggalMasuk": "5/3/2024"}, time.UTC)
	require.True(t, ok)
	assert.Equal(t, date("2024-03-05"), d)

	_, ok = numbering.LetterDate(sheets.Record{}, time.UTC)
	assert.False(t, ok)
}

func TestNoLockRunsFn(t *testing.T) {
	called := false
	err := numbering.NoLock{}.WithLock(context.Background(), "surat_keluar", func(context.Context) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestLockIDStable(t *testing.T) {
	assert.Equal(t, numbering.LockID("surat_keluar"), numbering.LockID("surat_keluar"))
	assert.NotEqual(t, numbering.LockID("surat_keluar"), numbering.LockID("surat_masuk"))
}
