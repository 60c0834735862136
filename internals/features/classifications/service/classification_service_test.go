package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suratku_backend/internals/apperror"
	"suratku_backend/internals/features/classifications/service"
	"suratku_backend/internals/sheets"
	"suratku_backend/internals/sheets/sheetstest"
)

func codes(items []service.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Code)
	}
	return out
}

func TestSortNumericAware(t *testing.T) {
	items := []service.Item{{Code: "400.3.2"}, {Code: "400.3.10"}, {Code: "400.3.1"}}
	service.Sort(items)
	assert.Equal(t, []string{"400.3.1", "400.3.2", "400.3.10"}, codes(items))

	assert.Negative(t, service.CompareCodes("400.3", "400.3.1"))
	assert.Positive(t, service.CompareCodes("400.3.9.1", "400.3.9"))
	assert.Zero(t, service.CompareCodes("400.1", "400.1"))
}

func TestInferType(t *testing.T) {
	assert.Equal(t, service.TypeMain, service.InferType("400.3.2"))
	assert.Equal(t, service.TypeSub, service.InferType("400.3.2.1"))
	assert.Equal(t, service.TypeMain, service.InferType("400"))
}

func TestListHidesEmptyCodes(t *testing.T) {
	gw, srv := sheetstest.NewGateway(t)
	srv.Seed(sheets.Classifications,
		sheets.Record{"code": "'400.3.10", "label": "B", "type": "main"},
		sheets.Record{"code": "", "label": "", "type": ""},
		sheets.Record{"code": "'400.3.9", "label": "A"},
	)

	items, err := service.New(gw).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"400.3.9", "400.3.10"}, codes(items))
	assert.Equal(t, service.TypeMain, items[0].Type)
}

func TestSaveSortsCoercesAndPads(t *testing.T) {
	gw, srv := sheetstest.NewGateway(t)
	srv.Seed(sheets.Classifications,
		sheets.Record{"code": "1.1.1", "label": "x", "type": "main"},
		sheets.Record{"code": "1.1.2", "label": "y", "type": "main"},
		sheets.Record{"code": "1.1.3", "label": "z", "type": "main"},
	)

	saved, err := service.New(gw).Save(context.Background(), []service.Item{
		{Code: "400.3.10", Label: "  Sepuluh  "},
		{Code: "400.3.2.1", Label: "Sub", Type: "sub"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"400.3.2.1", "400.3.10"}, codes(saved))
	assert.Equal(t, "Sepuluh", saved[1].Label)

	raw := srv.Rows(sheets.Classifications)
	require.Len(t, raw, 3)
	assert.Equal(t, "'400.3.2.1", raw[0].String("code"))
	assert.Equal(t, "'400.3.10", raw[1].String("code"))
	assert.True(t, raw[2].IsBlank())
}

func TestSaveRejectsBadInputBeforeNetwork(t *testing.T) {
	cases := map[string][]service.Item{
		"duplicate":  {{Code: "400.1.1", Label: "a"}, {Code: "400.1.1", Label: "b"}},
		"empty code": {{Code: " ", Label: "a"}},
		"no label":   {{Code: "400.1.1"}},
		"bad type":   {{Code: "400.1.1", Label: "a", Type: "sub"}},
		"unknown":    {{Code: "400", Label: "a", Type: "lainnya"}},
	}
	for name, items := range cases {
		t.Run(name, func(t *testing.T) {
			gw, srv := sheetstest.NewGateway(t)

			_, err := service.New(gw).Save(context.Background(), items)

			var ve *apperror.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Empty(t, srv.Calls())
		})
	}
}

func TestAddUpdateDelete(t *testing.T) {
	gw, srv := sheetstest.NewGateway(t)
	srv.Seed(sheets.Classifications, sheets.Record{"code": "400.1.1", "label": "Umum", "type": "main"})
	reg := service.New(gw)
	ctx := context.Background()

	_, err := reg.Add(ctx, service.Item{Code: "400.1.1", Label: "lagi"})
	var ve *apperror.ValidationError
	require.ErrorAs(t, err, &ve)

	_, err = reg.Add(ctx, service.Item{Code: "400.1.1.1", Label: "Anak"})
	require.NoError(t, err)

	it, err := reg.Update(ctx, "400.1.1", service.Item{Label: "Umum Baru"})
	require.NoError(t, err)
	assert.Equal(t, "400.1.1", it.Code)

	_, err = reg.Update(ctx, "999.1.1", service.Item{Label: "x"})
	var nf *apperror.NotFoundError
	require.ErrorAs(t, err, &nf)

	require.NoError(t, reg.Delete(ctx, "400.1.1.1"))

	items, err := reg.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Umum Baru", items[0].Label)
	assert.Len(t, srv.Rows(sheets.Classifications), 2)
}

func TestImportReplacesPrefix(t *testing.T) {
	gw, srv := sheetstest.NewGateway(t)
	srv.Seed(sheets.Classifications,
		sheets.Record{"code": "400.3.1", "label": "Tetap", "type": "main"},
		sheets.Record{"code": "400.3.2", "label": "Lama", "type": "main"},
		sheets.Record{"code": "400.3.2.9", "label": "Lama sub", "type": "sub"},
		sheets.Record{"code": "400.3.13", "label": "Lama", "type": "main"},
	)

	items := service.ParseLines("400.3.2 Pendidikan Anak Usia Dini\n\n400.3.2.1 Kurikulum PAUD\n")
	require.Len(t, items, 2)
	assert.Equal(t, service.TypeSub, items[1].Type)

	res, err := service.New(gw).Import(context.Background(), items, `^400\.3\.(2|3|4|5|6|7|8|9|10|11|12|13)(\.|$)`)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Kept)
	assert.Equal(t, 3, res.Removed)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, []string{"400.3.1", "400.3.2", "400.3.2.1"}, codes(res.Items))

	raw := srv.Rows(sheets.Classifications)
	require.Len(t, raw, 4)
	assert.True(t, raw[3].IsBlank())
}

func TestImportMarkedCodeReplacesExisting(t *testing.T) {
	gw, _ := sheetstest.NewGateway(t)
	ctx := context.Background()
	reg := service.New(gw)
	_, err := reg.Import(ctx, []service.Item{{Code: "400.3.2", Label: "Lama", Type: service.TypeMain}}, "")
	require.NoError(t, err)

	res, err := reg.Import(ctx, []service.Item{{Code: "'400.3.2", Label: "Baru", Type: service.TypeMain}}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Removed)
	assert.Equal(t, 1, res.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "400.3.2", res.Items[0].Code)
	assert.Equal(t, "Baru", res.Items[0].Label)
}

func TestImportInvalidRegex(t *testing.T) {
	gw, _ := sheetstest.NewGateway(t)

	_, err := service.New(gw).Import(context.Background(), nil, "(")

	var ve *apperror.ValidationError
	assert.ErrorAs(t, err, &ve)
}
