package service_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suratku_backend/internals/apperror"
	"suratku_backend/internals/features/correspondence/numbering"
	"suratku_backend/internals/features/correspondence/numbering/model"
	"suratku_backend/internals/features/correspondence/outgoing/service"
	"suratku_backend/internals/session"
	"suratku_backend/internals/sheets"
	"suratku_backend/internals/sheets/sheetstest"
)

var actor = session.Actor{Name: "Bu Ani", Role: "Admin"}

func quietLog() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

// memJournal menyimpan jurnal di memori.
type memJournal struct {
	rows map[uuid.UUID]*model.NumberIssuanceModel
}

func (j *memJournal) Save(_ context.Context, m *model.NumberIssuanceModel) error {
	if j.rows == nil {
		j.rows = map[uuid.UUID]*model.NumberIssuanceModel{}
	}
	cp := *m
	j.rows[m.NumberIssuanceID] = &cp
	return nil
}

func (j *memJournal) Get(_ context.Context, id uuid.UUID) (*model.NumberIssuanceModel, error) {
	m, ok := j.rows[id]
	if !ok {
		return nil, &apperror.NotFoundError{Collection: "number_issuances", Key: id.String()}
	}
	cp := *m
	return &cp, nil
}

func newService(t *testing.T, opts ...func(*service.Options)) (*service.Service, *sheetstest.Server) {
	t.Helper()
	gw, srv := sheetstest.NewGateway(t)
	srv.SetSettings(sheets.Record{"kodeInstansi": "/ORG/", "resetFrequency": "never"})
	opt := service.Options{Location: time.UTC, Log: quietLog()}
	for _, f := range opts {
		f(&opt)
	}
	return service.New(gw, opt), srv
}

func TestNextNumberScenario(t *testing.T) {
	svc, srv := newService(t)
	srv.Seed(sheets.OutgoingLetters,
		sheets.Record{"nomor": "'B-002/ORG/400.1/I/2024"},
		sheets.Record{"nomor": "B-005/ORG/400.1/II/2024"},
		sheets.Record{"nomor": "B-001/ORG/400.1/I/2024"},
	)

	p, err := svc.NextNumber(context.Background(), service.PreviewRequest{Tanggal: day("2024-03-15"), Kode: "400.1"})
	require.NoError(t, err)

	assert.Equal(t, 6, p.Sequence)
	assert.Equal(t, "B-006/ORG/400.1/III/2024", p.Rendered)
	require.Len(t, p.Planned, 1)
	assert.Equal(t, numbering.TipeInduk, p.Planned[0].Tipe)
}

func TestNextNumberDefaultsOrgCode(t *testing.T) {
	svc, srv := newService(t)
	srv.SetSettings(sheets.Record{})

	p, err := svc.NextNumber(context.Background(), service.PreviewRequest{Tanggal: day("2024-01-02"), Kode: "400.3.5"})
	require.NoError(t, err)
	assert.Equal(t, "B-001/DIK-SDN2PLP/400.3.5/I/2024", p.Rendered)
}

func TestNextNumberYearlyReset(t *testing.T) {
	svc, srv := newService(t)
	srv.SetSettings(sheets.Record{"kodeInstansi": "/ORG/", "resetFrequency": "yearly"})
	srv.Seed(sheets.OutgoingLetters,
		sheets.Record{"nomor": "B-090/ORG/400/XII/2023", "rawDate": "2023-12-20"},
		sheets.Record{"nomor": "B-002/ORG/400/I/2024", "rawDate": "2024-01-09"},
	)

	p, err := svc.NextNumber(context.Background(), service.PreviewRequest{Tanggal: day("2024-02-01"), Kode: "400"})
	require.NoError(t, err)
	assert.Equal(t, "003", p.Padded)
}

func TestIssueParentAndSubs(t *testing.T) {
	svc, srv := newService(t)
	srv.Seed(sheets.OutgoingLetters, sheets.Record{"nomor": "B-006/ORG/400.1/I/2024"})

	res, err := svc.Issue(context.Background(), actor, service.IssueRequest{
		Tanggal:     day("2024-03-15"),
		Kode:        "400.1",
		Perihal:     "Undangan",
		Tujuan:      "Wali murid",
		SubPerihals: []string{"Kelas 1", "Kelas 2", "Kelas 3"},
	})
	require.NoError(t, err)
	assert.Equal(t, "007", res.Padded)
	require.Len(t, res.Results, 4)

	rows := srv.Rows(sheets.OutgoingLetters)
	require.Len(t, rows, 5)
	want := []string{"'B-007/", "'B-007.1/", "'B-007.2/", "'B-007.3/"}
	for i, w := range want {
		r := rows[i+1]
		assert.True(t, strings.HasPrefix(r.String("nomor"), w), r.String("nomor"))
		assert.True(t, strings.HasSuffix(r.String("nomor"), "/ORG/400.1/III/2024"))
		assert.Equal(t, "Bu Ani", r.String("penginput"))
		assert.Equal(t, "15/03/2024", r.String("tanggal"))
		assert.Equal(t, "2024-03-15", r.String("rawDate"))
		assert.Equal(t, "Published", r.String("status"))
	}
	assert.Equal(t, "Induk", rows[1].String("tipe"))
	assert.Equal(t, "Undangan", rows[1].String("perihal"))
	assert.Equal(t, "Sub-2", rows[3].String("tipe"))
	assert.Equal(t, "Undangan - Kelas 2", rows[3].String("perihal"))

	assert.Equal(t, "'007", srv.Settings().String("lastNumber"))
}

func TestManualSequenceNeverLowersLastNumber(t *testing.T) {
	svc, srv := newService(t)
	srv.SetSettings(sheets.Record{"kodeInstansi": "/ORG/", "resetFrequency": "never", "lastNumber": "'010"})
	ctx := context.Background()

	res, err := svc.Issue(ctx, actor, service.IssueRequest{
		Tanggal: day("2024-03-15"), Kode: "400", Perihal: "Koreksi", Sequence: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "003", res.Padded)
	assert.Equal(t, "'010", srv.Settings().String("lastNumber"))
	assert.Empty(t, srv.CallsFor(sheets.ActionUpdateSettings))

	_, err = svc.Issue(ctx, actor, service.IssueRequest{
		Tanggal: day("2024-03-15"), Kode: "400", Perihal: "Lompat", Sequence: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, "'012", srv.Settings().String("lastNumber"))
}

func TestIssueRequiresActor(t *testing.T) {
	svc, srv := newService(t)

	_, err := svc.Issue(context.Background(), session.Actor{}, service.IssueRequest{
		Tanggal: day("2024-03-15"), Kode: "400", Perihal: "x",
	})

	var ve *apperror.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, srv.Calls())
}

func TestIssuePartialFailureAndRedrive(t *testing.T) {
	journal := &memJournal{}
	svc, srv := newService(t, func(o *service.Options) { o.Journal = journal })

	failing := true
	srv.FailWrite = func(action sheets.Action, rec sheets.Record) bool {
		return failing && action == sheets.ActionCreateSuratKeluar && strings.Contains(rec.String("nomor"), ".2/")
	}

	res, err := svc.Issue(context.Background(), actor, service.IssueRequest{
		Tanggal:     day("2024-03-15"),
		Kode:        "400",
		Perihal:     "Rapat",
		SubPerihals: []string{"A", "B", "C"},
	})

	var pw *apperror.PartialWriteError
	require.ErrorAs(t, err, &pw)
	require.NotNil(t, res)
	failed := pw.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, 2, failed[0].Index)
	assert.Len(t, srv.Rows(sheets.OutgoingLetters), 3)

	id, err := uuid.Parse(res.IssuanceID)
	require.NoError(t, err)
	assert.Equal(t, model.IssuancePartial, journal.rows[id].NumberIssuanceStatus)

	failing = false
	again, err := svc.Redrive(context.Background(), actor, service.RedriveRequest{IssuanceID: res.IssuanceID})
	require.NoError(t, err)
	require.Len(t, again.Results, 4)
	for _, r := range again.Results {
		assert.True(t, r.OK() && r.Error == "", r.Key)
	}

	rows := srv.Rows(sheets.OutgoingLetters)
	require.Len(t, rows, 4)
	assert.True(t, strings.HasPrefix(rows[3].String("nomor"), "'B-001.2/"))
	assert.Len(t, srv.CallsFor(sheets.ActionCreateSuratKeluar), 5)
	assert.Equal(t, model.IssuanceComplete, journal.rows[id].NumberIssuanceStatus)
}

func TestIssueAllFailedReturnsFirstError(t *testing.T) {
	svc, srv := newService(t)
	srv.FailWrite = func(action sheets.Action, _ sheets.Record) bool {
		return action == sheets.ActionCreateSuratKeluar
	}

	_, err := svc.Issue(context.Background(), actor, service.IssueRequest{
		Tanggal: day("2024-03-15"), Kode: "400", Perihal: "x", SubPerihals: []string{"a"},
	})

	var re *apperror.RemoteError
	require.ErrorAs(t, err, &re)
	var pw *apperror.PartialWriteError
	assert.False(t, errors.As(err, &pw))
	assert.Empty(t, srv.CallsFor(sheets.ActionUpdateSettings))
}

func TestRedriveWithExplicitLetters(t *testing.T) {
	svc, srv := newService(t)

	res, err := svc.Redrive(context.Background(), actor, service.RedriveRequest{
		Letters: []sheets.Record{{"id": "99", "nomor": "B-010.1/ORG/400/III/2024", "perihal": "x"}},
	})
	require.NoError(t, err)
	require.Len(t, res.Results, 1)

	rows := srv.Rows(sheets.OutgoingLetters)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0].ID())
	assert.Equal(t, "Bu Ani", rows[0].String("penginput"))
}

func TestRedriveUnknownIssuance(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Redrive(context.Background(), actor, service.RedriveRequest{IssuanceID: uuid.NewString()})

	var nf *apperror.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestLockerWrapsSequenceStep(t *testing.T) {
	lk := &countingLocker{}
	svc, _ := newService(t, func(o *service.Options) { o.Locker = lk })

	_, err := svc.Issue(context.Background(), actor, service.IssueRequest{
		Tanggal: day("2024-03-15"), Kode: "400", Perihal: "x",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{service.LockKey}, lk.keys)
}

type countingLocker struct{ keys []string }

func (l *countingLocker) WithLock(ctx context.Context, key string, fn func(context.Context) error) error {
	l.keys = append(l.keys, key)
	return fn(ctx)
}

func TestVerifyIgnoresSpacesAndCase(t *testing.T) {
	svc, srv := newService(t)
	srv.Seed(sheets.OutgoingLetters, sheets.Record{"nomor": "'B-005/ORG/400/III/2024", "perihal": "x"})

	rec, err := svc.Verify(context.Background(), " b-005 / org/400/III/2024 ")
	require.NoError(t, err)
	assert.Equal(t, "x", rec.String("perihal"))

	_, err = svc.Verify(context.Background(), "B-999")
	var nf *apperror.NotFoundError
	assert.ErrorAs(t, err, &nf)
}
