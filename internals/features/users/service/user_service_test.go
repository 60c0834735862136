package service_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"suratku_backend/internals/apperror"
	"suratku_backend/internals/features/users/service"
	"suratku_backend/internals/session"
	"suratku_backend/internals/sheets"
	"suratku_backend/internals/sheets/sheetstest"
)

func newService(t *testing.T) (*service.Service, *sheetstest.Server) {
	t.Helper()
	gw, srv := sheetstest.NewGateway(t)
	l := logrus.New()
	l.SetOutput(io.Discard)
	return service.New(gw, l).WithCost(bcrypt.MinCost), srv
}

func TestCreateHashesPasswordAndHidesIt(t *testing.T) {
	svc, srv := newService(t)

	out, err := svc.Create(context.Background(), sheets.Record{
		"name": "Siti", "username": "siti", "password": "rahasia", "nip": "0019",
	})
	require.NoError(t, err)
	assert.NotContains(t, out, "password")
	assert.Equal(t, "1", out.ID())
	assert.Equal(t, "0019", out.String("nip"))
	assert.Equal(t, "Guru", out.String("role"))

	raw := srv.Rows(sheets.Users)[0]
	assert.True(t, strings.HasPrefix(raw.String("password"), "$2"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(raw.String("password")), []byte("rahasia")))
	assert.Equal(t, "'0019", raw.String("nip"))
	assert.Equal(t, "Active", raw.String("status"))
}

func TestCreateValidation(t *testing.T) {
	svc, srv := newService(t)
	srv.Seed(sheets.Users, sheets.Record{"name": "A", "username": "Budi", "password": "x"})

	cases := map[string]sheets.Record{
		"no username": {"password": "x"},
		"no password": {"username": "baru"},
		"bad role":    {"username": "baru", "password": "x", "role": "Kepala"},
		"taken":       {"username": "budi", "password": "x"},
	}
	for name, rec := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), rec)
			var ve *apperror.ValidationError
			require.ErrorAs(t, err, &ve)
		})
	}
	assert.Empty(t, srv.CallsFor(sheets.ActionCreateUser))
}

func TestUpdateKeepsPasswordWhenEmpty(t *testing.T) {
	svc, srv := newService(t)
	srv.Seed(sheets.Users, sheets.Record{"name": "A", "username": "a", "password": "$2a$04$abc"})

	out, err := svc.Update(context.Background(), "1", sheets.Record{"name": "A2", "password": ""})
	require.NoError(t, err)
	assert.NotContains(t, out, "password")

	raw := srv.Rows(sheets.Users)[0]
	assert.Equal(t, "A2", raw.String("name"))
	assert.Equal(t, "$2a$04$abc", raw.String("password"))
}

func TestListNeverReturnsPassword(t *testing.T) {
	svc, srv := newService(t)
	srv.Seed(sheets.Users, sheets.Record{"name": "A", "username": "a", "password": "p"})

	rows, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.NotContains(t, rows[0], "password")
}

func TestUpdateProfileCascadesName(t *testing.T) {
	svc, srv := newService(t)
	srv.Seed(sheets.Users, sheets.Record{"name": "Bu Ani", "username": "ani", "role": "Guru"})
	srv.Seed(sheets.OutgoingLetters, sheets.Record{"nomor": "B-001", "penginput": "Bu Ani"})

	actor := session.Actor{ID: "1", Name: "Bu Ani", Role: "Guru"}
	_, err := svc.UpdateProfile(context.Background(), actor, sheets.Record{"name": "Bu Ani S.Pd", "hp": "0812", "role": "Admin"})
	require.NoError(t, err)

	assert.Equal(t, "Bu Ani S.Pd", srv.Rows(sheets.OutgoingLetters)[0].String("penginput"))
	u := srv.Rows(sheets.Users)[0]
	assert.Equal(t, "'0812", u.String("hp"))
	assert.Equal(t, "Guru", u.String("role"))
}

func TestUpdateProfileOtherUserNeedsAdmin(t *testing.T) {
	svc, srv := newService(t)

	_, err := svc.UpdateProfile(context.Background(), session.Actor{ID: "1", Name: "x", Role: "Guru"}, sheets.Record{"id": "2", "name": "y"})

	var ve *apperror.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, srv.Calls())
}

func TestUpdateProfileActorWithoutIDRejected(t *testing.T) {
	svc, srv := newService(t)
	srv.Seed(sheets.Users, sheets.Record{"name": "Bu Ani", "username": "ani", "password": "lama", "role": "Admin"})

	_, err := svc.UpdateProfile(context.Background(), session.Actor{Name: "mallory", Role: "Guru"}, sheets.Record{"id": "1", "password": "pwned"})

	var ve *apperror.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "lama", srv.Rows(sheets.Users)[0].String("password"))
	assert.Empty(t, srv.CallsFor(sheets.ActionUpdateUserAndCascade))

	_, err = svc.UpdateProfile(context.Background(), session.Actor{Name: "Bu Ani", Role: "Admin"}, sheets.Record{"id": "1", "name": "Bu Ani S.Pd"})
	require.NoError(t, err)
	assert.Equal(t, "Bu Ani S.Pd", srv.Rows(sheets.Users)[0].String("name"))
}

func TestAuthenticate(t *testing.T) {
	svc, srv := newService(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("benar"), bcrypt.MinCost)
	require.NoError(t, err)
	srv.Seed(sheets.Users,
		sheets.Record{"name": "Admin", "username": "admin", "password": string(hash), "role": "Admin", "status": "Active"},
		sheets.Record{"name": "Lama", "username": "lama", "password": "polos", "role": "Guru"},
		sheets.Record{"name": "Off", "username": "off", "password": "x", "status": "Inactive"},
	)
	ctx := context.Background()

	a, err := svc.Authenticate(ctx, "ADMIN", "benar")
	require.NoError(t, err)
	assert.Equal(t, session.Actor{ID: "1", Name: "Admin", Username: "admin", Role: "Admin"}, a)

	_, err = svc.Authenticate(ctx, "admin", "salah")
	assert.ErrorIs(t, err, service.ErrInvalidLogin)

	_, err = svc.Authenticate(ctx, "off", "x")
	assert.ErrorIs(t, err, service.ErrInvalidLogin)

	_, err = svc.Authenticate(ctx, "lama", "polos")
	require.NoError(t, err)
	upgraded := srv.Rows(sheets.Users)[1].String("password")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(upgraded), []byte("polos")))
}
