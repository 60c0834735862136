package collection

import "suratku_backend/internals/sheets"

// Spesifikasi tiap sheet.
var (
	UsersSpec = Spec{
		Sheet:      sheets.Users,
		KeyFields:  []string{"id", "username", "name"},
		TextFields: []string{"nip", "hp"},
		Fields:     []string{"id", "name", "username", "password", "role", "status", "nip", "hp", "jabatan", "avatar"},
	}

	IncomingSpec = Spec{
		Sheet:      sheets.IncomingLetters,
		KeyFields:  []string{"id", "nomor"},
		TextFields: []string{"nomor", "kode"},
		Fields: []string{
			"id", "nomor", "kode", "tanggalMasuk", "rawDate", "pengirim", "perihal",
			"penginput", "status", "fileUrl",
		},
	}

	OutgoingSpec = Spec{
		Sheet:      sheets.OutgoingLetters,
		KeyFields:  []string{"id", "nomor"},
		TextFields: []string{"nomor"},
		Fields: []string{
			"id", "nomor", "perihal", "tujuan", "tipe", "penginput", "tanggal", "rawDate",
			"status", "fileUrl",
		},
	}

	ClassificationsSpec = Spec{
		Sheet:      sheets.Classifications,
		KeyFields:  []string{"code"},
		TextFields: []string{"code"},
		Fields:     []string{"code", "label", "type"},
		IDField:    "code",
	}
)

// SettingsTextFields: kolom settings yang berisi angka bermakna teks.
var SettingsTextFields = []string{"hpAdmin", "teleponSekolah", "nipKepsek", "nipAdmin", "lastNumber"}
