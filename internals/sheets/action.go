package sheets

// Action adalah nama aksi yang dikenali endpoint spreadsheet. Set-nya tertutup.
type Action string

const (
	ActionGetUsers             Action = "getUsers"
	ActionCreateUser           Action = "createUser"
	ActionUpdateUser           Action = "updateUser"
	ActionDeleteUser           Action = "deleteUser"
	ActionUpdateUserAndCascade Action = "updateUserAndCascade"

	ActionGetSuratMasuk    Action = "getSuratMasuk"
	ActionCreateSuratMasuk Action = "createSuratMasuk"
	ActionUpdateSuratMasuk Action = "updateSuratMasuk"
	ActionDeleteSuratMasuk Action = "deleteSuratMasuk"

	ActionGetSuratKeluar    Action = "getSuratKeluar"
	ActionCreateSuratKeluar Action = "createSuratKeluar"
	ActionUpdateSuratKeluar Action = "updateSuratKeluar"
	ActionDeleteSuratKeluar Action = "deleteSuratKeluar"

	ActionGetClassifications  Action = "getClassifications"
	ActionSaveClassifications Action = "saveClassifications"

	ActionGetSettings    Action = "getSettings"
	ActionUpdateSettings Action = "updateSettings"

	ActionUploadFile Action = "uploadFile"
)

var knownActions = map[Action]struct{}{
	ActionGetUsers:             {},
	ActionCreateUser:           {},
	ActionUpdateUser:           {},
	ActionDeleteUser:           {},
	ActionUpdateUserAndCascade: {},
	ActionGetSuratMasuk:        {},
	ActionCreateSuratMasuk:     {},
	ActionUpdateSuratMasuk:     {},
	ActionDeleteSuratMasuk:     {},
	ActionGetSuratKeluar:       {},
	ActionCreateSuratKeluar:    {},
	ActionUpdateSuratKeluar:    {},
	ActionDeleteSuratKeluar:    {},
	ActionGetClassifications:   {},
	ActionSaveClassifications:  {},
	ActionGetSettings:          {},
	ActionUpdateSettings:       {},
	ActionUploadFile:           {},
}

// Valid true kalau aksi termasuk set yang dikenal.
func (a Action) Valid() bool {
	_, ok := knownActions[a]
	return ok
}

func (a Action) String() string { return string(a) }

// Collection mendeskripsikan satu sheet beserta aksi-aksinya.
// Aksi kosong berarti operasi itu tidak didukung oleh sheet tersebut.
type Collection struct {
	Name    string
	List    Action
	Create  Action
	Update  Action
	Delete  Action
	Replace Action
}

var (
	Users = Collection{
		Name:   "users",
		List:   ActionGetUsers,
		Create: ActionCreateUser,
		Update: ActionUpdateUser,
		Delete: ActionDeleteUser,
	}
	IncomingLetters = Collection{
		Name:   "surat_masuk",
		List:   ActionGetSuratMasuk,
		Create: ActionCreateSuratMasuk,
		Update: ActionUpdateSuratMasuk,
		Delete: ActionDeleteSuratMasuk,
	}
	OutgoingLetters = Collection{
		Name:   "surat_keluar",
		List:   ActionGetSuratKeluar,
		Create: ActionCreateSuratKeluar,
		Update: ActionUpdateSuratKeluar,
		Delete: ActionDeleteSuratKeluar,
	}
	Classifications = Collection{
		Name:    "classifications",
		List:    ActionGetClassifications,
		Replace: ActionSaveClassifications,
	}
)

// CollectionByName untuk CLI/route yang menerima nama koleksi sebagai string.
func CollectionByName(name string) (Collection, bool) {
	for _, c := range []Collection{Users, IncomingLetters, OutgoingLetters, Classifications} {
		if c.Name == name {
			return c, true
		}
	}
	return Collection{}, false
}
