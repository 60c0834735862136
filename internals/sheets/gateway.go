package sheets

import (
	"context"
	"strings"

	"suratku_backend/internals/apperror"
)

// Gateway adalah antarmuka bertipe di atas Invoke: satu method per keluarga aksi,
// koleksi dipilih lewat deskriptor Collection sehingga nama aksi tidak pernah ditulis manual.
type Gateway struct {
	inv Invoker
}

// NewGateway membungkus Invoker (biasanya *Client).
func NewGateway(inv Invoker) *Gateway {
	return &Gateway{inv: inv}
}

// List mengambil semua baris mentah, termasuk baris padding.
func (g *Gateway) List(ctx context.Context, c Collection) ([]Record, error) {
	if c.List == "" {
		return nil, unsupported(c, "list")
	}
	resp, err := g.inv.Invoke(ctx, c.List, nil)
	if err != nil {
		return nil, err
	}
	return resp.Records()
}

// Create menambah satu baris; hasilnya objek balasan store (berisi id).
func (g *Gateway) Create(ctx context.Context, c Collection, rec Record) (Record, error) {
	if c.Create == "" {
		return nil, unsupported(c, "create")
	}
	resp, err := g.inv.Invoke(ctx, c.Create, rec)
	if err != nil {
		return nil, err
	}
	return resp.Record()
}

// Update menimpa baris yang id-nya sama dengan rec["id"]; pencocokan dilakukan di sisi remote.
func (g *Gateway) Update(ctx context.Context, c Collection, rec Record) (Record, error) {
	if c.Update == "" {
		return nil, unsupported(c, "update")
	}
	if strings.TrimSpace(rec.ID()) == "" {
		return nil, apperror.Invalid("id", "id wajib diisi untuk update %s", c.Name)
	}
	resp, err := g.inv.Invoke(ctx, c.Update, rec)
	if err != nil {
		return nil, err
	}
	return resp.Record()
}

// Delete memanggil aksi hapus remote.
func (g *Gateway) Delete(ctx context.Context, c Collection, id string) error {
	if c.Delete == "" {
		return unsupported(c, "delete")
	}
	if strings.TrimSpace(id) == "" {
		return apperror.Invalid("id", "id wajib diisi untuk delete %s", c.Name)
	}
	_, err := g.inv.Invoke(ctx, c.Delete, Record{"id": id})
	return err
}

// ReplaceAll menulis ulang seluruh isi sheet mulai baris pertama.
// Pemanggil bertanggung jawab atas padding ekor (lihat package collection).
func (g *Gateway) ReplaceAll(ctx context.Context, c Collection, rows []Record) error {
	if c.Replace == "" {
		return unsupported(c, "replace")
	}
	if rows == nil {
		rows = []Record{}
	}
	_, err := g.inv.Invoke(ctx, c.Replace, rows)
	return err
}

// GetSettings membaca record settings tunggal.
func (g *Gateway) GetSettings(ctx context.Context) (Record, error) {
	resp, err := g.inv.Invoke(ctx, ActionGetSettings, nil)
	if err != nil {
		return nil, err
	}
	return resp.Record()
}

// UpdateSettings menyimpan kolom settings yang dikirim.
func (g *Gateway) UpdateSettings(ctx context.Context, rec Record) (Record, error) {
	resp, err := g.inv.Invoke(ctx, ActionUpdateSettings, rec)
	if err != nil {
		return nil, err
	}
	return resp.Record()
}

// UpdateUserAndCascade memperbarui user dan menyebarkan perubahan nama ke surat miliknya.
func (g *Gateway) UpdateUserAndCascade(ctx context.Context, rec Record) (Record, error) {
	resp, err := g.inv.Invoke(ctx, ActionUpdateUserAndCascade, rec)
	if err != nil {
		return nil, err
	}
	return resp.Record()
}

// Upload adalah payload aksi uploadFile.
type Upload struct {
	Name           string
	MimeType       string
	ContentBase64  string
	Folder         string
	CustomFilename string
}

func (u Upload) record() Record {
	rec := Record{
		"name":     u.Name,
		"mimeType": u.MimeType,
		"content":  u.ContentBase64,
		"folder":   u.Folder,
	}
	if u.CustomFilename != "" {
		rec["customFilename"] = u.CustomFilename
	}
	return rec
}

// UploadResult adalah balasan {status, url}.
type UploadResult struct {
	Status string `json:"status"`
	URL    string `json:"url"`
}

// UploadFile mengirim file base64; status selain "success" dianggap RemoteError.
func (g *Gateway) UploadFile(ctx context.Context, u Upload) (UploadResult, error) {
	if strings.TrimSpace(u.ContentBase64) == "" {
		return UploadResult{}, apperror.Invalid("file", "file kosong")
	}
	if u.Folder == "" {
		u.Folder = "default"
	}
	resp, err := g.inv.Invoke(ctx, ActionUploadFile, u.record())
	if err != nil {
		return UploadResult{}, err
	}
	var out UploadResult
	if err := resp.Decode(&out); err != nil {
		return UploadResult{}, &apperror.RemoteError{Action: ActionUploadFile.String(), Message: "balasan upload tidak dikenali"}
	}
	if out.Status != "success" || out.URL == "" {
		return UploadResult{}, &apperror.RemoteError{Action: ActionUploadFile.String(), Message: "upload failed"}
	}
	return out, nil
}

func unsupported(c Collection, op string) error {
	return apperror.Invalid("collection", "%s tidak mendukung operasi %s", c.Name, op)
}
