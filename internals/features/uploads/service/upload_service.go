// Package service meneruskan lampiran surat ke aksi uploadFile store (base64) dan
// mengembalikan URL publiknya.
package service

import (
	"context"
	"encoding/base64"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"suratku_backend/internals/apperror"
	"suratku_backend/internals/constants"
	helper "suratku_backend/internals/helpers"
	"suratku_backend/internals/sheets"
)

type Uploader interface {
	UploadFile(ctx context.Context, u sheets.Upload) (sheets.UploadResult, error)
}

type Service struct {
	up       Uploader
	maxBytes int64
	log      *logrus.Logger
}

func New(up Uploader, maxMB int, log *logrus.Logger) *Service {
	if maxMB <= 0 {
		maxMB = 10
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{up: up, maxBytes: int64(maxMB) << 20, log: log}
}

// MaxBytes batas ukuran satu file.
func (s *Service) MaxBytes() int64 { return s.maxBytes }

// File adalah satu lampiran dari multipart form.
type File struct {
	Name           string
	MimeType       string
	Data           []byte
	Folder         string
	CustomFilename string
}

type Result struct {
	URL      string `json:"url"`
	Name     string `json:"name"`
	FileType int    `json:"fileType"`
}

// Upload memvalidasi ukuran dan tipe, lalu mengirim konten base64 ke store.
func (s *Service) Upload(ctx context.Context, f File) (*Result, error) {
	if len(f.Data) == 0 {
		return nil, apperror.Invalid("file", "No file uploaded")
	}
	if int64(len(f.Data)) > s.maxBytes {
		return nil, apperror.Invalid("file", "ukuran file melebihi %d MB", s.maxBytes>>20)
	}
	ft := constants.DetectFileTypeFromExt(f.Name)
	if ft == constants.FileTypeUnknown {
		return nil, apperror.Invalid("file", "tipe file %q tidak didukung", filepath.Ext(f.Name))
	}

	mime := strings.TrimSpace(f.MimeType)
	if mime == "" || mime == "application/octet-stream" {
		mime = constants.MimeFromExt(f.Name)
	}
	folder := "default"
	if strings.TrimSpace(f.Folder) != "" {
		folder = helper.Slugify(f.Folder, 50)
	}
	custom := ""
	if strings.TrimSpace(f.CustomFilename) != "" {
		custom = helper.SafeFilename(f.CustomFilename, strings.ToLower(filepath.Ext(f.Name)))
	}

	res, err := s.up.UploadFile(ctx, sheets.Upload{
		Name:           f.Name,
		MimeType:       mime,
		ContentBase64:  base64.StdEncoding.EncodeToString(f.Data),
		Folder:         folder,
		CustomFilename: custom,
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"folder": folder, "name": f.Name, "bytes": len(f.Data)}).
		Info("[INFO] upload sukses")
	return &Result{URL: res.URL, Name: f.Name, FileType: ft}, nil
}
