package constants

import (
	"path/filepath"
	"strings"
)

// Jenis lampiran surat.
const (
	FileTypeUnknown = 99
	FileTypeDOCX    = 3
	FileTypePDF     = 4
	FileTypeImage   = 6
)

func DetectFileTypeFromExt(filename string) int {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".doc", ".docx":
		return FileTypeDOCX
	case ".pdf":
		return FileTypePDF
	case ".png", ".jpg", ".jpeg", ".webp":
		return FileTypeImage
	default:
		return FileTypeUnknown
	}
}

// MimeFromExt dipakai kalau client tidak mengirim Content-Type.
func MimeFromExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// Nilai status surat yang ditulis ke store.
const (
	StatusPublished = "Published"
	StatusArchived  = "Archived"
)
