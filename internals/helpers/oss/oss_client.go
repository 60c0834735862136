package oss

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	alioss "github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/sirupsen/logrus"

	"suratku_backend/internals/apperror"
	"suratku_backend/internals/configs"
	"suratku_backend/internals/constants"
	helper "suratku_backend/internals/helpers"
	"suratku_backend/internals/sheets"
)

// objectPutter dipenuhi *alioss.Bucket.
type objectPutter interface {
	PutObject(objectKey string, reader io.Reader, options ...alioss.Option) error
}

// Uploader menyimpan lampiran surat ke Aliyun OSS (pengganti uploadFile Apps Script).
type Uploader struct {
	bucket objectPutter
	cfg    configs.OSSConfig
	log    *logrus.Logger
	now    func() time.Time
}

// New membuat client OSS dan memverifikasi bucket.
func New(cfg configs.OSSConfig, log *logrus.Logger) (*Uploader, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	var (
		client *alioss.Client
		err    error
	)
	if cfg.SecurityToken != "" {
		client, err = alioss.New(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey, alioss.SecurityToken(cfg.SecurityToken))
	} else {
		client, err = alioss.New(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey)
	}
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	// Verifikasi ringan lokasi bucket
	if loc, err := client.GetBucketLocation(cfg.Bucket); err != nil {
		var se alioss.ServiceError
		if errors.As(err, &se) && se.StatusCode == 403 && se.Code == "AccessDenied" {
			log.Warnf("[OSS] skip location check karena AccessDenied (bucket=%s)", cfg.Bucket)
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Infof("[OSS] bucket %s location: %s", cfg.Bucket, loc)
	}

	return NewWithBucket(bkt, cfg, log), nil
}

// NewWithBucket dipakai test dengan bucket palsu.
func NewWithBucket(bkt objectPutter, cfg configs.OSSConfig, log *logrus.Logger) *Uploader {
	return &Uploader{bucket: bkt, cfg: cfg, log: log, now: time.Now}
}

// UploadFile memenuhi kontrak upload service: base64 → (webp) → PutObject → URL publik.
func (u *Uploader) UploadFile(ctx context.Context, up sheets.Upload) (sheets.UploadResult, error) {
	raw, err := base64.StdEncoding.DecodeString(up.ContentBase64)
	if err != nil {
		return sheets.UploadResult{}, apperror.Invalid("file", "base64 tidak valid")
	}
	if len(raw) == 0 {
		return sheets.UploadResult{}, apperror.Invalid("file", "file kosong")
	}

	name := up.Name
	if up.CustomFilename != "" {
		name = up.CustomFilename
	}
	contentType := up.MimeType

	if u.cfg.WebP && constants.DetectFileTypeFromExt(name) == constants.FileTypeImage {
		data, err := ConvertToWebP(raw, name, WebPOptions{MaxW: u.cfg.WebPMaxW, MaxH: u.cfg.WebPMaxH, Quality: u.cfg.WebPQuality})
		switch {
		case err == nil:
			raw = data
			name = strings.TrimSuffix(name, filepath.Ext(name)) + ".webp"
			contentType = "image/webp"
		case errors.Is(err, ErrUnsupportedImage):
			// gif/bmp dll. disimpan apa adanya
		default:
			u.log.WithError(err).WithField("file", name).Warn("[WARN] gagal konversi webp, upload file asli")
		}
	}
	if contentType == "" {
		contentType = constants.MimeFromExt(name)
	}

	key := u.buildObjectKey(up.Folder, name)
	opts := []alioss.Option{
		alioss.WithContext(ctx),
		alioss.ContentType(contentType),
		alioss.ContentDisposition("inline"),
		alioss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := u.bucket.PutObject(key, bytes.NewReader(raw), opts...); err != nil {
		return sheets.UploadResult{}, &apperror.TransportError{Action: "oss.PutObject", Err: err}
	}

	url := u.PublicURL(key)
	u.log.WithFields(logrus.Fields{"key": key, "size": len(raw)}).Info("[INFO] Lampiran tersimpan di OSS")
	return sheets.UploadResult{Status: "success", URL: url}, nil
}

/* =======================================================================
   Public URL & Key utils
======================================================================= */

func (u *Uploader) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if base := strings.TrimSpace(u.cfg.PublicBase); base != "" {
		return strings.TrimRight(base, "/") + "/" + key
	}
	end := strings.TrimPrefix(strings.TrimPrefix(u.cfg.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", u.cfg.Bucket, end, key)
}

// buildObjectKey: <prefix>/<folder>/<slug>_<yyyymmdd_hhmmss>_<rand6><ext>
func (u *Uploader) buildObjectKey(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := helper.Slugify(strings.TrimSuffix(filename, filepath.Ext(filename)), 80)

	parts := make([]string, 0, 3)
	if p := strings.Trim(u.cfg.Prefix, "/"); p != "" {
		parts = append(parts, p)
	}
	if f := helper.Slugify(folder, 60); strings.TrimSpace(folder) != "" {
		parts = append(parts, f)
	}
	parts = append(parts, fmt.Sprintf("%s_%s_%s%s", base, u.now().Format("20060102_150405"), randHex(3), ext))
	return strings.Join(parts, "/")
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
