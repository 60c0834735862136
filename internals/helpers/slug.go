package helper

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
)

// Slugify mengubah teks bebas jadi slug [a-z0-9-]: diakritik dibuang, "-" dikompres,
// panjang dibatasi maxLen (default 100), fallback "file".
func Slugify(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 100
	}
	s = strings.ToLower(strings.TrimSpace(s))

	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		buf = append(buf, r)
	}
	s = reNonAlnum.ReplaceAllString(string(buf), "-")
	s = strings.Trim(reHyphen.ReplaceAllString(s, "-"), "-")

	if utf8.RuneCountInString(s) > maxLen {
		s = strings.Trim(string([]rune(s)[:maxLen]), "-")
	}
	if s == "" {
		s = "file"
	}
	return s
}

// SafeFilename men-slug nama file tapi mempertahankan ekstensi (huruf kecil).
// fallbackExt dipakai kalau name tidak berekstensi.
func SafeFilename(name, fallbackExt string) string {
	name = strings.TrimSpace(name)
	ext := strings.ToLower(filepath.Ext(name))
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if ext == "" || len(ext) > 6 {
		ext = strings.ToLower(fallbackExt)
	}
	return Slugify(base, 80) + ext
}
