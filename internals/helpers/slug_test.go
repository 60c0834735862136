package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "surat-undangan-rapat", Slugify("  Surat Undangan -- Rapat! ", 0))
	assert.Equal(t, "cafe", Slugify("Café", 0))
	assert.Equal(t, "file", Slugify("///", 0))
	assert.Equal(t, "abc", Slugify("abc-def", 3))
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "b-007-undangan.pdf", SafeFilename("B-007 Undangan.PDF", ""))
	assert.Equal(t, "scan.jpg", SafeFilename("scan", ".jpg"))
	assert.Equal(t, "file", SafeFilename("", ""))
}
