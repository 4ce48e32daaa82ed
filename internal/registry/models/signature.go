package models

import (
	"bytes"
	"encoding/base64"
	"strings"

	id "bukuinduk/pkg/domain"
)

// ImageSource is either an InlineImage or a FileReference.
type ImageSource interface {
	isImageSource()
}

// InlineImage carries decoded image bytes stored with the signature row.
type InlineImage struct {
	Data   []byte
	Format string
}

// FileReference points at an image held in the blob store.
type FileReference struct {
	Key string
}

func (InlineImage) isImageSource()   {}
func (FileReference) isImageSource() {}

// SignatureAttachment is read-only input to the document signature page.
type SignatureAttachment struct {
	ID            id.SignatureID
	TenantID      id.TenantID
	Image         ImageSource
	DisplayName   string
	RoleLabel     string
	SignatureHash string
}

// ParseImageSource classifies a stored image column once, at load time.
// "data:image/png;base64,..." and bare base64 of PNG or JPEG bytes become
// InlineImage; anything else, including keys that happen to be valid base64,
// is treated as a blob key. Undecodable data URIs yield an InlineImage with
// nil Data so rendering falls back to the placeholder.
func ParseImageSource(raw string) ImageSource {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if rest, ok := strings.CutPrefix(raw, "data:"); ok {
		meta, payload, found := strings.Cut(rest, ",")
		if !found {
			return InlineImage{}
		}
		format := strings.TrimPrefix(strings.Split(meta, ";")[0], "image/")
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return InlineImage{Format: format}
		}
		return InlineImage{Data: data, Format: format}
	}
	if hasImageExt(raw) {
		return FileReference{Key: strings.TrimPrefix(raw, "/")}
	}
	if data, err := base64.StdEncoding.DecodeString(raw); err == nil && isImageData(data) {
		return InlineImage{Data: data}
	}
	return FileReference{Key: strings.TrimPrefix(raw, "/")}
}

func hasImageExt(s string) bool {
	lower := strings.ToLower(s)
	for _, ext := range []string{".png", ".jpg", ".jpeg"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// isImageData reports whether data starts with a PNG or JPEG signature.
func isImageData(data []byte) bool {
	return bytes.HasPrefix(data, []byte("\x89PNG")) || bytes.HasPrefix(data, []byte{0xff, 0xd8, 0xff})
}
