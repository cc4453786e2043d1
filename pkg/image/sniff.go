package image

import "bytes"

var (
	pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	riffHeader   = []byte("RIFF")
	webpHeader   = []byte("WEBP")
)

// DetectContentType sniffs WebP, PNG and JPEG signatures. Anything shorter
// than eight bytes or unrecognised is served as image/jpeg.
func DetectContentType(data []byte) string {
	if len(data) < 8 {
		return "image/jpeg"
	}

	if len(data) >= 12 && bytes.Equal(data[0:4], riffHeader) && bytes.Equal(data[8:12], webpHeader) {
		return "image/webp"
	}

	if bytes.Equal(data[0:8], pngSignature) {
		return "image/png"
	}

	if data[0] == 0xFF && data[1] == 0xD8 {
		return "image/jpeg"
	}

	return "image/jpeg"
}
