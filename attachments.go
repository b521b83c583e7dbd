package neuron

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 1200
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
)

// NewAttachment builds an attachment row from uploaded file bytes. Image
// uploads wider than maxImageWidth are downscaled and re-encoded as JPEG
// before being embedded; everything else is stored verbatim.
func NewAttachment(contentID, name, mediaType string, data []byte) Attachment {
	if strings.HasPrefix(mediaType, "image/") {
		if resized, ok := shrinkImage(data); ok {
			data = resized
			mediaType = "image/jpeg"
			name = jpegName(name)
		}
	}
	return Attachment{
		ID:         uuid.NewString(),
		ContentID:  contentID,
		Name:       name,
		Type:       mediaType,
		Size:       int64(len(data)),
		URL:        EncodeDataURI(mediaType, data),
		UploadedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// EncodeDataURI embeds raw bytes as a base64 data URI.
func EncodeDataURI(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI recovers the media type and raw bytes from a data URI
// produced by EncodeDataURI.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URI")
	}
	mediaType, _ := strings.CutSuffix(meta, ";base64")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URI payload: %w", err)
	}
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	return mediaType, data, nil
}

// shrinkImage decodes an image and, when it is wider than maxImageWidth,
// scales it down and re-encodes as JPEG. Returns ok=false when the bytes are
// not a decodable image or no resize is needed.
func shrinkImage(data []byte) ([]byte, bool) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxImageWidth {
		return nil, false
	}
	newH := h * maxImageWidth / w
	dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}

func jpegName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	return name + ".jpg"
}
