package neuron

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"
)

func TestDataURIRoundTrip(t *testing.T) {
	data := []byte("%PDF-1.4 fake pdf bytes")
	uri := EncodeDataURI("application/pdf", data)

	mediaType, got, err := DecodeDataURI(uri)
	if err != nil {
		t.Fatalf("DecodeDataURI failed: %v", err)
	}
	if mediaType != "application/pdf" {
		t.Errorf("media type: got %q", mediaType)
	}
	if !bytes.Equal(got, data) {
		t.Error("payload bytes differ after round trip")
	}
}

func TestDecodeDataURIRejectsGarbage(t *testing.T) {
	for _, uri := range []string{"", "http://example.com/x.png", "data:text/plain", "data:text/plain;base64,!!!"} {
		if _, _, err := DecodeDataURI(uri); err == nil {
			t.Errorf("DecodeDataURI(%q) should fail", uri)
		}
	}
}

func TestNewAttachmentKeepsNonImagesVerbatim(t *testing.T) {
	data := []byte("plain text file")
	att := NewAttachment("c1", "notes.txt", "text/plain", data)

	if att.ID == "" || att.ContentID != "c1" {
		t.Errorf("attachment identity wrong: %+v", att)
	}
	if att.Type != "text/plain" || att.Name != "notes.txt" {
		t.Errorf("non-image attachment should keep name and type: %+v", att)
	}
	if att.Size != int64(len(data)) {
		t.Errorf("size: got %d, want %d", att.Size, len(data))
	}
	_, got, err := DecodeDataURI(att.URL)
	if err != nil {
		t.Fatalf("DecodeDataURI failed: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("stored bytes differ")
	}
}

func TestNewAttachmentShrinksWideImages(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, maxImageWidth*2, 100))); err != nil {
		t.Fatalf("encode test image: %v", err)
	}

	att := NewAttachment("c1", "wide.png", "image/png", buf.Bytes())
	if att.Type != "image/jpeg" {
		t.Errorf("wide image should be re-encoded as JPEG, got %q", att.Type)
	}
	if !strings.HasSuffix(att.Name, ".jpg") {
		t.Errorf("re-encoded image should get a .jpg name, got %q", att.Name)
	}

	mediaType, data, err := DecodeDataURI(att.URL)
	if err != nil {
		t.Fatalf("DecodeDataURI failed: %v", err)
	}
	if mediaType != "image/jpeg" {
		t.Errorf("stored media type: got %q", mediaType)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode stored image: %v", err)
	}
	if w := img.Bounds().Dx(); w != maxImageWidth {
		t.Errorf("stored width: got %d, want %d", w, maxImageWidth)
	}
}

func TestNewAttachmentLeavesSmallImagesAlone(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 10, 10))); err != nil {
		t.Fatalf("encode test image: %v", err)
	}

	att := NewAttachment("c1", "small.png", "image/png", buf.Bytes())
	if att.Type != "image/png" || att.Name != "small.png" {
		t.Errorf("small image should be stored verbatim: %+v", att)
	}
}
