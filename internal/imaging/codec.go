package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	// Register the decoders a photo upload can plausibly arrive in.
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"github.com/gabriel-vasile/mimetype"

	"github.com/vizz0r/tic-tac-toe/internal/model"
)

// Decode sniffs the payload's content type, rejects anything that is not an
// image, and decodes it to an NRGBA buffer. Both the sniff and the decode
// failing are structural errors wrapping model.ErrUndecodableImage.
func Decode(data []byte) (*image.NRGBA, error) {
	if len(data) == 0 {
		return nil, model.ErrNoFile
	}

	mtype := mimetype.Detect(data)
	if !isImageMIME(mtype) {
		return nil, fmt.Errorf("%w: detected %s", model.ErrUndecodableImage, mtype.String())
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrUndecodableImage, err)
	}
	return ToNRGBA(img), nil
}

func isImageMIME(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("image/png") || m.Is("image/jpeg") || m.Is("image/gif") {
			return true
		}
	}
	return false
}

// EncodePNG encodes the buffer losslessly.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// ToDataURI wraps PNG bytes in the data URI form the roster stores avatars
// in.
func ToDataURI(pngData []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngData)
}
