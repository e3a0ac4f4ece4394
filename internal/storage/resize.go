package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/nfnt/resize"
)

// ResizeImage shrinks data so neither side exceeds maxEdge, keeping the aspect
// ratio and the source format. Images already within bounds, formats without a
// registered decoder (webp) and maxEdge == 0 return data unchanged.
func ResizeImage(data []byte, maxEdge uint) ([]byte, error) {
	if maxEdge == 0 {
		return data, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return data, nil
		}
		return nil, fmt.Errorf("error decoding image: %w", err)
	}

	bounds := img.Bounds()
	if uint(bounds.Dx()) <= maxEdge && uint(bounds.Dy()) <= maxEdge {
		return data, nil
	}

	thumb := resize.Thumbnail(maxEdge, maxEdge, img, resize.Lanczos3)

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, thumb)
	case "gif":
		err = gif.Encode(&buf, thumb, nil)
	default:
		err = jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 90})
	}
	if err != nil {
		return nil, fmt.Errorf("error encoding %s image: %w", format, err)
	}

	return buf.Bytes(), nil
}
