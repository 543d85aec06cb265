package ingest

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
)

const (
	maxImageWidth = 1200
	jpegQuality   = 85
)

// downscaleImage bounds an image's width before it is written to the
// book's images directory. Undecodable data and encode failures fall
// back to the original bytes; the pipeline never loses an image over
// optimization.
func downscaleImage(data []byte) []byte {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}
	if src.Bounds().Dx() <= maxImageWidth {
		return data
	}

	resized := imaging.Resize(src, maxImageWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, resized)
	case "gif":
		err = gif.Encode(&buf, resized, nil)
	default:
		err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return data
	}
	return buf.Bytes()
}
