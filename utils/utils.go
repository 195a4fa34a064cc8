package utils

import (
	"bytes"
	"crypto/rand"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/nfnt/resize"
)

// Sha512String hashes and encodes in hex the result
func Sha512String(s string) string {
	hash := sha512.New()
	hash.Write([]byte(s))
	return hex.EncodeToString(hash.Sum(nil))
}

func RandSalt(saltSize int) string {
	b := make([]byte, saltSize)
	_, err := rand.Read(b)
	if err != nil {
		panic(err)
	}
	return base64.StdEncoding.EncodeToString(b)
}

// SanitizeFileName keeps letters, digits, '.', '-' and '_', replacing
// everything else with underscores.
func SanitizeFileName(name string) string {
	var out strings.Builder
	for i, c := range name {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
			(c == '.' && i > 0) || (c == '-') || (c == '_') {

			out.WriteRune(c)
		} else {
			out.WriteString("_")
		}
	}
	return out.String()
}

type ImageThumbConverted struct {
	ThumbSize int64
	NewX      uint16
	NewY      uint16
	OldX      uint16
	OldY      uint16
}

// CreateThumb re-encodes the image from reader as a JPEG thumbnail that
// fits in a size x size box.
func CreateThumb(size uint, reader io.Reader, writer io.Writer) (result ImageThumbConverted, err error) {
	img, _, err := image.Decode(reader)
	if err != nil {
		return result, err
	}
	var newBuf bytes.Buffer
	newImage := resize.Thumbnail(size, size, img, resize.Lanczos3)
	if err = jpeg.Encode(&newBuf, newImage, &jpeg.Options{Quality: 90}); err != nil {
		return result, err
	}
	written, err := io.Copy(writer, &newBuf)
	if err != nil {
		return result, err
	}
	result.ThumbSize = written
	result.OldX = uint16(img.Bounds().Dx())
	result.OldY = uint16(img.Bounds().Dy())
	result.NewX = uint16(newImage.Bounds().Dx())
	result.NewY = uint16(newImage.Bounds().Dy())
	return result, nil
}
