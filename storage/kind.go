package storage

import (
	"bytes"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Kind partitions stored files the way the static tree is laid out.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
	KindOther Kind = "other"
)

func kindFromMime(mime string) Kind {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return KindImage
	case strings.HasPrefix(mime, "video/"):
		return KindVideo
	case strings.HasPrefix(mime, "audio/"):
		return KindAudio
	default:
		return KindOther
	}
}

// KindFromContentType maps a declared content type to a Kind.
func KindFromContentType(contentType string) Kind {
	return kindFromMime(contentType)
}

// DetectKind uses the declared content type when present and sniffs the
// stream otherwise. The returned reader replays any sniffed bytes.
func DetectKind(name, contentType string, reader io.Reader) (Kind, io.Reader) {
	if contentType != "" && contentType != "application/octet-stream" {
		return kindFromMime(contentType), reader
	}
	head := make([]byte, 3072)
	n, _ := io.ReadFull(reader, head)
	head = head[:n]
	reader = io.MultiReader(bytes.NewReader(head), reader)
	mime := mimetype.Detect(head)
	if mime == nil {
		return KindOther, reader
	}
	return kindFromMime(mime.String()), reader
}
