package storage

import (
	"bytes"
	"io"
	"testing"
)

func TestKindFromContentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        Kind
	}{
		{"image/jpeg", KindImage},
		{"image/png", KindImage},
		{"video/mp4", KindVideo},
		{"audio/mpeg", KindAudio},
		{"text/plain", KindOther},
		{"", KindOther},
	}
	for _, tc := range tests {
		if got := KindFromContentType(tc.contentType); got != tc.want {
			t.Errorf("KindFromContentType(%q) = %v, want %v", tc.contentType, got, tc.want)
		}
	}
}

func TestDetectKindDeclaredWins(t *testing.T) {
	data := []byte("not really a video")
	kind, reader := DetectKind("clip.mp4", "video/mp4", bytes.NewReader(data))
	if kind != KindVideo {
		t.Fatalf("kind = %v, want %v", kind, KindVideo)
	}
	got, _ := io.ReadAll(reader)
	if !bytes.Equal(got, data) {
		t.Fatalf("reader consumed: got %q", got)
	}
}

func TestDetectKindSniffsAndReplays(t *testing.T) {
	// Minimal PNG signature, enough for the sniffer
	data := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
	kind, reader := DetectKind("upload.bin", "application/octet-stream", bytes.NewReader(data))
	if kind != KindImage {
		t.Fatalf("kind = %v, want %v", kind, KindImage)
	}
	got, _ := io.ReadAll(reader)
	if !bytes.Equal(got, data) {
		t.Fatalf("sniffed bytes not replayed: got %d bytes, want %d", len(got), len(data))
	}
}

func TestDirFor(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindImage, "photos"},
		{KindVideo, "videos"},
		{KindAudio, "others"},
		{KindOther, "others"},
	}
	for _, tc := range tests {
		if got := dirFor(tc.kind); got != tc.want {
			t.Errorf("dirFor(%v) = %q, want %q", tc.kind, got, tc.want)
		}
	}
}
