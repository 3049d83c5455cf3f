package vidsz

import (
	"errors"
	"testing"
)

func TestCodecForExt(t *testing.T) {
	tests := []struct {
		ext   string
		codec string
	}{
		{".avi", "DIVX"},
		{".mkv", "X264"},
		{".mp4", "mp4v"},
		{"mp4", "mp4v"},
		{".MP4", "mp4v"},
	}
	for _, tt := range tests {
		codec, err := CodecForExt(tt.ext)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.ext, err)
			continue
		}
		if codec != tt.codec {
			t.Errorf("%q: expected %q, got %q", tt.ext, tt.codec, codec)
		}
	}
}

func TestCodecForExt_Unsupported(t *testing.T) {
	for _, ext := range []string{".webm", ".mov", "", ".gif"} {
		if _, err := CodecForExt(ext); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("%q: expected ErrUnsupportedFormat, got %v", ext, err)
		}
	}
}
