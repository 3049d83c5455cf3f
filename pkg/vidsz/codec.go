package vidsz

import (
	"fmt"
	"strings"
)

// codecByExt maps an output extension to the four-character codec tag
// handed to the encoding backend. The values are fixed for container
// compatibility.
var codecByExt = map[string]string{
	".avi": "DIVX",
	".mkv": "X264",
	".mp4": "mp4v",
}

// CodecForExt resolves an output extension to its codec tag. A missing
// leading dot is tolerated. Unknown extensions return
// ErrUnsupportedFormat.
func CodecForExt(ext string) (string, error) {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	codec, ok := codecByExt[strings.ToLower(ext)]
	if !ok {
		return "", fmt.Errorf("extension %q: %w", ext, ErrUnsupportedFormat)
	}
	return codec, nil
}
