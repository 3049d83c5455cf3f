// Package scaler resizes BGR frames with golang.org/x/image/draw.
package scaler

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/user/vidsz/pkg/ports"
)

// Resize scales a frame to the given dimensions using Catmull-Rom
// interpolation. Frames already at the target size are returned
// unchanged.
func Resize(frame ports.Frame, width, height int) ports.Frame {
	if frame.Width == width && frame.Height == height {
		return frame
	}

	src := toRGBA(frame)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return fromRGBA(dst, width, height)
}

func toRGBA(frame ports.Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	si := 0
	for y := 0; y < frame.Height; y++ {
		di := img.PixOffset(0, y)
		for x := 0; x < frame.Width; x++ {
			img.Pix[di] = frame.Data[si+2]
			img.Pix[di+1] = frame.Data[si+1]
			img.Pix[di+2] = frame.Data[si]
			img.Pix[di+3] = 0xff
			si += ports.Channels
			di += 4
		}
	}
	return img
}

func fromRGBA(img *image.RGBA, width, height int) ports.Frame {
	frame := ports.NewFrame(width, height)
	di := 0
	for y := 0; y < height; y++ {
		si := img.PixOffset(0, y)
		for x := 0; x < width; x++ {
			frame.Data[di] = img.Pix[si+2]
			frame.Data[di+1] = img.Pix[si+1]
			frame.Data[di+2] = img.Pix[si]
			di += ports.Channels
			si += 4
		}
	}
	return frame
}
