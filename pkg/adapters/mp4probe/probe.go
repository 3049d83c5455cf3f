// Package mp4probe reads container-level metadata from MP4 files with
// mp4ff, without opening a decode stream.
package mp4probe

import (
	"fmt"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"
)

// Info is the container metadata of an MP4 file's video track.
type Info struct {
	Name        string  `yaml:"name" json:"name"`
	Width       int     `yaml:"width" json:"width"`
	Height      int     `yaml:"height" json:"height"`
	DurationSec float64 `yaml:"duration_sec" json:"duration_sec"`
	SampleCount int     `yaml:"sample_count" json:"sample_count"`
	Fragmented  bool    `yaml:"fragmented" json:"fragmented"`
}

// Probe parses the container and returns metadata for the first video
// track.
func Probe(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	mp4File, err := mp4.DecodeFile(f)
	if err != nil {
		return Info{}, fmt.Errorf("decode mp4: %w", err)
	}

	moov := mp4File.Moov
	if moov == nil && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return Info{}, fmt.Errorf("no moov box found")
	}

	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}

		info := Info{
			Name:       path,
			Fragmented: mp4File.IsFragmented(),
		}
		if trak.Tkhd != nil {
			// Tkhd stores dimensions as 16.16 fixed point.
			info.Width = int(trak.Tkhd.Width >> 16)
			info.Height = int(trak.Tkhd.Height >> 16)
		}
		if trak.Mdia.Mdhd != nil && trak.Mdia.Mdhd.Timescale != 0 {
			info.DurationSec = float64(trak.Mdia.Mdhd.Duration) / float64(trak.Mdia.Mdhd.Timescale)
		}
		if trak.Mdia.Minf != nil && trak.Mdia.Minf.Stbl != nil && trak.Mdia.Minf.Stbl.Stsz != nil {
			info.SampleCount = int(trak.Mdia.Minf.Stbl.Stsz.SampleNumber)
		}
		return info, nil
	}

	return Info{}, fmt.Errorf("no video track found")
}
