package vidsz

import "fmt"

// Info is a snapshot of a reader's or writer's stream configuration.
type Info struct {
	Name    string  `yaml:"name" json:"name"`
	Width   int     `yaml:"width" json:"width"`
	Height  int     `yaml:"height" json:"height"`
	FPS     float64 `yaml:"fps" json:"fps"`
	Backend string  `yaml:"backend" json:"backend"`
	Ext     string  `yaml:"ext,omitempty" json:"ext,omitempty"`
}

// String returns a single-line summary of the stream configuration.
func (i Info) String() string {
	s := fmt.Sprintf("name=%s width=%d height=%d fps=%g backend=%s",
		i.Name, i.Width, i.Height, i.FPS, i.Backend)
	if i.Ext != "" {
		s += " ext=" + i.Ext
	}
	return s
}
