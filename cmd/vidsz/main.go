// Package main provides the CLI entry point for vidsz.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/user/vidsz/pkg/adapters/logger"
	"github.com/user/vidsz/pkg/adapters/mp4probe"
	"github.com/user/vidsz/pkg/adapters/opencv"
	"github.com/user/vidsz/pkg/adapters/scaler"
	"github.com/user/vidsz/pkg/adapters/testpattern"
	"github.com/user/vidsz/pkg/config"
	"github.com/user/vidsz/pkg/ports"
	"github.com/user/vidsz/pkg/vidsz"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "vidsz",
		Usage:   "uniform reader/writer for video sources",
		Version: version,
		Commands: []*cli.Command{
			transcodeCommand(),
			infoCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(c *cli.Context, cfg config.Config) ports.Logger {
	if c.Bool("quiet") {
		return logger.NewNoop()
	}
	level := cfg.LogLevel
	if c.IsSet("log-level") {
		level = c.String("log-level")
	}
	return logger.NewConsole(ports.ParseLogLevel(level))
}

func loadConfig(c *cli.Context) (config.Config, error) {
	if c.IsSet("config") {
		return config.LoadFromFile(c.String("config"))
	}
	return config.Defaults(), nil
}

func transcodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "transcode",
		Usage:     "Read a source and re-encode it to a new container",
		ArgsUsage: "SOURCE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output path (default: source stem + _out)"},
			&cli.StringFlag{Name: "ext", Usage: "Output extension (.avi, .mkv, .mp4)"},
			&cli.Float64Flag{Name: "fps", Usage: "Output frame rate (default: source fps)"},
			&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Usage: "Output width (frames are rescaled)"},
			&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Usage: "Output height (frames are rescaled)"},
			&cli.IntFlag{Name: "batch-size", Aliases: []string{"b"}, Usage: "Frames to read per batch"},
			&cli.IntFlag{Name: "pattern", Usage: "Use N synthetic test-pattern frames instead of a real source"},
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: "Log level (debug, info, warn, error)"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: "Suppress all log output"},
		},
		Action: runTranscode,
	}
}

func runTranscode(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	log := newLogger(c, cfg)

	source := c.Args().First()
	patternFrames := c.Int("pattern")
	if source == "" && patternFrames == 0 {
		return cli.Exit("transcode requires a SOURCE argument (or --pattern N)", 2)
	}

	var capture ports.Capture = opencv.New()
	if patternFrames > 0 {
		width, height := c.Int("width"), c.Int("height")
		if width == 0 {
			width = 640
		}
		if height == 0 {
			height = 480
		}
		fps := c.Float64("fps")
		if fps == 0 {
			fps = 30
		}
		capture = testpattern.New(patternFrames, width, height, fps)
		if source == "" {
			source = "pattern.mp4"
		}
	}

	reader, err := vidsz.NewReader(capture, source, log)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer reader.Release()

	opts := vidsz.Options{
		Name:   c.String("output"),
		Ext:    firstNonEmpty(c.String("ext"), cfg.Output.Ext),
		FPS:    c.Float64("fps"),
		Width:  c.Int("width"),
		Height: c.Int("height"),
	}
	if opts.FPS == 0 {
		opts.FPS = cfg.Output.FPS
	}
	if opts.Width == 0 {
		opts.Width = cfg.Output.Width
	}
	if opts.Height == 0 {
		opts.Height = cfg.Output.Height
	}
	// An extension override without an explicit output name also renames
	// the derived output file.
	if opts.Name == "" && opts.Ext != "" {
		ext := filepath.Ext(source)
		opts.Name = strings.TrimSuffix(source, ext) + "_out" + withDot(opts.Ext)
	}

	writer, err := vidsz.NewWriter(opencv.New(), reader, opts, log)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer writer.Release()

	batchSize := c.Int("batch-size")
	if batchSize == 0 {
		batchSize = cfg.BatchSize
	}

	if err := pump(reader, writer, batchSize); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	log.Info("wrote %d frames (%.1f s) to %s", writer.FrameCount(), writer.Seconds(), writer.Name())
	return nil
}

// pump copies frames from reader to writer, rescaling when the output
// dimensions differ. Batched reading uses dynamic batches so fixed-mode
// padding never reaches the output file.
func pump(reader *vidsz.Reader, writer *vidsz.Writer, batchSize int) error {
	write := func(frame ports.Frame) error {
		if writer.Width() > 0 && writer.Height() > 0 {
			frame = scaler.Resize(frame, writer.Width(), writer.Height())
		}
		return writer.Write(frame)
	}

	if batchSize <= 1 {
		for frame := range reader.Frames() {
			if err := write(frame); err != nil {
				return err
			}
		}
		return nil
	}

	batches, err := vidsz.NewBatchReader(reader, batchSize, true)
	if err != nil {
		return err
	}
	for batch := range batches.Batches() {
		for _, frame := range batch {
			if err := write(frame); err != nil {
				return err
			}
		}
	}
	return nil
}

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Print stream or container metadata as YAML",
		ArgsUsage: "SOURCE",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "decode", Usage: "Open a decode stream even for MP4 files"},
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: "Log level (debug, info, warn, error)"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: "Suppress all log output"},
		},
		Action: runInfo,
	}
}

func runInfo(c *cli.Context) error {
	source := c.Args().First()
	if source == "" {
		return cli.Exit("info requires a SOURCE argument", 2)
	}

	// MP4 files answer from the container without opening a decoder.
	if strings.EqualFold(filepath.Ext(source), ".mp4") && !c.Bool("decode") {
		info, err := mp4probe.Probe(source)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		return printYAML(info)
	}

	log := newLogger(c, config.Defaults())
	reader, err := vidsz.NewReader(opencv.New(), source, log)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer reader.Release()
	return printYAML(reader.Info())
}

func printYAML(v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	fmt.Print(string(data))
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func withDot(ext string) string {
	if strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}
