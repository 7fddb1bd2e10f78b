// Command vcomposite blends a stack of images into one.
//
// Usage:
//
//	vcomposite [flags] base.png layer1.png [layer2.png ...]
//	vcomposite -job job.toml
//
// Layers are listed bottom first. -mode gives one blend mode per layer
// above the bottom one, comma separated, or a single mode for all of them.
// The output defaults to stdout ("-"), which must not be a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/gogpu/composite"
)

// pipeName selects stdout as the destination.
const pipeName = "-"

type config struct {
	job     string
	modes   string
	output  string
	format  string
	space   string
	premul  bool
	native  bool
	workers int
	tile    int
	verbose bool
	list    bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.job, "job", "", "read the stack from a TOML job `file`")
	flag.StringVar(&cfg.modes, "mode", "", "comma-separated blend `modes`, one per layer above the bottom")
	flag.StringVar(&cfg.output, "o", pipeName, "output `file`, or - for stdout")
	flag.StringVar(&cfg.format, "format", "png", "file `format` when writing to stdout")
	flag.StringVar(&cfg.space, "space", "", "compositing `space` (srgb, b-w, rgb16, grey16, scrgb, xyz, lab, lch, ...)")
	flag.BoolVar(&cfg.premul, "premultiplied", false, "inputs are already premultiplied")
	flag.BoolVar(&cfg.native, "native", false, "keep the input sample format instead of float")
	flag.IntVar(&cfg.workers, "workers", 0, "number of worker goroutines (0 = GOMAXPROCS)")
	flag.IntVar(&cfg.tile, "tile", 0, "tile size in pixels (0 = default)")
	flag.BoolVar(&cfg.verbose, "v", false, "log stack and timing details to stderr")
	flag.BoolVar(&cfg.list, "list", false, "list blend modes and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: vcomposite [flags] base layer...\n       vcomposite -job file.toml\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	composite.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, flag.Args(), os.Stdout); err != nil {
		logger.Error("vcomposite failed", "err", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, args []string, stdout io.Writer) error {
	if cfg.list {
		for _, m := range composite.BlendModes() {
			fmt.Fprintln(stdout, m)
		}
		return nil
	}

	job, err := loadJob(cfg, args)
	if err != nil {
		return err
	}

	modes, err := job.modes()
	if err != nil {
		return err
	}
	opts, err := job.options()
	if err != nil {
		return err
	}

	loader := composite.NewLoader(len(job.Layers))
	images := make([]*composite.Image, len(job.Layers))
	for i, l := range job.Layers {
		if images[i], err = loader.Load(l.Path); err != nil {
			return err
		}
	}

	start := time.Now()
	op, err := composite.Build(images, modes, opts...)
	if err != nil {
		return err
	}
	out, err := op.Run(ctx)
	if err != nil {
		return err
	}
	stats := loader.Stats()
	composite.Logger().Debug("composite done",
		"layers", op.Layers(),
		"decoded", stats.Misses,
		"reused", stats.Hits,
		"elapsed", time.Since(start))

	return write(out, job, stdout)
}

// loadJob builds the job from -job or from the command line, letting
// flags override settings the job file leaves unset.
func loadJob(cfg config, args []string) (*Job, error) {
	var job *Job
	var err error
	if cfg.job != "" {
		if len(args) > 0 {
			return nil, errors.New("-job cannot be combined with image arguments")
		}
		job, err = readJob(cfg.job)
	} else {
		job, err = jobFromArgs(args, cfg.modes)
	}
	if err != nil {
		return nil, err
	}

	if job.Output == "" {
		job.Output = cfg.output
	}
	if job.Format == "" {
		job.Format = cfg.format
	}
	if job.Space == "" {
		job.Space = cfg.space
	}
	job.Premultiplied = job.Premultiplied || cfg.premul
	job.Native = job.Native || cfg.native
	if job.Workers == 0 {
		job.Workers = cfg.workers
	}
	if job.TileSize == 0 {
		job.TileSize = cfg.tile
	}

	if job.Output == pipeName && pipeFormat(job.Format) == "exr" {
		return nil, errEXRPipe
	}
	return job, nil
}

var errEXRPipe = errors.New("exr output needs a seekable file, not stdout")

// pipeFormat normalizes the name of the format written to stdout.
func pipeFormat(name string) string {
	name = strings.ToLower(name)
	switch name {
	case "jpg":
		return "jpeg"
	case "tif":
		return "tiff"
	}
	return name
}

// write saves out to the job's output, refusing to dump image data on a
// terminal.
func write(out *composite.Image, job *Job, stdout io.Writer) error {
	if job.Output != pipeName {
		return out.Save(job.Output)
	}

	if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return errors.New("`-` should be used with a pipe for stdout")
	}
	return out.Encode(stdout, pipeFormat(job.Format))
}
