package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/composite"
)

// Job describes one composite: the layers bottom first and how to blend
// them. It is what -job files decode into and what flags build.
//
//	output = "out.png"
//	space = "lab"
//
//	[[layer]]
//	path = "background.jpg"
//
//	[[layer]]
//	path = "shadow.png"
//	mode = "multiply"
type Job struct {
	Output        string  `toml:"output"`
	Format        string  `toml:"format"`
	Space         string  `toml:"space"`
	Premultiplied bool    `toml:"premultiplied"`
	Native        bool    `toml:"native"`
	Workers       int     `toml:"workers"`
	TileSize      int     `toml:"tile_size"`
	Layers        []Layer `toml:"layer"`
}

// Layer is one image of a Job. Mode blends it onto the layers below and
// must be empty for the bottom layer.
type Layer struct {
	Path string `toml:"path"`
	Mode string `toml:"mode"`
}

var errNoLayers = errors.New("job has no layers")

// readJob decodes a TOML job file. Unknown keys are rejected so typos do
// not silently fall back to defaults.
func readJob(path string) (*Job, error) {
	var job Job
	md, err := toml.DecodeFile(path, &job)
	if err != nil {
		return nil, fmt.Errorf("read job %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("read job %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return &job, nil
}

// jobFromArgs builds a Job from positional image paths and a
// comma-separated mode list. A single mode applies to every layer; an
// empty list means over throughout.
func jobFromArgs(paths []string, modes string) (*Job, error) {
	if len(paths) == 0 {
		return nil, errNoLayers
	}

	var names []string
	if modes != "" {
		names = strings.Split(modes, ",")
	}
	if len(names) == 1 && len(paths) > 2 {
		for len(names) < len(paths)-1 {
			names = append(names, names[0])
		}
	}
	if len(names) > 0 && len(names) != len(paths)-1 {
		return nil, fmt.Errorf("%d images need %d modes, have %d", len(paths), len(paths)-1, len(names))
	}

	job := &Job{Layers: make([]Layer, len(paths))}
	for i, p := range paths {
		job.Layers[i].Path = p
		if i > 0 && len(names) > 0 {
			job.Layers[i].Mode = strings.TrimSpace(names[i-1])
		}
	}
	return job, nil
}

// modes parses the blend mode of every layer above the bottom one.
func (j *Job) modes() ([]composite.BlendMode, error) {
	if len(j.Layers) == 0 {
		return nil, errNoLayers
	}
	if j.Layers[0].Mode != "" {
		return nil, fmt.Errorf("bottom layer %s cannot have a mode", j.Layers[0].Path)
	}

	modes := make([]composite.BlendMode, 0, len(j.Layers)-1)
	for _, l := range j.Layers[1:] {
		name := l.Mode
		if name == "" {
			name = "over"
		}
		m, err := composite.ParseBlendMode(name)
		if err != nil {
			return nil, fmt.Errorf("layer %s: %w", l.Path, err)
		}
		modes = append(modes, m)
	}
	return modes, nil
}

// options turns the job settings into composite options.
func (j *Job) options() ([]composite.Option, error) {
	var opts []composite.Option
	if j.Space != "" {
		space, err := composite.ParseSpace(j.Space)
		if err != nil {
			return nil, err
		}
		opts = append(opts, composite.WithCompositingSpace(space))
	}
	if j.Premultiplied {
		opts = append(opts, composite.WithPremultiplied(true))
	}
	if j.Native {
		opts = append(opts, composite.WithNativeFormat())
	}
	if j.Workers > 0 {
		opts = append(opts, composite.WithWorkers(j.Workers))
	}
	if j.TileSize > 0 {
		opts = append(opts, composite.WithTileSize(j.TileSize, j.TileSize))
	}
	return opts, nil
}
